package trash

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// InfoExt is the extension of metadata records in the info directory
const InfoExt = ".trashinfo"

// Names is the pair of names a trashed file is stored under.
// The content entry lives at files/<Base>.<Suffix> and its record at
// info/<Base>.<Suffix>.trashinfo.
type Names struct {
	Base   string
	Suffix string
}

// NewNames derives a fresh name pair from the leaf of path.
// Parent directories are discarded.
func NewNames(path string) Names {
	return Names{
		Base:   filepath.Base(path),
		Suffix: uuid.New().String(),
	}
}

// NamesFromFileName returns the names of an existing content entry.
// Only the final path component is used.
func NamesFromFileName(name string) Names {
	return splitStem(filepath.Base(name))
}

// NamesFromInfoName returns the names of an existing metadata record
func NamesFromInfoName(name string) Names {
	return splitStem(strings.TrimSuffix(filepath.Base(name), InfoExt))
}

// splitStem separates "<base>.<suffix>". A stem without a dot is kept
// whole in Base so FileName still reproduces it.
func splitStem(stem string) Names {
	i := strings.LastIndex(stem, ".")
	if i <= 0 {
		return Names{Base: stem}
	}
	return Names{Base: stem[:i], Suffix: stem[i+1:]}
}

// FileName is the name of the content entry
func (n Names) FileName() string {
	if n.Suffix == "" {
		return n.Base
	}
	return n.Base + "." + n.Suffix
}

// InfoName is the name of the metadata record
func (n Names) InfoName() string {
	return n.FileName() + InfoExt
}
