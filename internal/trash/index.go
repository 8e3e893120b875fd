package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Entry pairs a content entry with its metadata record
type Entry struct {
	Names    Names
	FilePath string
	InfoPath string

	// Info is nil until the record has been decoded
	Info *Info
}

// Load decodes the entry's record if it has not been decoded yet
func (e *Entry) Load() (*Info, error) {
	if e.Info != nil {
		return e.Info, nil
	}
	info, err := LoadInfo(e.InfoPath)
	if err != nil {
		return nil, NewStorageError("read", e.InfoPath, err)
	}
	e.Info = info
	return info, nil
}

// GetName, GetPath and GetDeletedAt make entries Filterable

func (e *Entry) GetName() string { return filepath.Base(e.Info.Path) }

func (e *Entry) GetPath() string { return e.FilePath }

func (e *Entry) GetDeletedAt() time.Time { return e.Info.DeletionDate }

// Index looks entries up by scanning the info directory
type Index struct {
	dir *Dir
}

// NewIndex returns an index over d
func NewIndex(d *Dir) *Index {
	return &Index{dir: d}
}

func (x *Index) entry(n Names) *Entry {
	return &Entry{
		Names:    n,
		FilePath: x.dir.FilePath(n),
		InfoPath: x.dir.InfoPath(n),
	}
}

// infoNames returns the stems of every .trashinfo file in directory order
func (x *Index) infoNames() ([]Names, error) {
	entries, err := os.ReadDir(x.dir.InfoDir)
	if err != nil {
		return nil, NewStorageError("scan", x.dir.InfoDir, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	entries = lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.Type().IsRegular() && strings.HasSuffix(e.Name(), InfoExt)
	})
	return lo.Map(entries, func(e os.DirEntry, _ int) Names {
		return NamesFromInfoName(e.Name())
	}), nil
}

// FindByPath returns the first entry, in directory order, whose record
// holds exactly path. Several entries trashed from the same path resolve
// to the earliest scanned one.
func (x *Index) FindByPath(path string) (*Entry, error) {
	names, err := x.infoNames()
	if err != nil {
		return nil, err
	}
	slog.Debug("looking up trash info by path", "path", path, "records", len(names))

	for _, n := range names {
		e := x.entry(n)
		p, err := ReadInfoPath(e.InfoPath)
		if err != nil {
			slog.Warn("skipped unreadable trash info", "path", e.InfoPath, "error", err)
			continue
		}
		if p == path {
			return e, nil
		}
	}
	return nil, NewStorageError("find", path, ErrEntryNotFound)
}

// Lookup returns the entry stored under the given content name.
// Both halves of the pair must exist.
func (x *Index) Lookup(name string) (*Entry, error) {
	e := x.entry(NamesFromFileName(name))
	if !exists(e.FilePath) {
		return nil, NewStorageError("lookup", e.FilePath, ErrEntryNotFound)
	}
	if !exists(e.InfoPath) {
		return nil, NewStorageError("lookup", e.InfoPath, ErrEntryNotFound)
	}
	return e, nil
}

// Match returns every entry whose stem contains pattern. A pattern with
// glob metacharacters is matched as a glob against the whole stem.
// Records that fail to decode are skipped and reported as warnings.
func (x *Index) Match(pattern string) ([]*Entry, []error, error) {
	match, err := matcher(pattern)
	if err != nil {
		return nil, nil, err
	}
	names, err := x.infoNames()
	if err != nil {
		return nil, nil, err
	}
	names = lo.Filter(names, func(n Names, _ int) bool {
		return match(n.FileName())
	})
	entries, warnings := x.load(names)
	return entries, warnings, nil
}

// List returns every entry that has both a content entry and a valid
// record. Orphans and corrupt records are reported as warnings.
func (x *Index) List() ([]*Entry, []error, error) {
	names, err := x.infoNames()
	if err != nil {
		return nil, nil, err
	}
	entries, warnings := x.load(names)

	// content entries that have no record at all
	files, err := os.ReadDir(x.dir.FilesDir)
	if err != nil {
		return nil, nil, NewStorageError("scan", x.dir.FilesDir, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	for _, f := range files {
		e := x.entry(NamesFromFileName(f.Name()))
		if !exists(e.InfoPath) {
			warnings = append(warnings, NewStorageError("scan", e.FilePath, fmt.Errorf("orphaned content: %w", ErrEntryNotFound)))
		}
	}
	return entries, warnings, nil
}

func (x *Index) load(names []Names) ([]*Entry, []error) {
	var (
		entries  []*Entry
		warnings []error
	)
	for _, n := range names {
		e := x.entry(n)
		if _, err := e.Load(); err != nil {
			slog.Warn("skipped corrupted trash info", "path", e.InfoPath, "error", err)
			warnings = append(warnings, err)
			continue
		}
		if !exists(e.FilePath) {
			warnings = append(warnings, NewStorageError("scan", e.InfoPath, fmt.Errorf("orphaned record: %w", ErrEntryNotFound)))
			continue
		}
		entries = append(entries, e)
	}
	return entries, warnings
}

func matcher(pattern string) (func(string) bool, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return func(s string) bool { return strings.Contains(s, pattern) }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}
