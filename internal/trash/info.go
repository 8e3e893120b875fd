package trash

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/babarot/trash/internal/utils/fs"
	"github.com/dustin/go-humanize"
)

const (
	infoHeader = "[Trash Info]"

	fileNamePrefix     = "FileName="
	pathPrefix         = "Path="
	isDirPrefix        = "IsDir="
	deletionDatePrefix = "DeletionDate="
	fileSizePrefix     = "FileSize="

	// Layout used by XDG-compliant trash implementations
	xdgTimeFormat = "2006-01-02T15:04:05"
)

// Reasons a record fails to decode. All of them match ErrMetadataCorrupt.
var (
	ErrMissingHeader = errors.New("missing [Trash Info] header")
	ErrMissingField  = errors.New("missing field")
	ErrMalformedBool = errors.New("expected true or false")
	ErrBadTimestamp  = errors.New("cannot parse date")
)

// InfoError names the first field of a .trashinfo record that failed to decode
type InfoError struct {
	Field string
	Found string
	Err   error
}

func (e *InfoError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (found %q)", e.Field, e.Err, e.Found)
}

func (e *InfoError) Unwrap() error {
	return e.Err
}

// Is makes every InfoError match ErrMetadataCorrupt
func (e *InfoError) Is(target error) bool {
	return target == ErrMetadataCorrupt
}

// Info represents the contents of a .trashinfo file
type Info struct {
	// FileName is the name of the content entry in the files directory
	FileName string

	// Path is the absolute path the file was trashed from
	Path string

	// IsDir indicates if the trashed entry is a directory
	IsDir bool

	// DeletionDate is when the file was moved to trash, in UTC
	DeletionDate time.Time

	// Size is a human readable size of the entry at deletion time
	Size string
}

// NewInfo builds the record for the file at path from its stat info.
// The deletion date is truncated to whole seconds so it survives encoding.
func NewInfo(path string, names Names, fi os.FileInfo, now time.Time) *Info {
	size := fi.Size()
	if fi.IsDir() {
		if n, err := fs.DirSize(path); err == nil {
			size = n
		}
	}
	return &Info{
		FileName:     names.FileName(),
		Path:         path,
		IsDir:        fi.IsDir(),
		DeletionDate: now.UTC().Truncate(time.Second),
		Size:         humanize.Bytes(uint64(size)),
	}
}

// Encode renders the record in its canonical form
func (i *Info) Encode() string {
	var b strings.Builder
	fmt.Fprintln(&b, infoHeader)
	fmt.Fprintln(&b, fileNamePrefix+i.FileName)
	fmt.Fprintln(&b, pathPrefix+i.Path)
	fmt.Fprintln(&b, isDirPrefix+strconv.FormatBool(i.IsDir))
	fmt.Fprintln(&b, deletionDatePrefix+i.DeletionDate.UTC().Format(time.RFC3339))
	fmt.Fprint(&b, fileSizePrefix+i.Size)
	return b.String()
}

// Save writes the record to path. The file is created exclusively unless
// overwrite is set.
func (i *Info) Save(path string, overwrite bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0600)
	if err != nil {
		if os.IsExist(err) {
			return ErrOverwriteRefused
		}
		return fmt.Errorf("failed to create info file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(i.Encode()); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}
	return nil
}

// DecodeInfo parses a record. Both the canonical layout and the short
// Path/DeletionDate layout are accepted. Field values are everything after
// the prefix, verbatim.
func DecodeInfo(r io.Reader) (*Info, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 || lines[0] != infoHeader {
		found := ""
		if len(lines) > 0 {
			found = lines[0]
		}
		return nil, &InfoError{Field: "header", Found: found, Err: ErrMissingHeader}
	}

	d := decoder{lines: lines, pos: 1}
	info := &Info{}

	extended := len(lines) > 1 && strings.HasPrefix(lines[1], fileNamePrefix)
	if extended {
		if info.FileName, err = d.field("FileName", fileNamePrefix); err != nil {
			return nil, err
		}
	}
	if info.Path, err = d.field("Path", pathPrefix); err != nil {
		return nil, err
	}
	if extended {
		v, err := d.field("IsDir", isDirPrefix)
		if err != nil {
			return nil, err
		}
		switch v {
		case "true":
			info.IsDir = true
		case "false":
			info.IsDir = false
		default:
			return nil, &InfoError{Field: "IsDir", Found: v, Err: ErrMalformedBool}
		}
	}
	v, err := d.field("DeletionDate", deletionDatePrefix)
	if err != nil {
		return nil, err
	}
	if info.DeletionDate, err = parseDeletionDate(v); err != nil {
		return nil, &InfoError{Field: "DeletionDate", Found: v, Err: ErrBadTimestamp}
	}
	if extended {
		if info.Size, err = d.field("FileSize", fileSizePrefix); err != nil {
			return nil, err
		}
	}

	return info, nil
}

// LoadInfo opens and decodes the record at path
func LoadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	return DecodeInfo(f)
}

// ReadInfoPath reads only the Path field of the record at path
func ReadInfoPath(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || scanner.Text() != infoHeader {
		return "", &InfoError{Field: "header", Err: ErrMissingHeader}
	}
	// Path is the first field of the short layout and the second of the canonical one
	for n := 0; n < 2 && scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.HasPrefix(line, pathPrefix) {
			return strings.TrimPrefix(line, pathPrefix), nil
		}
		if !strings.HasPrefix(line, fileNamePrefix) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading info file: %w", err)
	}
	return "", &InfoError{Field: "Path", Err: ErrMissingField}
}

type decoder struct {
	lines []string
	pos   int
}

// field consumes the next line, which must begin with prefix
func (d *decoder) field(name, prefix string) (string, error) {
	if d.pos >= len(d.lines) {
		return "", &InfoError{Field: name, Err: ErrMissingField}
	}
	line := d.lines[d.pos]
	if !strings.HasPrefix(line, prefix) {
		return "", &InfoError{Field: name, Found: line, Err: ErrMissingField}
	}
	d.pos++
	return strings.TrimPrefix(line, prefix), nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}
	return lines, nil
}

func parseDeletionDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(xdgTimeFormat, v, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
