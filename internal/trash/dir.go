package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Dir is the holding area: content entries under files/, records under info/
type Dir struct {
	// Root directory (e.g., ~/.local/share/Trash)
	Root string

	// Files directory (Root/files)
	FilesDir string

	// Info directory (Root/info)
	InfoDir string
}

// DefaultRoot returns ~/.local/share/Trash
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrHomeDirUnresolvable, err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// NewDir returns the trash rooted at root, creating files/ and info/ when
// either of them is missing. The returned paths have every symlink
// resolved so they compare equal to canonicalized paths.
func NewDir(root string) (*Dir, error) {
	d := newDir(root)
	if err := d.ensure(); err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, NewStorageError("init", root, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	return newDir(resolved), nil
}

func newDir(root string) *Dir {
	return &Dir{
		Root:     root,
		FilesDir: filepath.Join(root, "files"),
		InfoDir:  filepath.Join(root, "info"),
	}
}

func (d *Dir) ensure() error {
	if isDir(d.FilesDir) && isDir(d.InfoDir) {
		return nil
	}
	slog.Debug("trash not found, creating", "root", d.Root)
	if err := d.create(); err != nil {
		return NewStorageError("init", d.Root, err)
	}
	return nil
}

func (d *Dir) create() error {
	if err := os.MkdirAll(d.InfoDir, 0700); err != nil {
		return fmt.Errorf("failed to create info directory: %w", err)
	}
	if err := os.MkdirAll(d.FilesDir, 0700); err != nil {
		return fmt.Errorf("failed to create files directory: %w", err)
	}
	return nil
}

// FilePath is the absolute path of a content entry
func (d *Dir) FilePath(n Names) string {
	return filepath.Join(d.FilesDir, n.FileName())
}

// InfoPath is the absolute path of a metadata record
func (d *Dir) InfoPath(n Names) string {
	return filepath.Join(d.InfoDir, n.InfoName())
}

// Contains reports whether path points inside files/ or info/
func (d *Dir) Contains(path string) bool {
	_, ok := d.Locate(path)
	return ok
}

// Locate returns path as it lies inside files/ or info/. A parent reached
// through a symlink is resolved; the leaf is left alone.
func (d *Dir) Locate(path string) (string, bool) {
	if d.inside(path) {
		return path, true
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", false
	}
	resolved := filepath.Join(parent, filepath.Base(path))
	if d.inside(resolved) {
		return resolved, true
	}
	return "", false
}

func (d *Dir) inside(path string) bool {
	for _, dir := range []string{d.FilesDir, d.InfoDir} {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != "." && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

// Count returns the number of entries in files/. When files/ is empty it
// counts info/ instead so leftovers of an interrupted empty are noticed.
func (d *Dir) Count() (int, error) {
	n, err := countEntries(d.FilesDir)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return n, nil
	}
	return countEntries(d.InfoDir)
}

// Replace removes both subdirectories with everything in them and
// recreates them empty. Recreation is attempted even when a removal failed.
func (d *Dir) Replace() error {
	var errs []error
	for _, dir := range []string{d.InfoDir, d.FilesDir} {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, NewStorageError("empty", dir, fmt.Errorf("%w: %v", ErrIOFailure, err)))
		}
	}
	if err := d.create(); err != nil {
		errs = append(errs, NewStorageError("empty", d.Root, fmt.Errorf("%w: %v", ErrTrashMissing, err)))
	}
	return errors.Join(errs...)
}

func countEntries(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, NewStorageError("count", dir, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	return len(entries), nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
