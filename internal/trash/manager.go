package trash

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/babarot/trash/internal/utils/fs"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Options are the per-call switches of every trash operation
type Options struct {
	// Verbose explains every step on the manager's output
	Verbose bool

	// Force permits overwrites and skips the empty confirmation
	Force bool
}

// Manager moves files in and out of a single trash directory
type Manager struct {
	dir   *Dir
	index *Index
	out   io.Writer
	now   func() time.Time
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithOutput sets where verbose messages are written
func WithOutput(w io.Writer) ManagerOption {
	return func(m *Manager) {
		m.out = w
	}
}

// WithClock sets the clock used for deletion dates
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager for the trash at root, or at DefaultRoot
// when root is empty. Both subdirectories are created if missing.
func NewManager(root string, opts ...ManagerOption) (*Manager, error) {
	if root == "" {
		var err error
		root, err = DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	dir, err := NewDir(root)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		dir:   dir,
		index: NewIndex(dir),
		out:   os.Stdout,
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	slog.Debug("trash manager initialized", "root", dir.Root)
	return m, nil
}

// Dir returns the trash directory
func (m *Manager) Dir() *Dir {
	return m.dir
}

// Index returns the index over the trash directory
func (m *Manager) Index() *Index {
	return m.index
}

var infoLabel = color.New(color.FgBlue).Sprint("Info:")

func (m *Manager) verbosef(opts Options, format string, args ...any) {
	if !opts.Verbose {
		return
	}
	fmt.Fprintln(m.out, infoLabel, fmt.Sprintf(format, args...))
}

// putTx is a put whose record has been written but whose content has not
// been moved yet. Exactly one of Commit or Rollback is expected.
type putTx struct {
	infoPath string
	done     bool
}

// Commit keeps the written record
func (tx *putTx) Commit() {
	tx.done = true
}

// Rollback removes the written record
func (tx *putTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	if err := os.Remove(tx.infoPath); err != nil {
		return fmt.Errorf("%w: could not remove info file: %v", ErrRollbackFailed, err)
	}
	return nil
}

func (m *Manager) preparePut(e *Entry, info *Info, opts Options) (*putTx, error) {
	if exists(e.InfoPath) && !opts.Force {
		return nil, ErrOverwriteRefused
	}
	m.verbosef(opts, "Writing info file to %s", e.InfoPath)
	if err := info.Save(e.InfoPath, opts.Force); err != nil {
		return nil, err
	}
	return &putTx{infoPath: e.InfoPath}, nil
}

// Put moves the file at src into the trash. On success both the content
// entry and its record exist; on failure neither does.
func (m *Manager) Put(src string, opts Options) (*Entry, error) {
	slog.Debug("manager.put started", "src", src)
	defer slog.Debug("manager.put finished", "src", src)

	if unsafe, _ := fs.IsUnsafePath(src); unsafe {
		return nil, NewStorageError("put", src, errors.New("refusing to trash an unsafe path"))
	}

	m.verbosef(opts, "Canonicalizing file path %s", src)
	path, err := fs.Canonicalize(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("put", src, ErrPathNotFound)
		}
		return nil, NewStorageError("put", src, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}
	if path == m.dir.Root || isParent(m.dir.Root, path) || isParent(path, m.dir.Root) {
		return nil, NewStorageError("put", path, errors.New("refusing to trash the trash itself"))
	}

	fi, err := os.Lstat(path)
	if err != nil {
		return nil, NewStorageError("put", path, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}

	e := m.index.entry(NewNames(path))
	// names are freshly randomized, so a taken name is a logic error and force does not apply
	if exists(e.FilePath) {
		return nil, NewStorageError("put", e.FilePath, ErrOverwriteRefused)
	}

	info := NewInfo(path, e.Names, fi, m.now())
	tx, err := m.preparePut(e, info, opts)
	if err != nil {
		return nil, NewStorageError("put", e.InfoPath, err)
	}

	m.verbosef(opts, "Moving trashed file to %s", e.FilePath)
	if err := os.Rename(path, e.FilePath); err != nil {
		moveErr := fmt.Errorf("%w: could not move trashed file: %v", ErrIOFailure, err)
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("rollback failed, orphaned trash info left behind", "info", e.InfoPath, "error", rbErr)
			return nil, NewStorageError("put", path, errors.Join(moveErr, rbErr))
		}
		return nil, NewStorageError("put", path, moveErr)
	}
	tx.Commit()

	e.Info = info
	slog.Info("trashed", "from", path, "to", e.FilePath)
	return e, nil
}

// Restore moves an entry back to its original location. target is either
// the original path of a trashed file, resolved lexically against the
// working directory, or a path inside files/ or info/ naming the entry.
func (m *Manager) Restore(target string, opts Options) (*Entry, error) {
	slog.Debug("manager.restore started", "target", target)
	defer slog.Debug("manager.restore finished", "target", target)

	path, err := fs.LexicalFromWd(target)
	if err != nil {
		return nil, NewStorageError("restore", target, fmt.Errorf("%w: %v", ErrIOFailure, err))
	}

	var (
		e   *Entry
		dst string
	)
	if inTrash, ok := m.dir.Locate(path); ok {
		names := NamesFromFileName(inTrash)
		if filepath.Dir(inTrash) == m.dir.InfoDir {
			names = NamesFromInfoName(inTrash)
		}
		if e, err = m.index.Lookup(names.FileName()); err != nil {
			return nil, err
		}
		info, err := e.Load()
		if err != nil {
			return nil, err
		}
		dst = info.Path
		if err := m.guardOverwrite(dst, opts); err != nil {
			return nil, err
		}
	} else {
		dst = path
		if err := m.guardOverwrite(dst, opts); err != nil {
			return nil, err
		}
		m.verbosef(opts, "Checking trash info files for the path %s", dst)
		if e, err = m.index.FindByPath(dst); err != nil {
			return nil, err
		}
	}

	if err := m.restore(e, dst, opts); err != nil {
		return nil, err
	}
	slog.Info("restored", "from", e.FilePath, "to", dst)
	return e, nil
}

func (m *Manager) guardOverwrite(dst string, opts Options) error {
	if exists(dst) && !opts.Force {
		return NewStorageError("restore", dst, ErrOverwriteRefused)
	}
	return nil
}

func (m *Manager) restore(e *Entry, dst string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return NewStorageError("restore", dst, fmt.Errorf("%w: %v", ErrRestoreFailed, err))
	}

	// rename replaces files but not directories
	var aside string
	if opts.Force && needsAside(e.FilePath, dst) {
		aside = filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.New().String())
		m.verbosef(opts, "Moving existing %s aside", dst)
		if err := os.Rename(dst, aside); err != nil {
			return NewStorageError("restore", dst, fmt.Errorf("%w: %v", ErrRestoreFailed, err))
		}
	}

	m.verbosef(opts, "Restoring %s to %s", e.FilePath, dst)
	if err := os.Rename(e.FilePath, dst); err != nil {
		restoreErr := fmt.Errorf("%w: %v", ErrRestoreFailed, err)
		if aside != "" {
			if rbErr := os.Rename(aside, dst); rbErr != nil {
				slog.Error("could not put existing target back", "target", dst, "moved_to", aside, "error", rbErr)
				restoreErr = errors.Join(restoreErr, fmt.Errorf("%w: existing target left at %s: %v", ErrRollbackFailed, aside, rbErr))
			}
		}
		return NewStorageError("restore", dst, restoreErr)
	}

	if aside != "" {
		m.verbosef(opts, "Removing replaced %s", aside)
		if err := os.RemoveAll(aside); err != nil {
			slog.Warn("could not remove replaced target", "path", aside, "error", err)
		}
	}

	m.verbosef(opts, "Removing info file at %s", e.InfoPath)
	if err := os.Remove(e.InfoPath); err != nil {
		return NewStorageError("restore", e.InfoPath, fmt.Errorf("%w: could not remove info file: %v", ErrIOFailure, err))
	}
	return nil
}

// needsAside reports whether dst exists and src or dst is a directory
func needsAside(src, dst string) bool {
	dfi, err := os.Lstat(dst)
	if err != nil {
		return false
	}
	if dfi.IsDir() {
		return true
	}
	sfi, err := os.Lstat(src)
	return err == nil && sfi.IsDir()
}

// EmptyStatus tells what Empty did
type EmptyStatus int

const (
	// Emptied means both subdirectories were replaced
	Emptied EmptyStatus = iota

	// AlreadyEmpty means there was nothing to remove
	AlreadyEmpty

	// Declined means the confirmation was refused and nothing changed
	Declined
)

// EmptyResult is the outcome of Empty
type EmptyResult struct {
	Status EmptyStatus
	Count  int
	Path   string
}

// Confirmer decides whether count entries under path may be removed for good
type Confirmer func(count int, path string) bool

// Empty permanently removes everything in the trash. Unless forced, an
// empty trash is left alone and confirm must approve the removal.
func (m *Manager) Empty(opts Options, confirm Confirmer) (EmptyResult, error) {
	slog.Debug("manager.empty started")
	defer slog.Debug("manager.empty finished")

	res := EmptyResult{Path: m.dir.FilesDir}
	count, err := m.dir.Count()
	if err != nil {
		return res, err
	}
	res.Count = count

	if count == 0 && !opts.Force {
		res.Status = AlreadyEmpty
		return res, nil
	}

	if !opts.Force && (confirm == nil || !confirm(count, m.dir.FilesDir)) {
		res.Status = Declined
		return res, nil
	}

	m.verbosef(opts, "Deleting %d files in %s", count, m.dir.FilesDir)
	if err := m.dir.Replace(); err != nil {
		return res, err
	}

	res.Status = Emptied
	slog.Info("emptied trash", "count", count)
	return res, nil
}

// isParent reports whether dir contains path somewhere below it
func isParent(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != "." && filepath.IsLocal(rel)
}
