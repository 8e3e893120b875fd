package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/go-units"
)

// RotateWriter appends to a log file and shifts it to path.1, path.2, ...
// once it would grow past maxSize. At most maxFiles numbered copies are kept.
type RotateWriter struct {
	mu       sync.Mutex
	path     string
	maxSize  int64
	maxFiles int

	f    *os.File
	size int64
}

// NewRotateWriter opens path for appending. maxSize is a human size like "10MB".
func NewRotateWriter(path, maxSize string, maxFiles int) (*RotateWriter, error) {
	n, err := units.FromHumanSize(maxSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max size format: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &RotateWriter{path: path, maxSize: n, maxFiles: maxFiles}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size > 0 && w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func (w *RotateWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w.f, w.size = f, fi.Size()
	return nil
}

// rotate drops the oldest copy, shifts the rest up by one and starts a
// fresh file. With maxFiles at zero the current file is simply truncated.
func (w *RotateWriter) rotate() error {
	w.f.Close()

	backup := func(i int) string { return fmt.Sprintf("%s.%d", w.path, i) }
	if w.maxFiles > 0 {
		os.Remove(backup(w.maxFiles))
		for i := w.maxFiles - 1; i >= 1; i-- {
			if err := os.Rename(backup(i), backup(i+1)); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		if err := os.Rename(w.path, backup(1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.open()
}
