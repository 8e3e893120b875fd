package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// IsUnsafePath checks if the given path is unsafe to trash
func IsUnsafePath(path string) (bool, error) {
	// Look at the raw input first so "." and ".." are caught before Clean folds them
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true, nil
	}

	if filepath.Clean(path) == "/" {
		return true, nil
	}

	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// Canonicalize returns the absolute path of an existing file with every
// symlink resolved. It fails when the path does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Lexical resolves path against cwd without touching the filesystem.
// "." segments are dropped and each ".." pops one component; the result
// does not need to exist.
func Lexical(path, cwd string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// LexicalFromWd is Lexical against the physical working directory.
// Only the working directory has its symlinks resolved, never path itself.
func LexicalFromWd(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	// Getwd may return $PWD, which can run through a symlink
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = resolved
	}
	return Lexical(path, cwd), nil
}
