package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	TRASH_CONFIG_PATH string

	TRASH_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	TRASH_CONFIG_PATH = os.Getenv("TRASH_CONFIG_PATH")
	if TRASH_CONFIG_PATH == "" {
		if dir := baseDir("XDG_CONFIG_HOME", defaultXDGConfigDirname); dir != "" {
			TRASH_CONFIG_PATH = filepath.Join(dir, "trash", "config.yaml")
		}
	}

	TRASH_LOG_PATH = os.Getenv("TRASH_LOG_PATH")
	if TRASH_LOG_PATH == "" {
		if dir := baseDir("XDG_DATA_HOME", defaultXDGDataDirname); dir != "" {
			TRASH_LOG_PATH = filepath.Join(dir, "trash", "debug.log")
		}
	}
}

// baseDir returns $key, or ~/fallback when it is unset. An unresolvable
// home leaves the path empty; the trash itself reports that error.
func baseDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}
