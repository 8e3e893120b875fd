package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babarot/trash/internal/env"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
core:
  verbose: true
logging:
  enabled: true
  level: debug
  rotation:
    max_size: 5MB
    max_files: 2
info:
  time_format: "2006/01/02"
  include:
    within_days: 7
  exclude:
    files:
      - .DS_Store
    patterns:
      - "^go_build_"
    globs:
      - "*.swp"
    size:
      min: 1KB
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cfg.Core.Verbose {
		t.Error("Core.Verbose = false, want true")
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Logging.Rotation.MaxSize != "5MB" || cfg.Logging.Rotation.MaxFiles != 2 {
		t.Errorf("Rotation = %+v", cfg.Logging.Rotation)
	}
	if cfg.Info.TimeFormat != "2006/01/02" || cfg.Info.Include.Period != 7 {
		t.Errorf("Info = %+v", cfg.Info)
	}
	if len(cfg.Info.Exclude.Files) != 1 || len(cfg.Info.Exclude.Patterns) != 1 || len(cfg.Info.Exclude.Globs) != 1 {
		t.Errorf("Exclude = %+v", cfg.Info.Exclude)
	}
	if cfg.Info.Exclude.Size.Min != "1KB" || cfg.Info.Exclude.Size.Max != "" {
		t.Errorf("Exclude.Size = %+v", cfg.Info.Exclude.Size)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "core:\n  verbose: true\n")

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	def := NewDefaultConfig()
	if cfg.Logging.Level != def.Logging.Level || cfg.Info.TimeFormat != def.Info.TimeFormat {
		t.Errorf("defaults were not kept: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "level",
			content: "logging:\n  level: loud\n",
			want:    "level",
		},
		{
			name:    "size",
			content: "info:\n  exclude:\n    size:\n      max: huge\n",
			want:    "max",
		},
		{
			name:    "glob",
			content: "info:\n  exclude:\n    globs:\n      - \"[\"\n",
			want:    "globs",
		},
		{
			name:    "pattern",
			content: "info:\n  exclude:\n    patterns:\n      - \"(\"\n",
			want:    "patterns",
		},
		{
			name:    "negative days",
			content: "info:\n  include:\n    within_days: -1\n",
			want:    "within_days",
		},
		{
			name:    "yaml",
			content: "core: [\n",
			want:    "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			var pe parsingError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a parsingError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	var ce configError
	if !errors.As(err, &ce) {
		t.Fatalf("Parse() error = %v, want configError", err)
	}
	if !strings.Contains(err.Error(), "Example YAML file contents") {
		t.Errorf("error %q lacks the example config", err)
	}
}

func TestParseCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trash", "config.yaml")
	orig := env.TRASH_CONFIG_PATH
	env.TRASH_CONFIG_PATH = path
	t.Cleanup(func() { env.TRASH_CONFIG_PATH = orig })

	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestParseExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, "trash.yaml"), []byte("core:\n  verbose: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse("~/trash.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cfg.Core.Verbose {
		t.Error("Core.Verbose = false, want true")
	}
}
