package trash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Trash")

	d, err := NewDir(root)
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}
	for _, dir := range []string{d.FilesDir, d.InfoDir} {
		if !isDir(dir) {
			t.Errorf("%s was not created", dir)
		}
	}

	// a second call on an existing trash is a no-op
	if err := os.WriteFile(filepath.Join(d.FilesDir, "keep"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDir(root); err != nil {
		t.Fatalf("NewDir() on existing trash error = %v", err)
	}
	if !exists(filepath.Join(d.FilesDir, "keep")) {
		t.Error("existing content was lost")
	}

	// one missing half is recreated
	if err := os.RemoveAll(d.InfoDir); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDir(root); err != nil {
		t.Fatalf("NewDir() with missing info error = %v", err)
	}
	if !isDir(d.InfoDir) {
		t.Error("info directory was not recreated")
	}
}

func TestNewDirFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewDir(filepath.Join(blocker, "Trash")); err == nil {
		t.Error("NewDir() under a regular file error = nil, want error")
	}
}

// symlinkedHome returns base/home, a symlink to base/realhome
func symlinkedHome(t *testing.T) (home, realHome string) {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	realHome = filepath.Join(base, "realhome")
	if err := os.Mkdir(realHome, 0755); err != nil {
		t.Fatal(err)
	}
	home = filepath.Join(base, "home")
	if err := os.Symlink(realHome, home); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	return home, realHome
}

func TestNewDirThroughSymlink(t *testing.T) {
	home, realHome := symlinkedHome(t)

	d, err := NewDir(filepath.Join(home, "Trash"))
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}
	want := filepath.Join(realHome, "Trash")
	if d.Root != want || d.FilesDir != filepath.Join(want, "files") || d.InfoDir != filepath.Join(want, "info") {
		t.Errorf("NewDir() = %+v, want paths under %s", d, want)
	}

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(home, "Trash", "files", "a.txt.1"), filepath.Join(want, "files", "a.txt.1")},
		{filepath.Join(home, "Trash", "info", "a.txt.1.trashinfo"), filepath.Join(want, "info", "a.txt.1.trashinfo")},
		{filepath.Join(want, "files", "a.txt.1"), filepath.Join(want, "files", "a.txt.1")},
		{filepath.Join(home, "a.txt"), ""},
	}
	for _, tt := range tests {
		got, ok := d.Locate(tt.path)
		if got != tt.want || ok != (tt.want != "") {
			t.Errorf("Locate(%q) = %q, %v, want %q", tt.path, got, ok, tt.want)
		}
	}
}

func TestDefaultRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := DefaultRoot()
	if err != nil {
		t.Fatalf("DefaultRoot() error = %v", err)
	}
	if want := filepath.Join(home, ".local", "share", "Trash"); got != want {
		t.Errorf("DefaultRoot() = %q, want %q", got, want)
	}
}

func TestDirContains(t *testing.T) {
	d := &Dir{Root: "/t", FilesDir: "/t/files", InfoDir: "/t/info"}

	tests := []struct {
		path string
		want bool
	}{
		{"/t/files/a.txt.1", true},
		{"/t/info/a.txt.1.trashinfo", true},
		{"/t/files/dir.1/nested", true},
		{"/t/files", false},
		{"/t", false},
		{"/t/other/a", false},
		{"/t/filesx/a", false},
		{"/home/u/a.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := d.Contains(tt.path); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirCount(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if n, err := d.Count(); err != nil || n != 0 {
		t.Errorf("Count() on empty trash = %d, %v, want 0", n, err)
	}

	// leftovers of an interrupted empty are counted from info/
	for _, name := range []string{"a.1.trashinfo", "b.2.trashinfo"} {
		if err := os.WriteFile(filepath.Join(d.InfoDir, name), nil, 0600); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := d.Count(); err != nil || n != 2 {
		t.Errorf("Count() with info only = %d, %v, want 2", n, err)
	}

	if err := os.WriteFile(filepath.Join(d.FilesDir, "a.1"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if n, err := d.Count(); err != nil || n != 1 {
		t.Errorf("Count() with files = %d, %v, want 1", n, err)
	}
}

func TestDirReplace(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(d.FilesDir, "dir.1", "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d.InfoDir, "dir.1.trashinfo"), nil, 0600); err != nil {
		t.Fatal(err)
	}

	if err := d.Replace(); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	for _, dir := range []string{d.FilesDir, d.InfoDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("%s missing after Replace(): %v", dir, err)
		}
		if len(entries) != 0 {
			t.Errorf("%s has %d entries after Replace()", dir, len(entries))
		}
	}
}
