package trash

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// writeEntry stores a content file and its record directly, bypassing Put
func writeEntry(t *testing.T, d *Dir, n Names, path string) {
	t.Helper()
	if err := os.WriteFile(d.FilePath(n), []byte(path), 0600); err != nil {
		t.Fatal(err)
	}
	info := &Info{
		FileName:     n.FileName(),
		Path:         path,
		DeletionDate: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		Size:         "1 B",
	}
	if err := info.Save(d.InfoPath(n), false); err != nil {
		t.Fatal(err)
	}
}

func newTestIndex(t *testing.T) (*Dir, *Index) {
	t.Helper()
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return d, NewIndex(d)
}

func TestFindByPath(t *testing.T) {
	d, x := newTestIndex(t)
	writeEntry(t, d, Names{Base: "a.txt", Suffix: "2222"}, "/tmp/a.txt")
	writeEntry(t, d, Names{Base: "a.txt", Suffix: "1111"}, "/tmp/a.txt")
	writeEntry(t, d, Names{Base: "b.txt", Suffix: "3333"}, "/tmp/b.txt")

	e, err := x.FindByPath("/tmp/b.txt")
	if err != nil {
		t.Fatalf("FindByPath() error = %v", err)
	}
	if e.Names.FileName() != "b.txt.3333" {
		t.Errorf("FindByPath() = %s, want b.txt.3333", e.Names.FileName())
	}

	// the earliest scanned record wins, not the most recent one
	e, err = x.FindByPath("/tmp/a.txt")
	if err != nil {
		t.Fatalf("FindByPath() error = %v", err)
	}
	if e.Names.FileName() != "a.txt.1111" {
		t.Errorf("FindByPath() = %s, want a.txt.1111", e.Names.FileName())
	}

	if _, err := x.FindByPath("/tmp/a"); !IsEntryNotFound(err) {
		t.Errorf("FindByPath(prefix) error = %v, want ErrEntryNotFound", err)
	}
}

func TestFindByPathSkipsCorrupt(t *testing.T) {
	d, x := newTestIndex(t)
	if err := os.WriteFile(filepath.Join(d.InfoDir, "0bad.1.trashinfo"), []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	writeEntry(t, d, Names{Base: "a.txt", Suffix: "1"}, "/tmp/a.txt")

	if _, err := x.FindByPath("/tmp/a.txt"); err != nil {
		t.Errorf("FindByPath() error = %v, want corrupt record skipped", err)
	}
}

func TestLookup(t *testing.T) {
	d, x := newTestIndex(t)
	n := Names{Base: "a.txt", Suffix: "1"}
	writeEntry(t, d, n, "/tmp/a.txt")

	e, err := x.Lookup("a.txt.1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	info, err := e.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if info.Path != "/tmp/a.txt" {
		t.Errorf("Path = %q, want /tmp/a.txt", info.Path)
	}

	if err := os.Remove(d.InfoPath(n)); err != nil {
		t.Fatal(err)
	}
	if _, err := x.Lookup("a.txt.1"); !IsEntryNotFound(err) {
		t.Errorf("Lookup() without record error = %v, want ErrEntryNotFound", err)
	}
	if _, err := x.Lookup("zzz"); !IsEntryNotFound(err) {
		t.Errorf("Lookup(zzz) error = %v, want ErrEntryNotFound", err)
	}
}

func TestMatch(t *testing.T) {
	d, x := newTestIndex(t)
	writeEntry(t, d, Names{Base: "report.pdf", Suffix: "1"}, "/docs/report.pdf")
	writeEntry(t, d, Names{Base: "report.txt", Suffix: "2"}, "/docs/report.txt")
	writeEntry(t, d, Names{Base: "photo.jpg", Suffix: "3"}, "/pics/photo.jpg")

	tests := []struct {
		pattern string
		want    []string
	}{
		{"report", []string{"report.pdf.1", "report.txt.2"}},
		{"o", []string{"photo.jpg.3", "report.pdf.1", "report.txt.2"}},
		{"*.txt.*", []string{"report.txt.2"}},
		{"photo*", []string{"photo.jpg.3"}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			entries, warnings, err := x.Match(tt.pattern)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("Match() warnings = %v", warnings)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Names.FileName())
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}

	if _, _, err := x.Match("[unclosed"); err == nil {
		t.Error("Match() with a broken glob error = nil, want error")
	}
}

func TestList(t *testing.T) {
	d, x := newTestIndex(t)
	writeEntry(t, d, Names{Base: "ok", Suffix: "1"}, "/tmp/ok")

	// record without content
	orphanRecord := Names{Base: "gone", Suffix: "2"}
	writeEntry(t, d, orphanRecord, "/tmp/gone")
	if err := os.Remove(d.FilePath(orphanRecord)); err != nil {
		t.Fatal(err)
	}
	// content without record
	if err := os.WriteFile(filepath.Join(d.FilesDir, "stray.3"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	// corrupt record
	if err := os.WriteFile(filepath.Join(d.FilesDir, "bad.4"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d.InfoDir, "bad.4.trashinfo"), []byte("[Trash Info]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	// unrelated file in info/
	if err := os.WriteFile(filepath.Join(d.InfoDir, "README"), nil, 0600); err != nil {
		t.Fatal(err)
	}

	entries, warnings, err := x.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Names.FileName() != "ok.1" {
		t.Errorf("List() entries = %v, want only ok.1", entries)
	}
	if len(warnings) != 3 {
		t.Errorf("List() warnings = %d (%v), want 3", len(warnings), warnings)
	}

	var corrupt int
	for _, w := range warnings {
		if IsMetadataCorrupt(w) {
			corrupt++
		}
	}
	if corrupt != 1 {
		t.Errorf("corrupt warnings = %d, want 1", corrupt)
	}
}
