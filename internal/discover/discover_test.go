package discover

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ulikunitz/xz"
)

func TestIsAnnotationFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"session1.eaf", true},
		{"session1.eaf.xz", true},
		{"dir/nested/session1.eaf", true},
		{"session1.wav", false},
		{"session1.eaf.bak", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := IsAnnotationFile(tt.path); got != tt.want {
			t.Errorf("IsAnnotationFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindAnnotationFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.eaf"), []byte("<ANNOTATION_DOCUMENT/>"))
	mustWrite(t, filepath.Join(dir, "ignore.txt"), []byte("x"))
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "b.eaf"), []byte("<ANNOTATION_DOCUMENT/>"))

	found, err := FindAnnotationFiles(dir)
	if err != nil {
		t.Fatalf("FindAnnotationFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.eaf"),
		filepath.Join(sub, "b.eaf"),
	}
	if !slices.Equal(found, want) {
		t.Errorf("found = %v, want %v", found, want)
	}
}

func TestOpenPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.eaf")
	content := []byte("<ANNOTATION_DOCUMENT/>")
	mustWrite(t, path, content)

	data, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("data = %q, want %q", data, content)
	}
}

func TestOpenXZ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.eaf.xz")
	content := []byte("<ANNOTATION_DOCUMENT/>")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("data = %q, want %q", data, content)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.eaf")); err == nil {
		t.Error("Open should fail for a missing file")
	}
}

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}
