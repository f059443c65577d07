package imagepath

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG file", "test.png", true},
		{"JPG file", "test.jpg", true},
		{"JPEG file", "test.jpeg", true},
		{"WebP file", "test.webp", true},
		{"BMP file", "test.bmp", true},
		{"GIF file", "test.gif", true},
		{"TIFF file", "test.tiff", true},
		{"PNG uppercase", "test.PNG", true},
		{"JPG uppercase", "test.JPG", true},
		{"Text file", "test.txt", false},
		{"No extension", "test", false},
		{"Empty string", "", false},
		{"Multiple dots", "test.backup.jpg", true},
		{"Path with directory", "/path/to/test.png", true},
		{"Archive is not an image", "book.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSupportedExt(tt.path)
			if result != tt.expected {
				t.Errorf("IsSupportedExt(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestIsArchiveExt(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"book.zip", true},
		{"book.CBZ", true},
		{"book.rar", true},
		{"book.cbr", true},
		{"book.7z", true},
		{"book.cb7", true},
		{"book.tar", false},
		{"image.png", false},
	}

	for _, tt := range tests {
		if got := IsArchiveExt(tt.path); got != tt.expected {
			t.Errorf("IsArchiveExt(%s) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestNames(t *testing.T) {
	file := File("/pics/cat.png")
	if file.Name() != "cat.png" || file.DisplayName() != "cat.png" || file.InArchive() {
		t.Errorf("unexpected file names: %q %q", file.Name(), file.DisplayName())
	}

	entry := Entry("/books/vol1.zip", "ch1/p01.jpg")
	if entry.Path != "/books/vol1.zip:ch1/p01.jpg" {
		t.Errorf("Expected combined path, got %q", entry.Path)
	}
	if entry.Name() != "ch1/p01.jpg" {
		t.Errorf("Expected entry name, got %q", entry.Name())
	}
	if entry.DisplayName() != "vol1.zip:p01.jpg" {
		t.Errorf("Expected display name vol1.zip:p01.jpg, got %q", entry.DisplayName())
	}
}

func writeZip(t *testing.T, path string, files map[string][]byte, order []string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	stamp := time.Date(2023, 1, 2, 3, 4, 6, 0, time.UTC)
	for i, name := range order {
		hdr := &zip.FileHeader{Name: name, Method: zip.Store}
		hdr.Modified = stamp.Add(time.Duration(i) * time.Hour)
		fw, err := w.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("Failed to create zip entry: %v", err)
		}
		if _, err := fw.Write(files[name]); err != nil {
			t.Fatalf("Failed to write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write zip: %v", err)
	}
}

func TestZipArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "book.cbz")
	files := map[string][]byte{
		"b.png":      []byte("second"),
		"a.jpg":      []byte("first"),
		"notes.txt":  []byte("skip"),
		"sub/c.webp": []byte("third"),
	}
	writeZip(t, archive, files, []string{"b.png", "a.jpg", "notes.txt", "sub/c.webp"})

	entries, err := ListArchive(archive)
	if err != nil {
		t.Fatalf("ListArchive failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Path.EntryPath)
	}
	expected := []string{"b.png", "a.jpg", "sub/c.webp"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
	if !entries[1].ModTime.After(entries[0].ModTime) {
		t.Errorf("Expected entry times from the archive, got %v and %v", entries[0].ModTime, entries[1].ModTime)
	}

	data, err := ReadAll(entries[2].Path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "third" {
		t.Errorf("Expected entry contents 'third', got %q", data)
	}

	if _, err := ReadAll(Entry(archive, "missing.png")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestListArchiveUnsupported(t *testing.T) {
	if _, err := ListArchive("book.tar"); err == nil {
		t.Error("Expected error for unsupported archive")
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	first, err := Fingerprint(File(path))
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("longer"), 0644); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}
	second, err := Fingerprint(File(path))
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if first == second {
		t.Errorf("Expected fingerprint to change, both %q", first)
	}

	if _, err := Fingerprint(File(filepath.Join(dir, "missing.png"))); err == nil {
		t.Error("Expected error for missing file")
	}
}
