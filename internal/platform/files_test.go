package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/coverflow/internal/model"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	return path
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomePicturesDir(t *testing.T) {
	picturesDir, err := GetHomePicturesDir()
	if err != nil {
		t.Fatalf("Failed to get pictures directory: %v", err)
	}

	if picturesDir == "" {
		t.Fatal("Pictures directory is empty")
	}

	if filepath.Base(picturesDir) != "Pictures" {
		t.Errorf("Expected directory to end with 'Pictures', got: %s", picturesDir)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"cover.jpg", true},
		{"COVER.JPEG", true},
		{"a.png", true},
		{"anim.gif", true},
		{"photo.webp", true},
		{"old.bmp", true},
		{"notes.txt", false},
		{"video.mp4", false},
		{"noext", false},
	}

	for _, test := range tests {
		if got := IsImageFile(test.name); got != test.expected {
			t.Errorf("IsImageFile(%q) = %v, expected %v", test.name, got, test.expected)
		}
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png")
	touch(t, dir, "A.jpg")
	touch(t, dir, "c.txt")
	touch(t, dir, ".hidden.png")
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{filepath.Join(dir, "A.jpg"), filepath.Join(dir, "b.png")}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("Expected files[%d] to be %s, got %s", i, expected[i], files[i])
		}
	}
}

func TestListImageFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := ListImageFiles(dir)
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("Expected ErrNoImages, got %v", err)
	}

	_, err = ListImageFiles(filepath.Join(dir, "missing"))
	if err == nil {
		t.Error("Expected error for a missing directory, got nil")
	}
}

func TestCollectionFromDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01-front.png")
	touch(t, dir, "02-back.jpg")

	c, err := CollectionFromDir(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("Expected 2 items, got %d", c.Len())
	}
	if !c.IsReady() {
		t.Errorf("Expected ready collection, got status %s", c.Status)
	}
	if c.Title != filepath.Base(dir) {
		t.Errorf("Expected title %q, got %q", filepath.Base(dir), c.Title)
	}

	item := c.Item(1)
	if item.Kind != model.ItemKindFile {
		t.Errorf("Expected file item, got %s", item.Kind)
	}
	if item.DisplayTitle() != "02-back" {
		t.Errorf("Expected display title '02-back', got '%s'", item.DisplayTitle())
	}
}

func TestOpenFileWithDefaultApp_NonExistentFile(t *testing.T) {
	err := OpenFileWithDefaultApp(filepath.Join(t.TempDir(), "nonexistent.png"))
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
