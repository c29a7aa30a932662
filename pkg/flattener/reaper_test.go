package flattener

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestRemoveEmptyDirs_Nested(t *testing.T) {
	tempDir := t.TempDir()

	// a/b/c 全空，自底向上应一趟清完
	if err := os.MkdirAll(filepath.Join(tempDir, "a", "b", "c"), 0755); err != nil {
		t.Fatalf("Failed to create directories: %v", err)
	}

	count := RemoveEmptyDirs(afero.NewOsFs(), tempDir)
	if count != 3 {
		t.Errorf("Expected 3 removed, got %d", count)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "a")); !os.IsNotExist(err) {
		t.Error("Expected nested empty directories to be removed")
	}
}

func TestRemoveEmptyDirs_KeepsNonEmpty(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tempDir, "full", "empty"), 0755); err != nil {
		t.Fatalf("Failed to create directories: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "full", "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	count := RemoveEmptyDirs(afero.NewOsFs(), tempDir)
	if count != 1 {
		t.Errorf("Expected 1 removed, got %d", count)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "full")); err != nil {
		t.Error("Expected non-empty directory to remain")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "full", "empty")); !os.IsNotExist(err) {
		t.Error("Expected empty subdirectory to be removed")
	}
}

func TestRemoveEmptyDirs_NeverRemovesRoot(t *testing.T) {
	tempDir := t.TempDir()

	count := RemoveEmptyDirs(afero.NewOsFs(), tempDir)
	if count != 0 {
		t.Errorf("Expected 0 removed, got %d", count)
	}
	if _, err := os.Stat(tempDir); err != nil {
		t.Error("Expected root directory to remain")
	}
}
