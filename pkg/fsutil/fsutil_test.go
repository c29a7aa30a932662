package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestGenerateUniqueName_NoConflict(t *testing.T) {
	fs := afero.NewMemMapFs()

	target := "/data/file.txt"
	got := GenerateUniqueName(fs, target)

	if got != target {
		t.Errorf("Expected %s, got %s", target, got)
	}
}

func TestGenerateUniqueName_Conflict(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/file.txt", []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got := GenerateUniqueName(fs, "/data/file.txt")
	want := "/data/file_1.txt"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestGenerateUniqueName_MultipleConflicts(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing := []string{
		"/data/file.txt",
		"/data/file_1.txt",
		"/data/file_2.txt",
	}
	for _, p := range existing {
		if err := afero.WriteFile(fs, p, []byte("a"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	got := GenerateUniqueName(fs, "/data/file.txt")
	want := "/data/file_3.txt"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestGenerateUniqueName_NoExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/README", []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got := GenerateUniqueName(fs, "/data/README")
	want := "/data/README_1"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestMoveFile(t *testing.T) {
	fs := afero.NewOsFs()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src.txt")
	dst := filepath.Join(tempDir, "dst.txt")
	if err := os.WriteFile(src, []byte("move me"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := MoveFile(fs, src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Expected source file to be removed")
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(content) != "move me" {
		t.Errorf("Expected content 'move me', got %q", string(content))
	}
}

func TestCopyFile(t *testing.T) {
	fs := afero.NewOsFs()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src.txt")
	dst := filepath.Join(tempDir, "dst.txt")
	if err := os.WriteFile(src, []byte("copy me"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := CopyFile(fs, src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	if _, err := os.Stat(src); err != nil {
		t.Error("Expected source file to remain after copy")
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(content) != "copy me" {
		t.Errorf("Expected content 'copy me', got %q", string(content))
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	if err := CopyFile(fs, "/no/such/file", "/dst"); err == nil {
		t.Error("Expected error for missing source file")
	}
}
