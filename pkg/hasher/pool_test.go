package hasher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestHashFiles(t *testing.T) {
	tempDir := t.TempDir()

	var paths []string
	for i := 0; i < 10; i++ {
		p := filepath.Join(tempDir, fmt.Sprintf("file%d.txt", i))
		if err := os.WriteFile(p, []byte(fmt.Sprintf("content %d", i)), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		paths = append(paths, p)
	}

	results := HashFiles(paths, 4)
	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}

	// 结果顺序必须与输入一致
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("Expected result %d for %s, got %s", i, paths[i], r.Path)
		}
		if r.Err != nil {
			t.Errorf("Unexpected error for %s: %v", r.Path, r.Err)
		}
		if r.Hash == 0 {
			t.Errorf("Expected non-zero hash for %s", r.Path)
		}
	}
}

func TestHashFiles_MixedErrors(t *testing.T) {
	tempDir := t.TempDir()

	good := filepath.Join(tempDir, "good.txt")
	if err := os.WriteFile(good, []byte("ok"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	missing := filepath.Join(tempDir, "missing.txt")

	results := HashFiles([]string{good, missing}, 2)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("Unexpected error for existing file: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestHashFiles_Empty(t *testing.T) {
	results := HashFiles(nil, 4)
	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}
