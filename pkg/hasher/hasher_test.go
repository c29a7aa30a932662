package hasher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateHash(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(filePath, []byte("hash me"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	h1, err := CalculateHash(filePath)
	if err != nil {
		t.Fatalf("CalculateHash() error = %v", err)
	}
	if h1 == 0 {
		t.Error("Expected non-zero hash")
	}

	h2, err := CalculateHash(filePath)
	if err != nil {
		t.Fatalf("CalculateHash() error = %v", err)
	}
	if h1 != h2 {
		t.Error("Expected identical hash for identical content")
	}
}

func TestCalculateHash_DifferentContent(t *testing.T) {
	tempDir := t.TempDir()

	p1 := filepath.Join(tempDir, "a.txt")
	p2 := filepath.Join(tempDir, "b.txt")
	if err := os.WriteFile(p1, []byte("content one"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(p2, []byte("content two"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	h1, _ := CalculateHash(p1)
	h2, _ := CalculateHash(p2)
	if h1 == h2 {
		t.Error("Expected different hashes for different content")
	}
}

func TestCalculateHash_MissingFile(t *testing.T) {
	_, err := CalculateHash("/no/such/file")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
