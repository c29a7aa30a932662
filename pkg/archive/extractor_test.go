package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
)

type zipEntry struct {
	name      string
	content   string
	encrypted bool
}

func makeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		header := &zip.FileHeader{
			Name:   e.name,
			Method: zip.Store,
		}
		if e.encrypted {
			header.Flags |= 0x1
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("Failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
}

func TestExtract_FlattensEntries(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{
		{name: "deep/nested/a.txt", content: "aaa"},
		{name: "b.txt", content: "bbbb"},
	})

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeRename, false, nil)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if res.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", res.Entries)
	}
	if res.BytesWritten != 7 {
		t.Errorf("Expected 7 bytes written, got %d", res.BytesWritten)
	}

	// 条目内部的目录结构丢弃，文件直接落到根目录
	content, err := os.ReadFile(filepath.Join(tempDir, "a.txt"))
	if err != nil {
		t.Fatalf("Expected a.txt at root: %v", err)
	}
	if string(content) != "aaa" {
		t.Errorf("Expected content 'aaa', got %q", string(content))
	}
	if _, err := os.Stat(filepath.Join(tempDir, "b.txt")); err != nil {
		t.Errorf("Expected b.txt at root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "deep")); !os.IsNotExist(err) {
		t.Error("Expected no directory structure to be created")
	}
}

func TestExtract_RenameCollision(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("existing"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{{name: "a.txt", content: "from zip"}})

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeRename, false, nil)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Entries != 1 {
		t.Errorf("Expected 1 entry, got %d", res.Entries)
	}

	content, err := os.ReadFile(filepath.Join(tempDir, "a_1.txt"))
	if err != nil {
		t.Fatalf("Expected renamed a_1.txt: %v", err)
	}
	if string(content) != "from zip" {
		t.Errorf("Expected content 'from zip', got %q", string(content))
	}

	original, _ := os.ReadFile(filepath.Join(tempDir, "a.txt"))
	if string(original) != "existing" {
		t.Error("Expected existing file to be untouched")
	}
}

func TestExtract_SkipMode(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("existing"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{{name: "a.txt", content: "from zip"}})

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeSkip, false, nil)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	// 跳过的条目也计入已处理，但不写入字节
	if res.Entries != 1 {
		t.Errorf("Expected 1 entry, got %d", res.Entries)
	}
	if res.BytesWritten != 0 {
		t.Errorf("Expected 0 bytes written, got %d", res.BytesWritten)
	}

	content, _ := os.ReadFile(filepath.Join(tempDir, "a.txt"))
	if string(content) != "existing" {
		t.Error("Expected existing file to be untouched in skip mode")
	}
}

func TestExtract_OverwriteMode(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("existing"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{{name: "a.txt", content: "from zip"}})

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeOverwrite, false, nil)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Overwrites != 1 {
		t.Errorf("Expected 1 overwrite, got %d", res.Overwrites)
	}

	content, _ := os.ReadFile(filepath.Join(tempDir, "a.txt"))
	if string(content) != "from zip" {
		t.Errorf("Expected overwritten content, got %q", string(content))
	}
}

func TestExtract_EncryptedEntrySkipped(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{
		{name: "secret.txt", content: "locked", encrypted: true},
		{name: "open.txt", content: "ok"},
	})

	var errorEvents []internal.ProgressEvent
	progress := func(ev internal.ProgressEvent) {
		if ev.Phase == internal.PhaseError {
			errorEvents = append(errorEvents, ev)
		}
	}

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeRename, false, progress)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if res.Entries != 1 {
		t.Errorf("Expected 1 extracted entry, got %d", res.Entries)
	}
	if len(errorEvents) != 1 {
		t.Fatalf("Expected 1 error event, got %d", len(errorEvents))
	}
	if _, err := os.Stat(filepath.Join(tempDir, "secret.txt")); !os.IsNotExist(err) {
		t.Error("Expected encrypted entry to not be extracted")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "open.txt")); err != nil {
		t.Errorf("Expected plain entry to be extracted: %v", err)
	}
}

func TestExtract_NotAZip(t *testing.T) {
	tempDir := t.TempDir()
	fakePath := filepath.Join(tempDir, "fake.zip")
	if err := os.WriteFile(fakePath, []byte("this is plain text"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeRename, false, nil)
	res, err := ex.Extract(fakePath)
	if err == nil {
		t.Error("Expected error for non-zip data")
	}
	if res == nil {
		t.Fatal("Expected non-nil result even on error")
	}
	if res.Entries != 0 {
		t.Errorf("Expected 0 entries, got %d", res.Entries)
	}
}

func TestExtract_DryRun(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "archive.zip")
	makeZip(t, zipPath, []zipEntry{
		{name: "a.txt", content: "aaa"},
		{name: "secret.txt", content: "locked", encrypted: true},
	})

	ex := NewExtractor(afero.NewOsFs(), tempDir, internal.ModeRename, true, nil)
	res, err := ex.Extract(zipPath)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	// 干跑只模拟，不检查加密位，全部条目计数
	if res.Entries != 2 {
		t.Errorf("Expected 2 entries in dry run, got %d", res.Entries)
	}
	if res.BytesWritten != 9 {
		t.Errorf("Expected 9 simulated bytes, got %d", res.BytesWritten)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "a.txt")); !os.IsNotExist(err) {
		t.Error("Expected dry run to not write files")
	}
}
