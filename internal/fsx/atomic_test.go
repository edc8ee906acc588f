package fsx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("writes new file with permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		if err := WriteFileAtomic(path, []byte("hello"), 0o600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "hello" {
			t.Errorf("expected hello, got %q", data)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new" {
			t.Errorf("expected new, got %q", data)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		if err := WriteFileAtomic(filepath.Join(dir, "out.json"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})

	t.Run("fails when the directory is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.json")
		if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
