package masterfile

import (
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		m, err := Open(filepath.Join(dir, "master.csv"), nil)
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if _, ok := m.(*CSV); !ok {
			t.Errorf("expected *CSV, got %T", m)
		}
	})

	t.Run("workbook, case-insensitive", func(t *testing.T) {
		m, err := Open(filepath.Join(dir, "master.XLSX"), nil)
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if _, ok := m.(*Workbook); !ok {
			t.Errorf("expected *Workbook, got %T", m)
		}
	})

	t.Run("legacy workbook", func(t *testing.T) {
		m, err := Open(filepath.Join(dir, "master.xls"), nil)
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if filepath.Ext(m.Path()) != ".xlsx" {
			t.Errorf("expected retargeted path, got %s", m.Path())
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		m, err := Open(filepath.Join(dir, "master.sqlite3"), nil)
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if _, ok := m.(*SQLite); !ok {
			t.Errorf("expected *SQLite, got %T", m)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := Open("  ", nil); err == nil {
			t.Error("expected error for an empty path")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if _, err := Open(filepath.Join(dir, "master.parquet"), nil); err == nil {
			t.Error("expected error for an unsupported extension")
		}
	})
}
