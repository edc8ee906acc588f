package masterfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWorkbook_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh workbook gets a header row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.xlsx")
		m := NewWorkbook(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4", "sleep_hours", "7")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("open workbook: %v", err)
		}
		defer f.Close()

		sheet := f.GetSheetList()[0]
		cells := map[string]string{
			"A1": "participant_id",
			"B1": "mood_q1",
			"C1": "sleep_hours",
			"A2": "P001",
			"B2": "4",
			"C2": "7",
		}
		for cell, want := range cells {
			got, err := f.GetCellValue(sheet, cell)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("%s: expected %q, got %q", cell, want, got)
			}
		}
	})

	t.Run("second append lands on the next row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.xlsx")
		m := NewWorkbook(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}
		if err := m.Append(ctx, record("P002", "mood_q1", "2")); err != nil {
			t.Fatal(err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		sheet := f.GetSheetList()[0]
		got, err := f.GetCellValue(sheet, "A3")
		if err != nil {
			t.Fatal(err)
		}
		if got != "P002" {
			t.Errorf("A3: expected P002, got %q", got)
		}
	})

	t.Run("prefers the Data sheet when present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.xlsx")
		f := excelize.NewFile()
		if _, err := f.NewSheet("Data"); err != nil {
			t.Fatal(err)
		}
		if err := f.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		f.Close()

		m := NewWorkbook(path, nil)
		if err := m.Append(ctx, record("P001", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		got, err := f.GetCellValue("Data", "A2")
		if err != nil {
			t.Fatal(err)
		}
		if got != "P001" {
			t.Errorf("Data!A2: expected P001, got %q", got)
		}
	})
}

func TestWorkbook_Contains(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "master.xlsx")
	m := NewWorkbook(path, nil)

	t.Run("missing file contains nothing", func(t *testing.T) {
		dup, err := m.Contains(ctx, "P001")
		if err != nil {
			t.Fatal(err)
		}
		if dup {
			t.Error("expected false for a missing file")
		}
	})

	t.Run("finds an appended participant", func(t *testing.T) {
		if err := m.Append(ctx, record("P001", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}

		dup, err := m.Contains(ctx, "P001")
		if err != nil {
			t.Fatal(err)
		}
		if !dup {
			t.Error("expected P001 to be found")
		}

		dup, err = m.Contains(ctx, "P002")
		if err != nil {
			t.Fatal(err)
		}
		if dup {
			t.Error("P002 should not be found")
		}
	})
}

func TestWorkbook_LegacyRetarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.xls")
	m := NewWorkbook(path, nil)

	want := filepath.Join(filepath.Dir(path), "master.xlsx")
	if m.Path() != want {
		t.Errorf("expected retarget to %s, got %s", want, m.Path())
	}

	if err := m.Append(context.Background(), record("P001", "mood_q1", "4")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := excelize.OpenFile(want); err != nil {
		t.Errorf("retargeted workbook was not written: %v", err)
	}
}
