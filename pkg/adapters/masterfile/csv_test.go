package masterfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/cgutt/surveykit/pkg/core"
)

func newCSVPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "master.csv")
}

func record(id string, pairs ...string) *core.Record {
	rec := core.NewRecord(id)
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return rec
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open masterfile: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read masterfile: %v", err)
	}
	return rows
}

func TestCSV_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("first append writes the header", func(t *testing.T) {
		path := newCSVPath(t)
		m := NewCSV(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4", "sleep_hours", "7")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		rows := readAll(t, path)
		if len(rows) != 2 {
			t.Fatalf("expected header plus one row, got %d rows", len(rows))
		}
		wantHeader := []string{"participant_id", "mood_q1", "sleep_hours"}
		for i, col := range wantHeader {
			if rows[0][i] != col {
				t.Errorf("header[%d]: expected %s, got %s", i, col, rows[0][i])
			}
		}
		if rows[1][0] != "P001" || rows[1][1] != "4" || rows[1][2] != "7" {
			t.Errorf("unexpected row: %v", rows[1])
		}
	})

	t.Run("second append keeps the existing header", func(t *testing.T) {
		path := newCSVPath(t)
		m := NewCSV(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}
		if err := m.Append(ctx, record("P002", "mood_q1", "2")); err != nil {
			t.Fatal(err)
		}

		rows := readAll(t, path)
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[2][0] != "P002" || rows[2][1] != "2" {
			t.Errorf("unexpected second row: %v", rows[2])
		}
	})

	t.Run("fields missing from the record stay blank", func(t *testing.T) {
		path := newCSVPath(t)
		m := NewCSV(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4", "sleep_hours", "7")); err != nil {
			t.Fatal(err)
		}
		if err := m.Append(ctx, record("P002", "mood_q1", "2")); err != nil {
			t.Fatal(err)
		}

		rows := readAll(t, path)
		if rows[2][2] != "" {
			t.Errorf("expected blank sleep_hours, got %q", rows[2][2])
		}
	})

	t.Run("new fields extend the header and pad earlier rows", func(t *testing.T) {
		path := newCSVPath(t)
		m := NewCSV(path, nil)

		if err := m.Append(ctx, record("P001", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}
		if err := m.Append(ctx, record("P002", "mood_q1", "2", "sleep_hours", "8")); err != nil {
			t.Fatal(err)
		}

		rows := readAll(t, path)
		wantHeader := []string{"participant_id", "mood_q1", "sleep_hours"}
		if len(rows[0]) != len(wantHeader) {
			t.Fatalf("expected extended header %v, got %v", wantHeader, rows[0])
		}
		for i, col := range wantHeader {
			if rows[0][i] != col {
				t.Errorf("header[%d]: expected %s, got %s", i, col, rows[0][i])
			}
		}
		if rows[1][2] != "" {
			t.Errorf("expected padded blank for P001 sleep_hours, got %q", rows[1][2])
		}
		if rows[2][2] != "8" {
			t.Errorf("expected 8 for P002 sleep_hours, got %q", rows[2][2])
		}
	})

	t.Run("appends into a file with an existing header", func(t *testing.T) {
		path := newCSVPath(t)
		if err := os.WriteFile(path, []byte("participant_id,age\nP001,34\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		m := NewCSV(path, nil)

		if err := m.Append(ctx, record("P002", "age", "29")); err != nil {
			t.Fatal(err)
		}

		rows := readAll(t, path)
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[2][0] != "P002" || rows[2][1] != "29" {
			t.Errorf("unexpected row: %v", rows[2])
		}
	})
}

func TestCSV_Contains(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file contains nothing", func(t *testing.T) {
		m := NewCSV(newCSVPath(t), nil)
		dup, err := m.Contains(ctx, "P001")
		if err != nil {
			t.Fatal(err)
		}
		if dup {
			t.Error("expected false for a missing file")
		}
	})

	t.Run("finds an appended participant", func(t *testing.T) {
		m := NewCSV(newCSVPath(t), nil)
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

	t.Run("match is exact, not substring", func(t *testing.T) {
		m := NewCSV(newCSVPath(t), nil)
		if err := m.Append(ctx, record("P0010", "mood_q1", "4")); err != nil {
			t.Fatal(err)
		}

		dup, err := m.Contains(ctx, "P001")
		if err != nil {
			t.Fatal(err)
		}
		if dup {
			t.Error("P001 must not match P0010")
		}
	})
}
