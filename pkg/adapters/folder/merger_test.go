package folder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cgutt/surveykit/pkg/core"
)

// writeExtract drops an extract CSV into the participant's folder.
func writeExtract(t *testing.T, repo *Repository, id, survey, content string) {
	t.Helper()
	dir := filepath.Join(repo.Path, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	name := id + "_" + survey + ExtractSuffix
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("prefixes fields with the survey name", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "q1,q2\n4,2\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if v, _ := rec.Get("mood_q1"); v != "4" {
			t.Errorf("mood_q1: expected 4, got %q", v)
		}
		if v, _ := rec.Get("mood_q2"); v != "2" {
			t.Errorf("mood_q2: expected 2, got %q", v)
		}
	})

	t.Run("disjoint surveys union into one record", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "q1\n4\n")
		writeExtract(t, repo, "P001", "sleep", "hours\n7\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if rec.Len() != 2 {
			t.Errorf("expected 2 fields, got %d (%v)", rec.Len(), rec.Keys())
		}
		if _, ok := rec.Get("mood_q1"); !ok {
			t.Error("mood_q1 missing")
		}
		if _, ok := rec.Get("sleep_hours"); !ok {
			t.Error("sleep_hours missing")
		}
	})

	t.Run("the File column is dropped", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "File,q1\nexport.pdf,4\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if _, ok := rec.Get("mood_File"); ok {
			t.Error("File column should not survive merging")
		}
		if v, _ := rec.Get("mood_q1"); v != "4" {
			t.Errorf("mood_q1: expected 4, got %q", v)
		}
	})

	t.Run("later rows win within a file", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "q1\n3\n5\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if v, _ := rec.Get("mood_q1"); v != "5" {
			t.Errorf("mood_q1: expected last value 5, got %q", v)
		}
	})

	t.Run("short rows fill missing cells with blanks", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "q1,q2\n4\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if v, ok := rec.Get("mood_q2"); !ok || v != "" {
			t.Errorf("mood_q2: expected blank present, got %q (ok=%v)", v, ok)
		}
	})

	t.Run("empty file counts as present", func(t *testing.T) {
		repo := newTestRepo(t)
		writeExtract(t, repo, "P001", "mood", "")
		writeExtract(t, repo, "P001", "sleep", "hours\n7\n")

		rec, err := repo.ReadRecord(ctx, "P001")
		if err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if rec.Len() != 1 {
			t.Errorf("expected only the sleep field, got %v", rec.Keys())
		}
	})

	t.Run("no extract files returns ErrNoExtracts", func(t *testing.T) {
		repo := newTestRepo(t)
		if err := os.MkdirAll(filepath.Join(repo.Path, "P001"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := repo.ReadRecord(ctx, "P001")
		if !errors.Is(err, core.ErrNoExtracts) {
			t.Errorf("expected ErrNoExtracts, got %v", err)
		}
	})
}

func TestSurveyName(t *testing.T) {
	cases := []struct {
		filename string
		id       string
		want     string
	}{
		{"P001_mood_Extract Data.csv", "P001", "mood"},
		{"P001_daily_diary_Extract Data.csv", "P001", "daily_diary"},
		{"mood_Extract Data.csv", "P001", "mood"},
	}
	for _, tc := range cases {
		if got := surveyName(tc.filename, tc.id); got != tc.want {
			t.Errorf("surveyName(%q, %q): expected %q, got %q", tc.filename, tc.id, tc.want, got)
		}
	}
}
