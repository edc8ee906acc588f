package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cgutt/surveykit/pkg/adapters/masterfile"
	"github.com/cgutt/surveykit/pkg/core"
)

func TestVersioned(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a masterfile outside a work tree", func(t *testing.T) {
		inner := masterfile.NewCSV(filepath.Join(t.TempDir(), "master.csv"), nil)
		if _, err := NewVersioned(inner, nil); err == nil {
			t.Error("expected error outside a work tree")
		}
	})

	t.Run("commits after each append", func(t *testing.T) {
		dir := initRepo(t)
		inner := masterfile.NewCSV(filepath.Join(dir, "master.csv"), nil)

		v, err := NewVersioned(inner, nil)
		if err != nil {
			t.Fatalf("NewVersioned failed: %v", err)
		}

		rec := core.NewRecord("P001")
		rec.Set("mood_q1", "4")
		if err := v.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		client := NewClient(dir, nil)
		status, err := client.Status()
		if err != nil {
			t.Fatal(err)
		}
		if status != "" {
			t.Errorf("expected a clean tree after Append, got %q", status)
		}

		log, err := client.Run("log", "--oneline")
		if err != nil {
			t.Fatal(err)
		}
		if log == "" {
			t.Error("expected a commit in the log")
		}

		dup, err := v.Contains(ctx, "P001")
		if err != nil {
			t.Fatal(err)
		}
		if !dup {
			t.Error("expected P001 in the wrapped masterfile")
		}
	})
}
