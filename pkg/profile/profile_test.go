package profile

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cgutt/surveykit/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "surveykit.yaml"))
}

func TestStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	saved := Profile{
		TargetPath:     "/study/folders",
		SourcePath:     "/study/returns",
		MasterfilePath: "/study/master.csv",
		Questionnaires: []core.QuestionnaireSpec{
			{Index: 0, Name: "mood", TemplatePath: "templates/mood.docx", CopyCount: 2},
		},
	}
	if err := store.Save("pilot", saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load("pilot")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, saved) {
		t.Errorf("round trip mismatch:\nsaved %+v\ngot   %+v", saved, got)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("pilot", Profile{TargetPath: "/old"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("pilot", Profile{TargetPath: "/new"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load("pilot")
	if err != nil {
		t.Fatal(err)
	}
	if got.TargetPath != "/new" {
		t.Errorf("expected replacement, got %q", got.TargetPath)
	}
}

func TestStore_EmptyName(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("  ", Profile{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("expected no profiles, got %v", names)
	}

	for _, name := range []string{"pilot", "main"} {
		if err := store.Save(name, Profile{}); err != nil {
			t.Fatal(err)
		}
	}

	names, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"main", "pilot"}) {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("pilot", Profile{}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("pilot"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load("pilot"); err == nil {
		t.Error("expected error loading a deleted profile")
	}
	if err := store.Delete("pilot"); err == nil {
		t.Error("expected error deleting a missing profile")
	}
}
