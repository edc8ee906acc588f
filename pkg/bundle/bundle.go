// Package bundle persists reusable questionnaire configurations
// ("template bundles") as JSON documents in a bundles directory.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cgutt/surveykit/internal/fsx"
	"github.com/cgutt/surveykit/pkg/core"
)

// Bundle is a saved questionnaire configuration: names, template paths
// and copy counts, reusable across participants.
type Bundle struct {
	Name               string                   `json:"name"`
	QuestionnaireCount int                      `json:"questionnaire_count"`
	Questionnaires     []core.QuestionnaireSpec `json:"questionnaires"`
}

// Store reads and writes bundles under a single directory, one JSON
// file per bundle.
type Store struct {
	dir string
}

// NewStore creates a bundle store rooted at dir. The directory is
// created lazily on the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the bundle atomically. The questionnaire count is derived
// from the list, and indexes are normalized to list positions.
func (s *Store) Save(b Bundle) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("bundle name cannot be empty")
	}
	if len(b.Questionnaires) == 0 {
		return fmt.Errorf("bundle %q has no questionnaires", b.Name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create bundles directory: %w", err)
	}

	b.QuestionnaireCount = len(b.Questionnaires)
	for i := range b.Questionnaires {
		b.Questionnaires[i].Index = i
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(s.path(b.Name), data, 0o644)
}

// Load reads a bundle by name.
func (s *Store) Load(name string) (Bundle, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, fmt.Errorf("bundle not found: %s", name)
		}
		return Bundle{}, err
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("parse bundle %s: %w", name, err)
	}
	return b, nil
}

// List returns the names of all saved bundles, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a bundle by name.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("bundle not found: %s", name)
		}
		return err
	}
	return nil
}

// Exists reports whether a bundle with this name is already saved.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
