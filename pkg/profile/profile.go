// Package profile persists named workbench sessions (paths plus the
// questionnaire list) in a single YAML file.
package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cgutt/surveykit/internal/fsx"
	"github.com/cgutt/surveykit/pkg/core"
)

// Profile is one saved workbench session.
type Profile struct {
	TargetPath     string                   `yaml:"target_path"`
	SourcePath     string                   `yaml:"source_path"`
	MasterfilePath string                   `yaml:"masterfile_path"`
	Questionnaires []core.QuestionnaireSpec `yaml:"questionnaires,omitempty"`
}

// Store reads and writes all profiles in one YAML file keyed by name.
type Store struct {
	path string
}

// NewStore creates a profile store backed by the given YAML file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save adds or replaces the named profile.
func (s *Store) Save(name string, p Profile) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	profiles, err := s.read()
	if err != nil {
		return err
	}
	profiles[name] = p
	return s.write(profiles)
}

// Load reads the named profile.
func (s *Store) Load(name string) (Profile, error) {
	profiles, err := s.read()
	if err != nil {
		return Profile{}, err
	}

	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile not found: %s", name)
	}
	return p, nil
}

// List returns all profile names, sorted.
func (s *Store) List() ([]string, error) {
	profiles, err := s.read()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile.
func (s *Store) Delete(name string) error {
	profiles, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := profiles[name]; !ok {
		return fmt.Errorf("profile not found: %s", name)
	}
	delete(profiles, name)
	return s.write(profiles)
}

func (s *Store) read() (map[string]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Profile), nil
		}
		return nil, err
	}

	profiles := make(map[string]Profile)
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return profiles, nil
}

func (s *Store) write(profiles map[string]Profile) error {
	data, err := yaml.Marshal(profiles)
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(s.path, data, 0o644)
}
