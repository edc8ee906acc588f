package folder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cgutt/surveykit/pkg/core"
)

const (
	// ExtractSuffix is the well-known filename suffix of per-survey exports.
	ExtractSuffix = "_Extract Data.csv"

	// ExtractPattern matches every extract data file in a participant folder.
	ExtractPattern = "*" + ExtractSuffix
)

// Repository implements core.Folders on a local directory tree:
// one subfolder per participant.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the folder repository.
type Config struct {
	Path      string
	AutoInit  bool // create the root directory if missing
	MustExist bool // fail Initialize when the root is missing
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures that would
	// otherwise only be logged.
	ErrorHandler func(error)
}

// NewRepository creates a new participant-folder repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the root directory is usable.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.Path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("root %s is not a directory", r.Path)
		}
		return nil
	case os.IsNotExist(err):
		if r.config.MustExist {
			return fmt.Errorf("root directory does not exist: %s", r.Path)
		}
		if r.config.AutoInit {
			return os.MkdirAll(r.Path, 0o755)
		}
		return fmt.Errorf("root directory does not exist: %s", r.Path)
	default:
		return err
	}
}

// Root returns the directory this repository is rooted at.
func (r *Repository) Root() string {
	return r.Path
}

// Generate fully replaces the participant's folder with fresh template
// copies. Specs with an empty template path are skipped. Naming follows
// the form convention: <id>_<survey><n>.<ext> for multiple copies,
// <id>_<survey>.<ext> for a single copy.
func (r *Repository) Generate(ctx context.Context, participantID string, specs []core.QuestionnaireSpec) error {
	dir := filepath.Join(r.Path, participantID)

	// Re-generation must not leave stale files from a previous configuration.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove existing folder: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create participant folder: %w", err)
	}

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if spec.TemplatePath == "" {
			continue
		}

		survey := spec.SurveyName()
		copies := spec.Copies()
		ext := filepath.Ext(spec.TemplatePath)

		for i := 1; i <= copies; i++ {
			name := fmt.Sprintf("%s_%s%d%s", participantID, survey, i, ext)
			if copies == 1 {
				name = fmt.Sprintf("%s_%s%s", participantID, survey, ext)
			}
			if err := copyTemplate(spec.TemplatePath, filepath.Join(dir, name)); err != nil {
				return fmt.Errorf("copy template %s: %w", spec.TemplatePath, err)
			}
		}

		r.config.Logger.Debug("questionnaire copied", "participant", participantID, "survey", survey, "copies", copies)
	}

	return nil
}

// Extracts lists the participant's extract data files, sorted by name.
func (r *Repository) Extracts(ctx context.Context, participantID string) ([]string, error) {
	dir := filepath.Join(r.Path, participantID)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrFolderNotFound, dir)
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(ExtractPattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Participants lists every participant folder under the root, sorted.
func (r *Repository) Participants(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read source root: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// copyTemplate copies src to dst preserving file mode and mtime.
func copyTemplate(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), info.ModTime())
}

var _ core.Folders = (*Repository)(nil)
