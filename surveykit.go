package surveykit

import (
	"log/slog"

	"github.com/cgutt/surveykit/internal/platform"
	"github.com/cgutt/surveykit/pkg/core"
)

// --- Types ---

// Record is a public alias for the merged participant record.
type Record = core.Record

// QuestionnaireSpec is a public alias for a questionnaire configuration row.
type QuestionnaireSpec = core.QuestionnaireSpec

// Masterfile is a public alias for the cumulative-table contract.
type Masterfile = core.Masterfile

// BatchResult is a public alias for sequential batch outcomes.
type BatchResult = core.BatchResult

// Event is a public alias for watch events.
type Event = core.Event

// --- Configuration ---

// Option defines a functional option for configuring the workbench.
type Option = platform.Option

// WithAutoInit enables automatic creation of the root directory.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist ensures the root directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFolders allows injecting a custom folder adapter.
func WithFolders(folders core.Folders) Option {
	return platform.WithFolders(folders)
}

// WithVersioning enables git commit-on-append for masterfiles.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithWatcherErrorHandler registers a callback for watch-loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factories ---

// New creates a workbench Service rooted at the given directory:
// the target directory for generation, the source directory for
// extraction and reports.
func New(root string, opts ...Option) (*core.Service, error) {
	return platform.New(root, opts...)
}

// OpenMasterfile opens a masterfile, auto-detecting the backend from
// the path's extension (.csv, .xls/.xlsx, .db/.sqlite/.sqlite3).
func OpenMasterfile(path string, opts ...Option) (core.Masterfile, error) {
	return platform.OpenMasterfile(path, opts...)
}
