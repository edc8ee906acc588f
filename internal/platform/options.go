package platform

import (
	"log/slog"

	"github.com/cgutt/surveykit/pkg/core"
)

// options holds the internal configuration for the workbench service.
type options struct {
	folders core.Folders
	logger  *slog.Logger
	config  map[string]interface{}
}

// Option defines a functional option for configuring the workbench.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		folders: nil,
		logger:  nil,
		config:  make(map[string]interface{}),
	}
}

// WithAutoInit enables automatic creation of the root directory.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithMustExist ensures the root directory must already exist.
// Extraction sources are opened this way: a missing source folder is an
// input error, not something to create silently.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFolders allows injecting a custom folder adapter (e.g. a mock).
// If provided, the default filesystem adapter is skipped.
func WithFolders(folders core.Folders) Option {
	return func(o *options) {
		o.folders = folders
	}
}

// WithVersioning enables git commit-on-append for masterfiles opened
// through this configuration. The masterfile directory must be inside a
// git work tree.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioned"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
