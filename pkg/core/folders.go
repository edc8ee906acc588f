package core

import "context"

// Folders defines the contract for a directory of participant folders.
// The same interface serves both sides of the workbench: rooted at the
// target directory it generates folders, rooted at the source directory
// it discovers and merges extract files. Adhering to this interface
// keeps the core independent of the underlying storage.
type Folders interface {
	// Generate fully replaces the participant's folder with fresh
	// template copies. Prior contents are discarded.
	Generate(ctx context.Context, participantID string, specs []QuestionnaireSpec) error

	// Extracts returns the participant's extract data files, sorted
	// by filename. Returns ErrFolderNotFound if the folder is missing.
	Extracts(ctx context.Context, participantID string) ([]string, error)

	// ReadRecord merges all extract files into a single flat record.
	// Returns ErrNoExtracts when no matching files exist.
	ReadRecord(ctx context.Context, participantID string) (*Record, error)

	// Participants lists every participant folder under the root, sorted.
	Participants(ctx context.Context) ([]string, error)

	// Root returns the directory this adapter is rooted at.
	Root() string
}

// Watchable defines an interface for folder adapters that can observe
// extract-file changes under their root.
type Watchable interface {
	// Watch emits events for extract files matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
