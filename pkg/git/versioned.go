package git

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cgutt/surveykit/pkg/core"
)

// Versioned decorates a masterfile so every successful append is
// committed to the surrounding git work tree. Duplicate checks pass
// through untouched.
type Versioned struct {
	inner  core.Masterfile
	client *Client
	logger *slog.Logger
}

// NewVersioned wraps the masterfile with commit-on-append. It fails when
// the masterfile's directory is not inside a git work tree.
func NewVersioned(inner core.Masterfile, logger *slog.Logger) (*Versioned, error) {
	client := NewClient(filepath.Dir(inner.Path()), logger)
	if !client.IsWorkTree() {
		return nil, fmt.Errorf("masterfile directory is not a git work tree: %s", client.WorkDir)
	}
	return &Versioned{inner: inner, client: client, logger: logger}, nil
}

// Append appends via the wrapped masterfile, then commits the change.
func (v *Versioned) Append(ctx context.Context, rec *core.Record) error {
	if err := v.inner.Append(ctx, rec); err != nil {
		return err
	}

	unlock, err := v.client.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	// The workbook backend may have retargeted to a sibling path on save.
	file := filepath.Base(v.inner.Path())
	if err := v.client.Add(file); err != nil {
		return err
	}
	if err := v.client.Commit(fmt.Sprintf("extract %s", rec.ParticipantID)); err != nil {
		return err
	}

	if v.logger != nil {
		v.logger.Debug("masterfile committed", "file", file, "participant", rec.ParticipantID)
	}
	return nil
}

// Contains reports whether the wrapped masterfile already has the id.
func (v *Versioned) Contains(ctx context.Context, participantID string) (bool, error) {
	return v.inner.Contains(ctx, participantID)
}

// Path returns the wrapped masterfile's current path.
func (v *Versioned) Path() string { return v.inner.Path() }

// Close closes the wrapped masterfile.
func (v *Versioned) Close() error { return v.inner.Close() }

var _ core.Masterfile = (*Versioned)(nil)
