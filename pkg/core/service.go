package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service handles the business logic of the workbench: folder generation,
// completeness and duplicate checks, and extraction into a masterfile.
// All operations are synchronous on the calling goroutine; batch
// operations process ids strictly sequentially.
type Service struct {
	folders Folders
	logger  *slog.Logger

	mu sync.RWMutex
}

// NewService creates a new Service rooted at the given folder adapter.
// A nil logger disables service-level logging.
func NewService(folders Folders, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{folders: folders, logger: logger}
}

// Generate creates a fresh participant folder populated with template copies.
// Required inputs are validated before any filesystem mutation.
func (s *Service) Generate(ctx context.Context, participantID string, specs []QuestionnaireSpec) error {
	if strings.TrimSpace(participantID) == "" {
		return ErrEmptyParticipantID
	}
	if len(specs) == 0 {
		return ErrNoQuestionnaires
	}

	if err := s.folders.Generate(ctx, participantID, specs); err != nil {
		return err
	}

	s.logger.Info("participant folder generated", "participant", participantID, "questionnaires", len(specs))
	return nil
}

// GenerateBatch generates folders for multiple participants sequentially.
// A failing id is recorded and does not halt the remaining ids.
func (s *Service) GenerateBatch(ctx context.Context, ids []string, specs []QuestionnaireSpec) *BatchResult {
	result := newBatchResult(len(ids))
	s.logger.Info("batch generation started", "run_id", result.RunID, "participants", len(ids))

	for _, id := range ids {
		if err := s.Generate(ctx, id, specs); err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", id, err))
			s.logger.Warn("generation failed", "run_id", result.RunID, "participant", id, "error", err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	s.logger.Info("batch generation finished",
		"run_id", result.RunID, "succeeded", len(result.Succeeded), "failed", len(result.Failed))
	return result
}

// Completeness checks whether the participant's folder holds all expected
// extract files. expected <= 0 means the expected count is unknown and only
// the zero-files case reports incomplete. A malformed extract still counts
// as present: no content validation is performed.
func (s *Service) Completeness(ctx context.Context, participantID string, expected int) (CompletenessReport, error) {
	if strings.TrimSpace(participantID) == "" {
		return CompletenessReport{}, ErrEmptyParticipantID
	}

	report := CompletenessReport{ParticipantID: participantID}

	files, err := s.folders.Extracts(ctx, participantID)
	if err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			report.Issues = append(report.Issues, fmt.Sprintf("folder not found: %s", participantID))
			return report, nil
		}
		return report, err
	}

	report.Files = files
	if len(files) == 0 {
		report.Issues = append(report.Issues, "no extract data files found")
		return report, nil
	}
	if expected > 0 && len(files) < expected {
		report.Issues = append(report.Issues, fmt.Sprintf("expected %d extract files, found %d", expected, len(files)))
		return report, nil
	}

	report.Complete = true
	return report, nil
}

// MissingData runs the completeness check over every participant folder
// under the source root, sorted by id.
func (s *Service) MissingData(ctx context.Context, expected int) (*MissingDataReport, error) {
	ids, err := s.folders.Participants(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	report := &MissingDataReport{}
	for _, id := range ids {
		cr, err := s.Completeness(ctx, id, expected)
		if err != nil {
			return nil, err
		}
		report.Statuses = append(report.Statuses, FolderStatus(cr))
		if cr.Complete {
			report.Complete++
		} else {
			report.Incomplete++
		}
	}
	return report, nil
}

// CheckDuplicate reports whether the participant already has a row in the
// masterfile. Advisory only: callers may append regardless.
func (s *Service) CheckDuplicate(ctx context.Context, master Masterfile, participantID string) (bool, error) {
	if strings.TrimSpace(participantID) == "" {
		return false, ErrEmptyParticipantID
	}
	return master.Contains(ctx, participantID)
}

// Merge builds the participant's flat record from their extract files
// without touching the masterfile. Used for previews and dry runs.
func (s *Service) Merge(ctx context.Context, participantID string) (*Record, error) {
	if strings.TrimSpace(participantID) == "" {
		return nil, ErrEmptyParticipantID
	}
	return s.folders.ReadRecord(ctx, participantID)
}

// Extract merges the participant's extract files and appends the result
// to the masterfile as a new row.
func (s *Service) Extract(ctx context.Context, master Masterfile, participantID string) (*Record, error) {
	rec, err := s.Merge(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if err := master.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append to masterfile: %w", err)
	}

	s.logger.Info("participant extracted", "participant", participantID, "fields", rec.Len(), "masterfile", master.Path())
	return rec, nil
}

// ExtractBatch extracts multiple participants sequentially. Duplicates
// (unless force is set) and incomplete participants are skipped and
// recorded; an append failure is recorded per id and does not halt the
// remaining batch.
func (s *Service) ExtractBatch(ctx context.Context, master Masterfile, ids []string, expected int, force bool) *BatchResult {
	result := newBatchResult(len(ids))
	s.logger.Info("batch extraction started", "run_id", result.RunID, "participants", len(ids))

	for _, id := range ids {
		if !force {
			dup, err := master.Contains(ctx, id)
			if err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", id, err))
				continue
			}
			if dup {
				result.Duplicates = append(result.Duplicates, id)
				s.logger.Warn("skipping duplicate", "run_id", result.RunID, "participant", id)
				continue
			}
		}

		cr, err := s.Completeness(ctx, id, expected)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		if !cr.Complete {
			result.Incomplete = append(result.Incomplete, fmt.Sprintf("%s: %s", id, strings.Join(cr.Issues, ", ")))
			s.logger.Warn("skipping incomplete", "run_id", result.RunID, "participant", id, "issues", cr.Issues)
			continue
		}

		if _, err := s.Extract(ctx, master, id); err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("%s: %v", id, err))
			s.logger.Warn("extraction failed", "run_id", result.RunID, "participant", id, "error", err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	s.logger.Info("batch extraction finished",
		"run_id", result.RunID,
		"succeeded", len(result.Succeeded),
		"duplicates", len(result.Duplicates),
		"incomplete", len(result.Incomplete),
		"failed", len(result.Failed))
	return result
}

// Watch observes extract-file changes under the source root if the
// folder adapter supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.folders.(Watchable)
	if !ok {
		return nil, errors.New("folder adapter does not support watching")
	}
	return w.Watch(ctx, pattern)
}

func newBatchResult(requested int) *BatchResult {
	return &BatchResult{
		RunID:     uuid.New().String(),
		Requested: requested,
	}
}
