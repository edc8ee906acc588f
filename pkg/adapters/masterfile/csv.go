package masterfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cgutt/surveykit/internal/fsx"
	"github.com/cgutt/surveykit/pkg/core"
)

// CSV is the text masterfile backend: UTF-8, comma-delimited, one header
// row, one row per extracted participant. The file is opened and released
// per operation.
type CSV struct {
	path   string
	logger *slog.Logger
}

// NewCSV creates a CSV masterfile backend for the given path.
// The file does not have to exist yet.
func NewCSV(path string, logger *slog.Logger) *CSV {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSV{path: path, logger: logger}
}

// Contains scans the participant_id column for an exact string match.
// A missing or headerless file contains nothing.
func (m *CSV) Contains(ctx context.Context, participantID string) (bool, error) {
	f, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read masterfile header: %w", err)
	}

	idCol := -1
	for i, name := range header {
		if name == core.ParticipantIDField {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return false, nil
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read masterfile row: %w", err)
		}
		if idCol < len(row) && row[idCol] == participantID {
			return true, nil
		}
	}
}

// Append adds the record as one row. The header is the union of the
// existing header and the record's keys in first-appearance order. When
// the record introduces new fields the whole file is rewritten with the
// extended header and prior rows padded with blanks; otherwise the row is
// appended in place. Fields absent from the record stay blank.
func (m *CSV) Append(ctx context.Context, rec *core.Record) error {
	existing, err := m.readHeader()
	if err != nil {
		return err
	}

	header := unionHeader(existing, rec)
	row := recordRow(header, rec)

	if existing != nil && len(header) > len(existing) {
		return m.rewrite(header, row, rec)
	}

	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open masterfile: %w", err)
	}

	w := csv.NewWriter(f)
	if existing == nil {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("write row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush masterfile: %w", err)
	}

	m.logger.Debug("row appended", "masterfile", m.path, "participant", rec.ParticipantID, "columns", len(header))
	return f.Close()
}

// rewrite replaces the file with the extended header, the existing rows
// padded to the new width, and the new row.
func (m *CSV) rewrite(header, row []string, rec *core.Record) error {
	f, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("open masterfile: %w", err)
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	f.Close()
	if err != nil {
		return fmt.Errorf("read masterfile: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, old := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, old)
		if err := w.Write(padded); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := fsx.WriteFileAtomic(m.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewrite masterfile: %w", err)
	}

	m.logger.Debug("row appended, header extended",
		"masterfile", m.path, "participant", rec.ParticipantID, "columns", len(header))
	return nil
}

// recordRow lays the record out under the given header, blank where the
// record has no value.
func recordRow(header []string, rec *core.Record) []string {
	row := make([]string, len(header))
	for i, col := range header {
		if col == core.ParticipantIDField {
			row[i] = rec.ParticipantID
			continue
		}
		if v, ok := rec.Get(col); ok {
			row[i] = v
		}
	}
	return row
}

// Path returns the masterfile path.
func (m *CSV) Path() string { return m.path }

// Close is a no-op: the file handle is scoped to each operation.
func (m *CSV) Close() error { return nil }

// readHeader returns the existing header row, or nil when the file is
// missing or empty.
func (m *CSV) readHeader() ([]string, error) {
	info, err := os.Stat(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	f, err := os.Open(m.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read masterfile header: %w", err)
	}
	return header, nil
}

// unionHeader merges the existing header with the record's keys,
// preserving original order and appending new keys at the end.
func unionHeader(existing []string, rec *core.Record) []string {
	seen := make(map[string]bool, len(existing))
	header := make([]string, 0, len(existing)+rec.Len()+1)

	for _, col := range existing {
		if !seen[col] {
			seen[col] = true
			header = append(header, col)
		}
	}
	if !seen[core.ParticipantIDField] {
		seen[core.ParticipantIDField] = true
		header = append(header, core.ParticipantIDField)
	}
	for _, key := range rec.Keys() {
		if !seen[key] {
			seen[key] = true
			header = append(header, key)
		}
	}
	return header
}

var _ core.Masterfile = (*CSV)(nil)
