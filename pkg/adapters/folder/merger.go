package folder

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgutt/surveykit/pkg/core"
)

// skipColumn is the exporter's bookkeeping column, dropped during merging.
const skipColumn = "File"

// ReadRecord merges all of the participant's extract files into a single
// flat record. Files are processed in sorted order; each field key is
// prefixed with the survey's logical name. Collisions across surveys for
// the same prefixed key are last-write-wins.
func (r *Repository) ReadRecord(ctx context.Context, participantID string) (*core.Record, error) {
	files, err := r.Extracts(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, core.ErrNoExtracts
	}

	rec := core.NewRecord(participantID)
	dir := filepath.Join(r.Path, participantID)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		survey := surveyName(file, participantID)
		if err := mergeFile(rec, survey, filepath.Join(dir, file)); err != nil {
			return nil, fmt.Errorf("merge %s: %w", file, err)
		}
		r.config.Logger.Debug("extract merged", "participant", participantID, "survey", survey, "file", file)
	}

	return rec, nil
}

// surveyName recovers the survey's logical name from an extract filename
// by stripping the participant prefix and the well-known suffix.
func surveyName(filename, participantID string) string {
	name := strings.TrimSuffix(filename, ExtractSuffix)
	return strings.TrimPrefix(name, participantID+"_")
}

// mergeFile reads one extract CSV and inserts its fields into rec with
// the survey prefix. An empty file counts as present but contributes
// nothing; the skip column is ignored.
func mergeFile(rec *core.Record, survey, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		for i, key := range header {
			if key == skipColumn {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			rec.Set(survey+"_"+key, value)
		}
	}

	return nil
}
