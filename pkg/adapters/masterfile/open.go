// Package masterfile provides the cumulative-table backends: CSV files,
// spreadsheet workbooks and SQLite databases, selected by file extension.
package masterfile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cgutt/surveykit/pkg/core"
)

// Open selects a masterfile backend from the path's extension:
// .csv is a text masterfile, .xls/.xlsx a workbook, and .db/.sqlite/.sqlite3
// a database.
func Open(path string, logger *slog.Logger) (core.Masterfile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("no masterfile selected")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSV(path, logger), nil
	case ".xls", ".xlsx":
		return NewWorkbook(path, logger), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unsupported masterfile format: %s", filepath.Ext(path))
	}
}
