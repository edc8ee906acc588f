package masterfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cgutt/surveykit/pkg/core"
)

const (
	// dataSheet is preferred when present; otherwise the first sheet is used.
	dataSheet = "Data"

	// duplicateScanRows bounds the duplicate scan of column A.
	duplicateScanRows = 1000
)

// Workbook is the spreadsheet masterfile backend. Workbooks are written
// in the modern format: a legacy .xls path is converted to an .xlsx
// sibling on first use and subsequent operations retarget to the new path.
// The workbook is opened and released per operation.
type Workbook struct {
	path   string
	logger *slog.Logger
}

// NewWorkbook creates a workbook masterfile backend for the given path.
func NewWorkbook(path string, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Workbook{path: path, logger: logger}
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		m.path = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		logger.Warn("legacy workbook format, retargeting", "from", path, "to", m.path)
	}
	return m
}

// Contains scans a fixed range of the first column of the first sheet
// for an exact (trimmed) participant id match.
func (m *Workbook) Contains(ctx context.Context, participantID string) (bool, error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return false, nil
	}

	f, err := excelize.OpenFile(m.path)
	if err != nil {
		return false, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return false, nil
	}
	sheet := sheets[0]

	for row := 2; row <= duplicateScanRows; row++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", row))
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(v) == participantID {
			return true, nil
		}
	}
	return false, nil
}

// Append writes the record into the first empty row of column A: the
// participant id in column A, the remaining fields in lexicographic key
// order from column B. On a fresh sheet the header row is written first
// and the record lands on row 2.
func (m *Workbook) Append(ctx context.Context, rec *core.Record) error {
	f, created, err := m.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := m.pickSheet(f)
	if err != nil {
		return err
	}

	row, err := firstEmptyRow(f, sheet)
	if err != nil {
		return err
	}

	keys := rec.SortedKeys()
	if row == 1 {
		// Fresh sheet: header on row 1, record on row 2.
		if err := f.SetCellValue(sheet, "A1", core.ParticipantIDField); err != nil {
			return err
		}
		for i, key := range keys {
			cell, err := excelize.CoordinatesToCellName(i+2, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, key); err != nil {
				return err
			}
		}
		row = 2
	}

	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.ParticipantID); err != nil {
		return err
	}
	for i, key := range keys {
		cell, err := excelize.CoordinatesToCellName(i+2, row)
		if err != nil {
			return err
		}
		value, _ := rec.Get(key)
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}

	if created {
		if err := f.SaveAs(m.path); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
	} else if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	m.logger.Debug("row appended", "masterfile", m.path, "participant", rec.ParticipantID, "sheet", sheet, "row", row)
	return nil
}

// Path returns the current workbook path (after any legacy retarget).
func (m *Workbook) Path() string { return m.path }

// Close is a no-op: the workbook handle is scoped to each operation.
func (m *Workbook) Close() error { return nil }

// open returns the existing workbook, or a fresh one when the file is
// missing. created reports which case happened.
func (m *Workbook) open() (f *excelize.File, created bool, err error) {
	if _, statErr := os.Stat(m.path); os.IsNotExist(statErr) {
		return excelize.NewFile(), true, nil
	}

	f, err = excelize.OpenFile(m.path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	return f, false, nil
}

// pickSheet selects the sheet named for data if present, else the first.
func (m *Workbook) pickSheet(f *excelize.File) (string, error) {
	idx, err := f.GetSheetIndex(dataSheet)
	if err != nil {
		return "", err
	}
	if idx >= 0 {
		return dataSheet, nil
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	return sheets[0], nil
}

// firstEmptyRow scans column A from row 1 for the first empty cell.
func firstEmptyRow(f *excelize.File, sheet string) (int, error) {
	for row := 1; ; row++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", row))
		if err != nil {
			return 0, err
		}
		if v == "" {
			return row, nil
		}
	}
}

var _ core.Masterfile = (*Workbook)(nil)
