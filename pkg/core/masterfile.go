package core

import "context"

// Masterfile defines the contract for the cumulative data table holding
// one row per extracted participant. Implementations exist for CSV files,
// spreadsheet workbooks and SQLite databases; all of them treat
// participant_id as a quasi-key: duplicates are detected but never
// prevented.
type Masterfile interface {
	// Append adds the record as a new row. New field names extend the
	// table; fields absent from the record are left blank.
	Append(ctx context.Context, rec *Record) error

	// Contains reports whether a row with this exact participant id
	// already exists. A missing masterfile is not an error: it simply
	// contains nothing. The result is advisory only.
	Contains(ctx context.Context, participantID string) (bool, error)

	// Path returns the current target path. Backends that convert the
	// file on save (legacy workbook formats) retarget and report the
	// new path here.
	Path() string

	// Close releases the underlying handle. Safe to call once per open.
	Close() error
}
