package masterfile

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cgutt/surveykit/pkg/core"
)

// tableName is the single cumulative table in a database masterfile.
const tableName = "masterfile"

// SQLite is the database masterfile backend. Each record is one row;
// new field names become TEXT columns as they first appear.
type SQLite struct {
	path   string
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) a database masterfile at the given path.
func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (%s TEXT)`, tableName, quoteIdent(core.ParticipantIDField),
	)); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{path: path, db: db, logger: logger}, nil
}

// Contains reports whether a row with this participant id exists.
func (m *SQLite) Contains(ctx context.Context, participantID string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT COUNT(1) FROM %s WHERE %s = ?`, tableName, quoteIdent(core.ParticipantIDField),
	), participantID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query masterfile: %w", err)
	}
	return count > 0, nil
}

// Append inserts the record, adding TEXT columns for field names the
// table has not seen before.
func (m *SQLite) Append(ctx context.Context, rec *core.Record) error {
	existing, err := m.columns(ctx)
	if err != nil {
		return err
	}

	for _, key := range rec.Keys() {
		if existing[key] {
			continue
		}
		if _, err := m.db.ExecContext(ctx, fmt.Sprintf(
			`ALTER TABLE %s ADD COLUMN %s TEXT`, tableName, quoteIdent(key),
		)); err != nil {
			return fmt.Errorf("add column %s: %w", key, err)
		}
		existing[key] = true
	}

	keys := rec.Keys()
	cols := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	placeholders := make([]string, 0, len(keys)+1)

	cols = append(cols, quoteIdent(core.ParticipantIDField))
	args = append(args, rec.ParticipantID)
	placeholders = append(placeholders, "?")

	for _, key := range keys {
		value, _ := rec.Get(key)
		cols = append(cols, quoteIdent(key))
		args = append(args, value)
		placeholders = append(placeholders, "?")
	}

	if _, err := m.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		tableName, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	), args...); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}

	m.logger.Debug("row appended", "masterfile", m.path, "participant", rec.ParticipantID, "columns", len(cols))
	return nil
}

// Path returns the database path.
func (m *SQLite) Path() string { return m.path }

// Close releases the database handle.
func (m *SQLite) Close() error { return m.db.Close() }

// columns returns the current set of column names.
func (m *SQLite) columns(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, tableName))
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// quoteIdent quotes an identifier for use in DDL; survey field names can
// contain spaces and punctuation.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var _ core.Masterfile = (*SQLite)(nil)
