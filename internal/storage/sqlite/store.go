package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hetulpatel/notesdb/internal/logging"
	"github.com/hetulpatel/notesdb/internal/notes"
)

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no database path given", ErrOpen)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: ensure data dir: %w", ErrOpen, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	logging.Debugf("opened sqlite database %s", path)
	return &Store{path: path, db: db}, nil
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const notesSchemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	recordId INTEGER PRIMARY KEY NOT NULL,
	section TEXT,
	noteId INTEGER,
	note TEXT
);
`

// CreateTables ensures the notes table exists. An existing table is left untouched.
func (s *Store) CreateTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, notesSchemaSQL); err != nil {
		return s.wrap(err, "create notes table")
	}
	return nil
}

// ClearTables deletes every row of the notes table.
func (s *Store) ClearTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes;`); err != nil {
		return s.wrap(err, "clear notes table")
	}
	return nil
}

// CountRecords returns the number of rows in the notes table.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

const insertNoteSQL = `INSERT INTO notes (recordId, section, noteId, note) VALUES (?, ?, ?, ?);`

// InsertRecords appends records to the notes table in a single transaction.
// Nothing is written if any insert fails.
func (s *Store) InsertRecords(ctx context.Context, records []notes.Record) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlite store not initialized")
	}
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.wrap(err, "begin transaction")
	}
	stmt, err := tx.PrepareContext(ctx, insertNoteSQL)
	if err != nil {
		tx.Rollback()
		return 0, s.wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.RecordID, r.Section, r.NoteID, r.Note); err != nil {
			tx.Rollback()
			if isConstraint(err) {
				return 0, fmt.Errorf("%w: recordId %d already in %s: %w", ErrConstraint, r.RecordID, s.path, err)
			}
			return 0, s.wrap(err, fmt.Sprintf("insert record %d", r.RecordID))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, s.wrap(err, "commit")
	}
	return len(records), nil
}

// wrap tags errors caused by an unwritable or unreadable database file with ErrOpen.
func (s *Store) wrap(err error, op string) error {
	if isIO(err) {
		return fmt.Errorf("%w: %s: %s: %w", ErrOpen, s.path, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// primaryCode returns the SQLite primary result code of err, or -1.
// Extended codes keep the primary code in the low byte.
func primaryCode(err error) int {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return -1
	}
	return sqlErr.Code() & 0xff
}

func isConstraint(err error) bool {
	return primaryCode(err) == sqlite3.SQLITE_CONSTRAINT
}

func isIO(err error) bool {
	switch primaryCode(err) {
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_PERM, sqlite3.SQLITE_FULL:
		return true
	}
	return false
}
