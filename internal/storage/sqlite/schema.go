package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type column struct {
	name    string
	typ     string
	notNull int
	pk      int
}

var notesColumns = []column{
	{name: "recordId", typ: "INTEGER", notNull: 1, pk: 1},
	{name: "section", typ: "TEXT"},
	{name: "noteId", typ: "INTEGER"},
	{name: "note", typ: "TEXT"},
}

// CheckSchema verifies that the notes table has the expected columns, in order,
// with matching type affinity and NOT NULL constraints, and recordId as the only
// primary key column.
func (s *Store) CheckSchema(ctx context.Context) error {
	cols, err := s.tableInfo(ctx, "notes")
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("%w: %s has no notes table", ErrSchema, s.path)
	}
	if len(cols) != len(notesColumns) {
		return fmt.Errorf("%w: %s: notes has %d columns, want %d", ErrSchema, s.path, len(cols), len(notesColumns))
	}
	for i, want := range notesColumns {
		got := cols[i]
		if !strings.EqualFold(got.name, want.name) {
			return fmt.Errorf("%w: %s: column %d is %q, want %q", ErrSchema, s.path, i, got.name, want.name)
		}
		if affinity(got.typ) != affinity(want.typ) {
			return fmt.Errorf("%w: %s: column %s has type %q, want %s", ErrSchema, s.path, want.name, got.typ, want.typ)
		}
		if got.notNull != want.notNull {
			return fmt.Errorf("%w: %s: column %s NOT NULL mismatch", ErrSchema, s.path, want.name)
		}
		if got.pk != want.pk {
			return fmt.Errorf("%w: %s: column %s primary key mismatch", ErrSchema, s.path, want.name)
		}
	}
	return nil
}

func (s *Store) tableInfo(ctx context.Context, table string) ([]column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s);`, table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var (
			cid  int
			c    column
			dflt sql.NullString
		)
		if err := rows.Scan(&cid, &c.name, &c.typ, &c.notNull, &dflt, &c.pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// affinity maps a declared column type to its SQLite type affinity.
func affinity(declared string) string {
	t := strings.ToUpper(declared)
	switch {
	case strings.Contains(t, "INT"):
		return "INTEGER"
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return "TEXT"
	case t == "", strings.Contains(t, "BLOB"):
		return "BLOB"
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return "REAL"
	default:
		return "NUMERIC"
	}
}
