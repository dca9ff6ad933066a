package importer_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/notesdb/internal/importer"
	"github.com/hetulpatel/notesdb/internal/notes"
	"github.com/hetulpatel/notesdb/internal/storage/sqlite"
)

type row struct {
	recordID int64
	section  string
	noteID   sql.NullInt64
	note     string
}

func setup(t *testing.T, source string) importer.Options {
	t.Helper()
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(source), 0o644))
	return importer.Options{JSONPath: jsonPath, DBPath: filepath.Join(dir, "notes.db")}
}

func readRows(t *testing.T, path string) []row {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT recordId, section, noteId, note FROM notes ORDER BY recordId`)
	require.NoError(t, err)
	defer rows.Close()

	var out []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.recordID, &r.section, &r.noteID, &r.note))
		out = append(out, r)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("imports notes in section order", func(t *testing.T) {
		opts := setup(t, `{"a": ["x", "y"], "b": ["z"]}`)

		res, err := importer.Run(ctx, opts)
		require.NoError(t, err)

		assert.NotEmpty(t, res.RunID)
		assert.Len(t, res.SourceDigest, 64)
		assert.Equal(t, 2, res.Sections)
		assert.Equal(t, 3, res.Records)
		assert.Equal(t, 3, res.Inserted)
		assert.Equal(t, 3, res.TotalRows)

		assert.Equal(t, []row{
			{recordID: 0, section: "a", note: "x"},
			{recordID: 1, section: "a", note: "y"},
			{recordID: 2, section: "b", note: "z"},
		}, readRows(t, opts.DBPath))
	})

	t.Run("second run fails and leaves the first run intact", func(t *testing.T) {
		opts := setup(t, `{"a": ["x", "y"], "b": ["z"]}`)

		_, err := importer.Run(ctx, opts)
		require.NoError(t, err)

		_, err = importer.Run(ctx, opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, sqlite.ErrConstraint)
		assert.Len(t, readRows(t, opts.DBPath), 3)
	})

	t.Run("empty object creates an empty table", func(t *testing.T) {
		opts := setup(t, `{}`)

		res, err := importer.Run(ctx, opts)
		require.NoError(t, err)

		assert.Zero(t, res.Records)
		assert.Zero(t, res.TotalRows)
		assert.Empty(t, readRows(t, opts.DBPath))
	})

	t.Run("every row count matches the note count", func(t *testing.T) {
		opts := setup(t, `{"work": ["1", "2", "3"], "home": [], "misc": ["4", "5"]}`)

		res, err := importer.Run(ctx, opts)
		require.NoError(t, err)

		rows := readRows(t, opts.DBPath)
		require.Len(t, rows, 5)
		assert.Equal(t, 5, res.TotalRows)
		for i, r := range rows {
			assert.Equal(t, int64(i), r.recordID)
			assert.False(t, r.noteID.Valid)
		}
		assert.Equal(t, "misc", rows[3].section)
	})

	t.Run("missing source does not create the database", func(t *testing.T) {
		opts := setup(t, `{}`)
		require.NoError(t, os.Remove(opts.JSONPath))

		_, err := importer.Run(ctx, opts)
		assert.ErrorIs(t, err, notes.ErrRead)

		_, statErr := os.Stat(opts.DBPath)
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("malformed source does not create the database", func(t *testing.T) {
		opts := setup(t, `{"a": ["x"`)

		_, err := importer.Run(ctx, opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, notes.ErrParse)
		assert.Contains(t, err.Error(), opts.JSONPath)

		_, statErr := os.Stat(opts.DBPath)
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("wrong shape", func(t *testing.T) {
		opts := setup(t, `{"a": [1]}`)

		_, err := importer.Run(ctx, opts)
		assert.ErrorIs(t, err, notes.ErrTypeMismatch)
	})

	t.Run("missing paths", func(t *testing.T) {
		_, err := importer.Run(ctx, importer.Options{DBPath: "unused.db"})
		assert.ErrorIs(t, err, notes.ErrRead)

		opts := setup(t, `{"a": ["x"]}`)
		opts.DBPath = ""
		_, err = importer.Run(ctx, opts)
		assert.ErrorIs(t, err, sqlite.ErrOpen)
	})

	t.Run("read-only database file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		opts := setup(t, `{"a": ["x"]}`)
		db, err := sql.Open("sqlite", opts.DBPath)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE notes (recordId INTEGER PRIMARY KEY NOT NULL, section TEXT, noteId INTEGER, note TEXT)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())
		require.NoError(t, os.Chmod(opts.DBPath, 0o444))

		_, err = importer.Run(ctx, opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, sqlite.ErrOpen)
		assert.Contains(t, err.Error(), opts.DBPath)
	})

	t.Run("incompatible existing table", func(t *testing.T) {
		opts := setup(t, `{"a": ["x"]}`)
		db, err := sql.Open("sqlite", opts.DBPath)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE notes (id TEXT, body TEXT)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = importer.Run(ctx, opts)
		assert.ErrorIs(t, err, sqlite.ErrSchema)
	})
}
