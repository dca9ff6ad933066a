package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/hetulpatel/notesdb/internal/logging"
	"github.com/hetulpatel/notesdb/internal/notes"
	"github.com/hetulpatel/notesdb/internal/storage/sqlite"
)

// Options names the source document and the destination database.
type Options struct {
	JSONPath string
	DBPath   string
}

// Result summarizes a completed (or partially completed) run.
type Result struct {
	RunID        string
	SourceDigest string
	Sections     int
	Records      int
	Inserted     int
	TotalRows    int
}

// Run loads the source document, flattens it and appends the records to the
// notes table of the destination database. The source is fully decoded before
// the database is opened, so a bad source never creates an output file.
func Run(ctx context.Context, opts Options) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := logging.With("run_id", res.RunID)

	src, err := notes.Load(opts.JSONPath)
	if err != nil {
		return res, err
	}
	res.SourceDigest = src.Digest

	records := notes.Flatten(src.Sections)
	res.Sections = len(src.Sections)
	res.Records = len(records)
	log.Infow("loaded notes source",
		"path", opts.JSONPath,
		"sha256", res.SourceDigest,
		"sections", res.Sections,
		"records", res.Records)

	store, err := sqlite.Open(opts.DBPath)
	if err != nil {
		return res, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Errorf("close %s: %v", store.Path(), err)
		}
	}()

	if err := store.CreateTables(ctx); err != nil {
		return res, err
	}
	if err := store.CheckSchema(ctx); err != nil {
		return res, err
	}
	log.Debugw("notes table ready", "db", store.Path())

	res.Inserted, err = store.InsertRecords(ctx, records)
	if err != nil {
		return res, err
	}
	res.TotalRows, err = store.CountRecords(ctx)
	if err != nil {
		return res, err
	}

	log.Infow("imported notes",
		"db", store.Path(),
		"inserted", res.Inserted,
		"rows", res.TotalRows)
	return res, nil
}
