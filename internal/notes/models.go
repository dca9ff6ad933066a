package notes

import "database/sql"

// Source is a decoded notes document.
type Source struct {
	Path     string
	Digest   string // sha256 of the raw file
	Sections []Section
}

// Section is one top-level key of the source document with its notes in array order.
type Section struct {
	Name  string
	Notes []string
}

// Record is a flattened note ready to be written to the notes table.
type Record struct {
	RecordID int64
	Section  string
	NoteID   sql.NullInt64 // never populated; always stored as NULL
	Note     string
}
