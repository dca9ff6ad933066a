package sqlite

import "errors"

var (
	// ErrOpen is returned when the database file cannot be created, opened or written.
	ErrOpen = errors.New("open sqlite database")

	// ErrConstraint is returned when an insert collides with an existing recordId.
	ErrConstraint = errors.New("constraint violation")

	// ErrSchema is returned when an existing notes table is incompatible.
	ErrSchema = errors.New("incompatible notes table")
)
