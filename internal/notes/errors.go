package notes

import "errors"

var (
	// ErrRead is returned when the source file is missing or unreadable.
	ErrRead = errors.New("read notes source")

	// ErrParse is returned when the source is not valid JSON.
	ErrParse = errors.New("parse notes source")

	// ErrTypeMismatch is returned when valid JSON is not an object of string arrays.
	ErrTypeMismatch = errors.New("notes source has unexpected shape")
)
