package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/hetulpatel/notesdb/internal/hashutil"
)

// Load reads and decodes the source document at path.
func Load(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no source path given", ErrRead)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	sections, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Source{
		Path:     path,
		Digest:   hashutil.HashBytes(data),
		Sections: sections,
	}, nil
}

// Decode parses a JSON object mapping section names to arrays of strings.
// Sections are returned in the order their keys first appear. A repeated key
// keeps its first position and takes the notes of its last occurrence.
func Decode(r io.Reader) ([]Section, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if off := invalidUTF8(data); off >= 0 {
		return nil, fmt.Errorf("%w: offset %d: invalid UTF-8", ErrParse, off)
	}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, parseError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value is %s, want object", ErrTypeMismatch, describe(tok))
	}

	sections := make([]Section, 0)
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseError(err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected object key %v", ErrParse, tok)
		}
		notes, err := decodeNotes(dec, name)
		if err != nil {
			return nil, err
		}
		if i, ok := seen[name]; ok {
			sections[i].Notes = notes
			continue
		}
		seen[name] = len(sections)
		sections = append(sections, Section{Name: name, Notes: notes})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, parseError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: unexpected data after top-level object", ErrParse)
		}
		return nil, parseError(err)
	}
	return sections, nil
}

func decodeNotes(dec *json.Decoder, section string) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, parseError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: section %q is %s, want array of strings", ErrTypeMismatch, section, describe(tok))
	}

	notes := make([]string, 0)
	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseError(err)
		}
		note, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: section %q: note %d is %s, want string", ErrTypeMismatch, section, i, describe(tok))
		}
		notes = append(notes, note)
	}

	if _, err := dec.Token(); err != nil {
		return nil, parseError(err)
	}
	return notes, nil
}

// invalidUTF8 returns the offset of the first byte that is not valid UTF-8, or -1.
func invalidUTF8(data []byte) int {
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size == 1 {
			return off
		}
		off += size
	}
	return -1
}

func parseError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: offset %d: %w", ErrParse, syntaxErr.Offset, err)
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

func describe(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return "an object"
		}
		return "an array"
	case string:
		return "a string"
	case float64, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
