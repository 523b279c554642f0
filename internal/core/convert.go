package core

// convert.go provides the conversions from raw source cells to typed values.
//
// The source dataset is machine generated, so unlike user uploads there is
// no guessing: integers are plain base-10, booleans are "1"/"0", and a
// column that may be empty uses "" or the `\N` sentinel for NULL.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// NullSentinel is the explicit null marker some source files use.
const NullSentinel = `\N`

// ErrMissingColumn is returned when a row lacks a column its table needs.
var ErrMissingColumn = errors.New("missing column")

// FieldError describes a cell that could not be converted.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %q (value %q): %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsNull reports whether a raw cell represents an absent value.
func IsNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NullSentinel
}

// ParseInt parses a required integer cell.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty required integer")
	}
	return strconv.ParseInt(s, 10, 64)
}

// ParseOptionalInt parses an integer cell that may be null.
func ParseOptionalInt(s string) (pgtype.Int8, error) {
	if IsNull(s) {
		return pgtype.Int8{}, nil
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return pgtype.Int8{}, err
	}
	return pgtype.Int8{Int64: i, Valid: true}, nil
}

// ParseFlag is true iff the cell is exactly "1".
func ParseFlag(s string) bool {
	return strings.TrimSpace(s) == "1"
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		idx[key] = i
	}
	return idx
}

// RowParser reads typed values out of one raw row. The first failure is
// kept and every later call is a no-op returning a zero value, so a builder
// can read all of its columns and check Err once.
type RowParser struct {
	row []string
	idx HeaderIndex
	err error
}

// NewRowParser wraps a raw row and its header index.
func NewRowParser(row []string, idx HeaderIndex) *RowParser {
	return &RowParser{row: row, idx: idx}
}

// Err returns the first conversion error, if any.
func (p *RowParser) Err() error {
	return p.err
}

// Fail records err against column unless an earlier error exists. Callers
// use it for conversions RowParser does not know about, such as code lookups.
func (p *RowParser) Fail(column, value string, err error) {
	if p.err == nil && err != nil {
		p.err = &FieldError{Column: column, Value: value, Err: err}
	}
}

// Cell returns the raw value of column.
func (p *RowParser) Cell(column string) string {
	if p.err != nil {
		return ""
	}
	pos, ok := p.idx[strings.ToLower(column)]
	if !ok || pos >= len(p.row) {
		p.Fail(column, "", ErrMissingColumn)
		return ""
	}
	return p.row[pos]
}

// Text returns a column as a string, trimmed.
func (p *RowParser) Text(column string) string {
	return strings.TrimSpace(p.Cell(column))
}

// Int reads a required integer column.
func (p *RowParser) Int(column string) int64 {
	raw := p.Cell(column)
	if p.err != nil {
		return 0
	}
	i, err := ParseInt(raw)
	p.Fail(column, raw, err)
	return i
}

// OptionalInt reads an integer column that may be null.
func (p *RowParser) OptionalInt(column string) pgtype.Int8 {
	raw := p.Cell(column)
	if p.err != nil {
		return pgtype.Int8{}
	}
	i, err := ParseOptionalInt(raw)
	p.Fail(column, raw, err)
	return i
}

// Flag reads a "1"/"0" boolean column.
func (p *RowParser) Flag(column string) bool {
	return ParseFlag(p.Cell(column))
}
