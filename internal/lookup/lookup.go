// Package lookup holds the static code tables that turn the numeric ids of
// the source dataset into the enum names used by the destination schema.
//
// Tables are immutable once built. A Set is constructed once with New and
// handed to the transformers that need it.
package lookup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
)

// ErrUnknownCode is returned when a code is not present in its table.
var ErrUnknownCode = errors.New("unknown code")

// ErrNonCanonicalCode is returned for codes with a sign or leading zeros.
var ErrNonCanonicalCode = errors.New("non-canonical code")

// Table maps small integer codes to enum names.
type Table struct {
	name    string
	entries map[int]string
}

// NewTable copies entries into a new immutable table.
func NewTable(name string, entries map[int]string) Table {
	m := make(map[int]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Table{name: name, entries: m}
}

// Name identifies the table in error messages.
func (t Table) Name() string {
	return t.name
}

// Lookup returns the enum name for an integer code.
func (t Table) Lookup(code int) (string, bool) {
	v, ok := t.entries[code]
	return v, ok
}

// Resolve maps a required source code to its enum name. Empty, null,
// non-numeric and unknown codes all fail. Codes are matched in their
// canonical decimal form, so "012" and "+12" are rejected.
func (t Table) Resolve(raw string) (string, error) {
	if core.IsNull(raw) {
		return "", fmt.Errorf("%s: missing required code", t.name)
	}
	s := strings.TrimSpace(raw)

	code, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("%s: invalid code %q: %w", t.name, raw, err)
	}
	if strconv.Itoa(code) != s {
		return "", fmt.Errorf("%s: invalid code %q: %w", t.name, raw, ErrNonCanonicalCode)
	}

	v, ok := t.Lookup(code)
	if !ok {
		return "", fmt.Errorf("%s: %w %d", t.name, ErrUnknownCode, code)
	}
	return v, nil
}

// ResolveOptional maps an optional source code. An empty or null value is
// absent without consulting the table; any other value must resolve.
func (t Table) ResolveOptional(raw string) (pgtype.Text, error) {
	if core.IsNull(raw) {
		return pgtype.Text{}, nil
	}

	v, err := t.Resolve(raw)
	if err != nil {
		return pgtype.Text{}, err
	}
	return core.ToPgText(v), nil
}
