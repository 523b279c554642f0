package core

import "io"

// Table groups. The pipeline loads every passthrough table before any
// transformed one.
const (
	GroupPassthrough = "passthrough"
	GroupTransformed = "transformed"
)

// FieldSpec describes one source CSV column a definition reads.
type FieldSpec struct {
	Name     string // Column header name (matched case-insensitively)
	Required bool   // Column must exist in the CSV header
}

// TableInfo identifies a table and its source.
type TableInfo struct {
	Key    string // Destination table: "pokemon"
	Source string // Source CSV file stem: "pokemon" (read as pokemon.csv)
	Group  string // GroupPassthrough or GroupTransformed
	Label  string // Human readable name used in logs
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// BuildParamsFunc parses one raw source row into the table's typed record.
type BuildParamsFunc func(row []string, headerIdx HeaderIndex) (any, error)

// CopyRowFunc converts a typed record into output values.
// The returned slice must be in the same order as CopyColumns.
type CopyRowFunc func(params any) []any

// Opener opens a source table by file stem.
type Opener func(name string) (io.ReadCloser, error)

// PrepareFunc builds a BuildParamsFunc that depends on side tables, read
// through open. It runs inside the table's own stage so a broken side table
// only fails that table.
type PrepareFunc func(open Opener) (BuildParamsFunc, error)

// TableDefinition contains everything needed to load one table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec

	// BuildParams parses a raw row. Nil (together with a nil Prepare) makes
	// the table a passthrough load.
	BuildParams BuildParamsFunc

	// Prepare, when set, replaces BuildParams.
	Prepare PrepareFunc

	// CopyColumns is the output header, positionally matching the
	// destination table (minus a generated key when GeneratedKey is set).
	CopyColumns []string

	// CopyRow converts the params struct (from BuildParams) to a row slice.
	CopyRow CopyRowFunc

	// GeneratedKey marks tables whose primary key is generated by the
	// database and therefore absent from the rows.
	GeneratedKey bool
}

// Passthrough reports whether the source file is loaded without rewriting.
func (t TableDefinition) Passthrough() bool {
	return t.BuildParams == nil && t.Prepare == nil
}

// LoadOptions tunes a single Load call.
type LoadOptions struct {
	// GeneratedKey: the rows omit the destination's generated primary key.
	GeneratedKey bool
}

// LoadResult reports what a Load call did.
type LoadResult struct {
	Table    string
	Columns  []string
	Staged   int64 // rows copied into the scratch table
	Inserted int64 // rows that were new to the destination
}

// Conflicts returns how many staged rows already existed.
func (r LoadResult) Conflicts() int64 {
	return r.Staged - r.Inserted
}
