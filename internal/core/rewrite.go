package core

import (
	"fmt"
	"io"
)

// Rewrite reads the raw rows of def's source from r, converts each through
// build and def.CopyRow, and returns the output table. The first bad row
// aborts the table.
func Rewrite(r io.Reader, def TableDefinition, build BuildParamsFunc) (*Buffer, error) {
	out := NewBuffer(def.CopyColumns...)

	err := ReadRecords(r, def.Info.Source, def.FieldSpecs, func(_ int, row []string, idx HeaderIndex) error {
		params, err := build(row, idx)
		if err != nil {
			return err
		}
		return out.Append(def.CopyRow(params)...)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transform opens def's source through open and rewrites it. For a table
// with a Prepare hook the hook runs first and may read side tables.
func Transform(open Opener, def TableDefinition) (*Buffer, error) {
	if def.Passthrough() {
		return nil, fmt.Errorf("%s: passthrough table has no transformation", def.Info.Key)
	}

	build := def.BuildParams
	if def.Prepare != nil {
		var err error
		build, err = def.Prepare(open)
		if err != nil {
			return nil, fmt.Errorf("%s: prepare: %w", def.Info.Key, err)
		}
	}

	f, err := open(def.Info.Source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Rewrite(f, def, build)
}
