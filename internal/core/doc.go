// Package core provides the table-level building blocks of an ingest run.
//
// It knows nothing about what the tables mean. Table semantics live in the
// definitions registered by package tables and in the sprite catalogues;
// core only moves rows.
//
// # Table Definitions
//
// A [TableDefinition] describes one destination table: where its source CSV
// lives, which source columns it needs, how a raw row becomes a typed record
// and how that record becomes positional output values:
//
//	reg.Register(core.TableDefinition{
//	    Info:        core.TableInfo{Key: "item_category", Source: "item_categories", Group: core.GroupTransformed},
//	    FieldSpecs:  []core.FieldSpec{{Name: "id", Required: true}, ...},
//	    BuildParams: buildItemCategory,
//	    CopyColumns: []string{"id", "pocket", "name"},
//	    CopyRow:     itemCategoryRow,
//	})
//
// Definitions without BuildParams are passthrough tables: the source file is
// streamed to the loader unchanged.
//
// # Loading
//
// [Load] is the single write path. It stages a CSV stream into a scratch
// copy of the destination table and inserts from there with
// ON CONFLICT DO NOTHING, so loading the same rows twice is a no-op.
//
// # Buffers
//
// Transformed tables and sprite catalogues are written to an in-memory
// [Buffer]: a CSV header followed by data rows, consumed directly by Load.
package core
