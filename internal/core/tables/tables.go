// Package tables defines every table the ingester loads from the source
// dataset.
//
// Tables are registered in load order: whole-table copies first, then the
// transformed tables, each after the tables it references.
package tables

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
)

// Register adds all table definitions to reg.
func Register(reg *core.Registry, codes lookup.Set) {
	for _, def := range Definitions(codes) {
		reg.Register(def)
	}
}

// Definitions returns all table definitions in load order.
func Definitions(codes lookup.Set) []core.TableDefinition {
	defs := simpleDefinitions()
	defs = append(defs,
		typeMetadataDefinition(codes),
		growthMetadataDefinition(codes),
		itemCategoryDefinition(codes),
		itemDefinition(codes),
		speciesDefinition(codes),
		pokemonDefinition(codes),
	)
	return defs
}

// code resolves a required lookup column.
func code(p *core.RowParser, t lookup.Table, column string) string {
	raw := p.Cell(column)
	if p.Err() != nil {
		return ""
	}
	v, err := t.Resolve(raw)
	p.Fail(column, raw, err)
	return v
}

// optionalCode resolves a lookup column that may be empty, null or missing
// from the header entirely.
func optionalCode(p *core.RowParser, idx core.HeaderIndex, t lookup.Table, column string) pgtype.Text {
	if _, ok := idx[column]; !ok {
		return pgtype.Text{}
	}
	raw := p.Cell(column)
	if p.Err() != nil {
		return pgtype.Text{}
	}
	v, err := t.ResolveOptional(raw)
	p.Fail(column, raw, err)
	return v
}

// optionalInt reads an integer column that may be empty, null or missing
// from the header entirely.
func optionalInt(p *core.RowParser, idx core.HeaderIndex, column string) pgtype.Int8 {
	if _, ok := idx[column]; !ok {
		return pgtype.Int8{}
	}
	return p.OptionalInt(column)
}
