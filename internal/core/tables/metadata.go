package tables

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
)

// TypeMetadata is one row of type_metadata.
type TypeMetadata struct {
	Type         string
	GenerationID int64
	DamageClass  pgtype.Text
}

func typeMetadataDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "type_metadata",
			Source: "types",
			Group:  core.GroupTransformed,
			Label:  "Type Metadata",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "generation_id", Required: true},
			{Name: "damage_class_id"},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			p := core.NewRowParser(row, idx)
			m := TypeMetadata{
				Type:         code(p, codes.Types, "id"),
				GenerationID: p.Int("generation_id"),
				DamageClass:  optionalCode(p, idx, codes.DamageClasses, "damage_class_id"),
			}
			return m, p.Err()
		},
		CopyColumns: []string{"ptype", "generation_id", "damage_class"},
		CopyRow: func(params any) []any {
			m := params.(TypeMetadata)
			return []any{m.Type, m.GenerationID, m.DamageClass}
		},
	}
}

// GrowthMetadata is one row of growth_metadata.
type GrowthMetadata struct {
	Rate    string
	Formula string
}

func growthMetadataDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "growth_metadata",
			Source: "growth_rates",
			Group:  core.GroupTransformed,
			Label:  "Growth Metadata",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "formula", Required: true},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			p := core.NewRowParser(row, idx)
			m := GrowthMetadata{
				Rate:    code(p, codes.GrowthRates, "id"),
				Formula: p.Cell("formula"),
			}
			return m, p.Err()
		},
		CopyColumns: []string{"rate", "formula"},
		CopyRow: func(params any) []any {
			m := params.(GrowthMetadata)
			return []any{m.Rate, m.Formula}
		},
	}
}
