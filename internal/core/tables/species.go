package tables

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
)

// Species is one row of species.
type Species struct {
	ID                  int64
	Name                string
	GenerationID        int64
	EvolvesFrom         pgtype.Int8
	EvolutionChainID    int64
	Color               string
	Shape               string
	Habitat             pgtype.Text
	GenderRate          int64
	CaptureRate         int64
	BaseHappiness       int64
	IsBaby              bool
	HatchCounter        int64
	HasGenderDifference bool
	GrowthRate          string
	FormsSwitchable     bool
	IsLegendary         bool
	IsMythical          bool
	NaturalOrder        int64
	ConquestOrder       pgtype.Int8
}

func speciesDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "species",
			Source: "pokemon_species",
			Group:  core.GroupTransformed,
			Label:  "Species",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "identifier", Required: true},
			{Name: "generation_id", Required: true},
			{Name: "evolves_from_species_id"},
			{Name: "evolution_chain_id", Required: true},
			{Name: "color_id", Required: true},
			{Name: "shape_id", Required: true},
			{Name: "habitat_id"},
			{Name: "gender_rate", Required: true},
			{Name: "capture_rate", Required: true},
			{Name: "base_happiness", Required: true},
			{Name: "is_baby", Required: true},
			{Name: "hatch_counter", Required: true},
			{Name: "has_gender_differences", Required: true},
			{Name: "growth_rate_id", Required: true},
			{Name: "forms_switchable", Required: true},
			{Name: "is_legendary", Required: true},
			{Name: "is_mythical", Required: true},
			{Name: "order", Required: true},
			{Name: "conquest_order"},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			p := core.NewRowParser(row, idx)
			s := Species{
				ID:                  p.Int("id"),
				Name:                p.Text("identifier"),
				GenerationID:        p.Int("generation_id"),
				EvolvesFrom:         optionalInt(p, idx, "evolves_from_species_id"),
				EvolutionChainID:    p.Int("evolution_chain_id"),
				Color:               code(p, codes.Colors, "color_id"),
				Shape:               code(p, codes.Shapes, "shape_id"),
				Habitat:             optionalCode(p, idx, codes.Habitats, "habitat_id"),
				GenderRate:          p.Int("gender_rate"),
				CaptureRate:         p.Int("capture_rate"),
				BaseHappiness:       p.Int("base_happiness"),
				IsBaby:              p.Flag("is_baby"),
				HatchCounter:        p.Int("hatch_counter"),
				HasGenderDifference: p.Flag("has_gender_differences"),
				GrowthRate:          code(p, codes.GrowthRates, "growth_rate_id"),
				FormsSwitchable:     p.Flag("forms_switchable"),
				IsLegendary:         p.Flag("is_legendary"),
				IsMythical:          p.Flag("is_mythical"),
				NaturalOrder:        p.Int("order"),
				ConquestOrder:       optionalInt(p, idx, "conquest_order"),
			}
			return s, p.Err()
		},
		CopyColumns: []string{
			"id", "name", "generation_id", "evolves_from", "evolution_chain_id",
			"color", "shape", "habitat", "gender_rate", "capture_rate",
			"base_happiness", "is_baby", "hatch_counter", "has_gender_difference", "growth_rate",
			"forms_switchable", "is_legendary", "is_mythical", "natural_order", "conquest_order",
		},
		CopyRow: func(params any) []any {
			s := params.(Species)
			return []any{
				s.ID, s.Name, s.GenerationID, s.EvolvesFrom, s.EvolutionChainID,
				s.Color, s.Shape, s.Habitat, s.GenderRate, s.CaptureRate,
				s.BaseHappiness, s.IsBaby, s.HatchCounter, s.HasGenderDifference, s.GrowthRate,
				s.FormsSwitchable, s.IsLegendary, s.IsMythical, s.NaturalOrder, s.ConquestOrder,
			}
		},
	}
}
