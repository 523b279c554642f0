package tables

import (
	"io"
	"sort"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
)

// TypeAssignmentSource is the side table pokemon rows take their types from.
const TypeAssignmentSource = "pokemon_types"

// TypeAssignment assigns one type to a pokemon at a slot.
type TypeAssignment struct {
	PokemonID int64
	Type      string
	Slot      int64
}

// TypePair holds the types of one pokemon ordered by slot.
type TypePair struct {
	Primary   pgtype.Text
	Secondary pgtype.Text
}

// AggregateTypes groups assignments per pokemon. The lowest slot becomes the
// primary type and the next one the secondary, whatever the input order.
func AggregateTypes(assignments []TypeAssignment) map[int64]TypePair {
	byPokemon := make(map[int64][]TypeAssignment)
	for _, a := range assignments {
		byPokemon[a.PokemonID] = append(byPokemon[a.PokemonID], a)
	}

	pairs := make(map[int64]TypePair, len(byPokemon))
	for id, list := range byPokemon {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Slot != list[j].Slot {
				return list[i].Slot < list[j].Slot
			}
			return list[i].Type < list[j].Type
		})

		pair := TypePair{Primary: pgtype.Text{String: list[0].Type, Valid: true}}
		if len(list) > 1 {
			pair.Secondary = pgtype.Text{String: list[1].Type, Valid: true}
		}
		pairs[id] = pair
	}
	return pairs
}

// ReadTypeAssignments parses the type assignment side table.
func ReadTypeAssignments(r io.Reader, types lookup.Table) ([]TypeAssignment, error) {
	specs := []core.FieldSpec{
		{Name: "pokemon_id", Required: true},
		{Name: "type_id", Required: true},
		{Name: "slot", Required: true},
	}

	var out []TypeAssignment
	err := core.ReadRecords(r, TypeAssignmentSource, specs, func(_ int, row []string, idx core.HeaderIndex) error {
		p := core.NewRowParser(row, idx)
		a := TypeAssignment{
			PokemonID: p.Int("pokemon_id"),
			Type:      code(p, types, "type_id"),
			Slot:      p.Int("slot"),
		}
		if err := p.Err(); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

// Pokemon is one row of pokemon.
type Pokemon struct {
	ID             int64
	Name           string
	Types          TypePair
	SpeciesID      int64
	HeightDm       int64
	WeightHg       int64
	BaseExperience int64
	NaturalOrder   pgtype.Int8
	IsDefault      bool
}

// BuildPokemon parses a pokemon source row, taking its types from pairs.
// A pokemon without assignments gets absent types.
func BuildPokemon(pairs map[int64]TypePair) core.BuildParamsFunc {
	return func(row []string, idx core.HeaderIndex) (any, error) {
		p := core.NewRowParser(row, idx)
		pk := Pokemon{
			ID:             p.Int("id"),
			Name:           p.Text("identifier"),
			SpeciesID:      p.Int("species_id"),
			HeightDm:       p.Int("height"),
			WeightHg:       p.Int("weight"),
			BaseExperience: p.Int("base_experience"),
			NaturalOrder:   optionalInt(p, idx, "order"),
			IsDefault:      p.Flag("is_default"),
		}
		if err := p.Err(); err != nil {
			return nil, err
		}
		pk.Types = pairs[pk.ID]
		return pk, nil
	}
}

func pokemonDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "pokemon",
			Source: "pokemon",
			Group:  core.GroupTransformed,
			Label:  "Pokemon",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "identifier", Required: true},
			{Name: "species_id", Required: true},
			{Name: "height", Required: true},
			{Name: "weight", Required: true},
			{Name: "base_experience", Required: true},
			{Name: "order"},
			{Name: "is_default", Required: true},
		},
		Prepare: func(open core.Opener) (core.BuildParamsFunc, error) {
			f, err := open(TypeAssignmentSource)
			if err != nil {
				return nil, err
			}
			defer f.Close()

			assignments, err := ReadTypeAssignments(f, codes.Types)
			if err != nil {
				return nil, err
			}
			return BuildPokemon(AggregateTypes(assignments)), nil
		},
		CopyColumns: []string{
			"id", "name", "primaryType", "secondaryType", "species_id",
			"height_dm", "weight_hg", "base_experience", "natural_order", "is_default",
		},
		CopyRow: func(params any) []any {
			pk := params.(Pokemon)
			return []any{
				pk.ID, pk.Name, pk.Types.Primary, pk.Types.Secondary, pk.SpeciesID,
				pk.HeightDm, pk.WeightHg, pk.BaseExperience, pk.NaturalOrder, pk.IsDefault,
			}
		},
	}
}
