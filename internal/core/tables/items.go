package tables

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/lookup"
)

// ItemCategory is one row of item_category.
type ItemCategory struct {
	ID     int64
	Pocket string
	Name   string
}

func itemCategoryDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "item_category",
			Source: "item_categories",
			Group:  core.GroupTransformed,
			Label:  "Item Categories",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "pocket_id", Required: true},
			{Name: "identifier", Required: true},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			p := core.NewRowParser(row, idx)
			c := ItemCategory{
				ID:     p.Int("id"),
				Pocket: code(p, codes.ItemPockets, "pocket_id"),
				Name:   p.Text("identifier"),
			}
			return c, p.Err()
		},
		CopyColumns: []string{"id", "pocket", "name"},
		CopyRow: func(params any) []any {
			c := params.(ItemCategory)
			return []any{c.ID, c.Pocket, c.Name}
		},
	}
}

// Item is one row of item.
type Item struct {
	ID          int64
	Name        string
	CategoryID  int64
	Cost        int64
	FlingPower  pgtype.Int8
	FlingEffect pgtype.Text
}

func itemDefinition(codes lookup.Set) core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:    "item",
			Source: "items",
			Group:  core.GroupTransformed,
			Label:  "Items",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Required: true},
			{Name: "identifier", Required: true},
			{Name: "category_id", Required: true},
			{Name: "cost", Required: true},
			{Name: "fling_power"},
			{Name: "fling_effect_id"},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			p := core.NewRowParser(row, idx)
			it := Item{
				ID:          p.Int("id"),
				Name:        p.Text("identifier"),
				CategoryID:  p.Int("category_id"),
				Cost:        p.Int("cost"),
				FlingPower:  optionalInt(p, idx, "fling_power"),
				FlingEffect: optionalCode(p, idx, codes.FlingEffects, "fling_effect_id"),
			}
			return it, p.Err()
		},
		CopyColumns: []string{"id", "name", "category_id", "cost", "fling_power", "fling_effect"},
		CopyRow: func(params any) []any {
			it := params.(Item)
			return []any{it.ID, it.Name, it.CategoryID, it.Cost, it.FlingPower, it.FlingEffect}
		},
	}
}
