package lookup

// Set bundles every code table used by the transformers.
type Set struct {
	Types         Table
	DamageClasses Table
	GrowthRates   Table
	ItemPockets   Table
	FlingEffects  Table
	Colors        Table
	Shapes        Table
	Habitats      Table
}

// New builds the code tables.
func New() Set {
	return Set{
		Types: NewTable("type", map[int]string{
			1:     "Normal",
			2:     "Fighting",
			3:     "Flying",
			4:     "Poison",
			5:     "Ground",
			6:     "Rock",
			7:     "Bug",
			8:     "Ghost",
			9:     "Steel",
			10:    "Fire",
			11:    "Water",
			12:    "Grass",
			13:    "Electric",
			14:    "Psychic",
			15:    "Ice",
			16:    "Dragon",
			17:    "Dark",
			18:    "Fairy",
			19:    "Stellar",
			10001: "Unknown",
			10002: "Shadow",
		}),
		DamageClasses: NewTable("damage class", map[int]string{
			1: "Status",
			2: "Physical",
			3: "Special",
		}),
		GrowthRates: NewTable("growth rate", map[int]string{
			1: "Slow",
			2: "Medium",
			3: "Fast",
			4: "MediumSlow",
			5: "SlowThenVeryFast",
			6: "FastThenVerySlow",
		}),
		ItemPockets: NewTable("item pocket", map[int]string{
			1: "Misc",
			2: "Medicine",
			3: "Pokeballs",
			4: "Machines",
			5: "Berries",
			6: "Mail",
			7: "Battle",
			8: "Key",
		}),
		FlingEffects: NewTable("fling effect", map[int]string{
			1: "BadPoison",
			2: "Burn",
			3: "BerryEffect",
			4: "HerbEffect",
			5: "Paralyze",
			6: "Poison",
			7: "Flinch",
		}),
		Colors: NewTable("color", map[int]string{
			1:  "Black",
			2:  "Blue",
			3:  "Brown",
			4:  "Gray",
			5:  "Green",
			6:  "Pink",
			7:  "Purple",
			8:  "Red",
			9:  "White",
			10: "Yellow",
		}),
		Shapes: NewTable("shape", map[int]string{
			1:  "Ball",
			2:  "Squiggle",
			3:  "Fish",
			4:  "Arms",
			5:  "Blob",
			6:  "Upright",
			7:  "Legs",
			8:  "Quadruped",
			9:  "Wings",
			10: "Tentacles",
			11: "Heads",
			12: "Humanoid",
			13: "BugWings",
			14: "Armor",
		}),
		Habitats: NewTable("habitat", map[int]string{
			1: "Cave",
			2: "Forest",
			3: "Grassland",
			4: "Mountain",
			5: "Rare",
			6: "RoughTerrain",
			7: "Sea",
			8: "Urban",
			9: "WatersEdge",
		}),
	}
}
