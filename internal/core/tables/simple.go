package tables

import "github.com/JonMunkholm/pokedex-ingest/internal/core"

// simpleDefinitions lists the tables whose source file already has the
// destination's shape. Their files are streamed to the loader untouched.
func simpleDefinitions() []core.TableDefinition {
	simple := []struct {
		key, source, label string
	}{
		{"evolution_chain", "evolution_chains", "Evolution Chains"},
		{"region", "regions", "Regions"},
		{"generation", "generations", "Generations"},
		{"version_group", "version_groups", "Version Groups"},
		{"version", "versions", "Versions"},
	}

	defs := make([]core.TableDefinition, 0, len(simple))
	for _, s := range simple {
		defs = append(defs, core.TableDefinition{
			Info: core.TableInfo{
				Key:    s.key,
				Source: s.source,
				Group:  core.GroupPassthrough,
				Label:  s.label,
			},
		})
	}
	return defs
}
