package core

import (
	"fmt"
	"sort"
)

// Registry holds table definitions in registration order. The order is the
// load order, so register referenced tables first.
type Registry struct {
	defs  []TableDefinition
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered or if a
// transformed table has no output columns.
func (r *Registry) Register(def TableDefinition) {
	if _, exists := r.index[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}
	if !def.Passthrough() && (len(def.CopyColumns) == 0 || def.CopyRow == nil) {
		panic(fmt.Sprintf("table %s: transformed tables need CopyColumns and CopyRow", def.Info.Key))
	}

	if def.Info.Source == "" {
		def.Info.Source = def.Info.Key
	}
	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}

	r.index[def.Info.Key] = len(r.defs)
	r.defs = append(r.defs, def)
}

// Get returns a table definition by key.
// Returns false if not found.
func (r *Registry) Get(key string) (TableDefinition, bool) {
	i, ok := r.index[key]
	if !ok {
		return TableDefinition{}, false
	}
	return r.defs[i], true
}

// All returns all registered table definitions in registration order.
func (r *Registry) All() []TableDefinition {
	result := make([]TableDefinition, len(r.defs))
	copy(result, r.defs)
	return result
}

// ByGroup returns the definitions of one group in registration order.
func (r *Registry) ByGroup(group string) []TableDefinition {
	var result []TableDefinition
	for _, def := range r.defs {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}
	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	for _, def := range r.defs {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// TableCount returns the number of registered tables.
func (r *Registry) TableCount() int {
	return len(r.defs)
}
