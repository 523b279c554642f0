package sprite

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
)

// VersionSource is the source table version names are read from.
const VersionSource = "versions"

// ErrUnknownVersion is returned for a version directory that names no known
// version.
var ErrUnknownVersion = errors.New("unknown version")

// VersionMatcher finds the game versions named in a directory name.
// Names are tried longest first so that "red" never matches inside
// "firered".
type VersionMatcher struct {
	ids     map[string]int64
	pattern *regexp.Regexp
}

// NewVersionMatcher builds a matcher from version identifiers to ids.
func NewVersionMatcher(versions map[string]int64) (*VersionMatcher, error) {
	ids := make(map[string]int64, len(versions))
	names := make([]string, 0, len(versions))
	for name, id := range versions {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := ids[name]; !dup {
			names = append(names, name)
		}
		ids[name] = id
	}
	if len(names) == 0 {
		return nil, errors.New("no version names")
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}

	return &VersionMatcher{
		ids:     ids,
		pattern: regexp.MustCompile(strings.Join(quoted, "|")),
	}, nil
}

// LoadVersionMatcher builds a matcher from the versions source table
// (columns id, identifier).
func LoadVersionMatcher(r io.Reader) (*VersionMatcher, error) {
	specs := []core.FieldSpec{
		{Name: "id", Required: true},
		{Name: "identifier", Required: true},
	}

	versions := make(map[string]int64)
	err := core.ReadRecords(r, VersionSource, specs, func(_ int, row []string, idx core.HeaderIndex) error {
		p := core.NewRowParser(row, idx)
		id := p.Int("id")
		name := p.Text("identifier")
		if err := p.Err(); err != nil {
			return err
		}
		versions[name] = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	m, err := NewVersionMatcher(versions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", VersionSource, err)
	}
	return m, nil
}

// Len returns the number of known version names.
func (m *VersionMatcher) Len() int {
	return len(m.ids)
}

// Match returns the ids of the versions named in dir, in the order they
// appear, each once.
func (m *VersionMatcher) Match(dir string) ([]int64, error) {
	names := m.pattern.FindAllString(strings.ToLower(dir), -1)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, dir)
	}

	seen := make(map[int64]bool, len(names))
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		id := m.ids[n]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
