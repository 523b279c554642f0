package database

import (
	"strings"

	"github.com/lib/pq"
)

// QuoteIdentifier quotes s for use as a SQL identifier unless it is already
// quoted.
func QuoteIdentifier(s string) string {
	if IsQuotedIdentifier(s) {
		return s
	}
	return pq.QuoteIdentifier(s)
}

// QuoteIdentifiers quotes every element and joins them with ", ".
func QuoteIdentifiers(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdentifier(strings.TrimSpace(n))
	}
	return strings.Join(quoted, ", ")
}

func IsQuotedIdentifier(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
