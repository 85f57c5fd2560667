// Package categorize maps CNAE activity descriptions to expense categories
// by keyword containment. It is a best-effort heuristic, not a taxonomy.
package categorize

import (
	"strings"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
)

// Categorizer resolves a free-text activity description to a category.
// The table is injected so tests can pin deterministic fixtures.
type Categorizer struct {
	table []constants.CategoryKeywords
}

func New(table []constants.CategoryKeywords) *Categorizer {
	if table == nil {
		table = constants.DefaultKeywordTable()
	}
	return &Categorizer{table: table}
}

// Categorize returns the first category whose keyword occurs in the
// description. Category order in the table decides collisions; any hit within
// a category short-circuits. Empty description or no hit yields Other.
func (c *Categorizer) Categorize(description string) constants.Category {
	if description == "" {
		return constants.Other
	}
	lower := strings.ToLower(description)
	for _, entry := range c.table {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Category
			}
		}
	}
	return constants.Other
}
