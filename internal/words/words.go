// Package words holds the static category/word dataset. The catalog is
// embedded at build time and read-only: categories map to word+hint
// entries that rounds sample from.
package words

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
)

//go:embed categories.json
var categoriesJSON []byte

type Entry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type Catalog struct {
	categories map[string][]Entry
	names      []string
}

// Load parses the embedded dataset. It fails on an empty catalog, an
// empty category, or an entry missing its word or hint, so a bad data
// file is caught at startup rather than mid-round.
func Load() (*Catalog, error) {
	var categories map[string][]Entry
	if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
		return nil, fmt.Errorf("parsing categories.json: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("categories.json is empty")
	}

	names := make([]string, 0, len(categories))
	for name, entries := range categories {
		if len(entries) == 0 {
			return nil, fmt.Errorf("category %q has no entries", name)
		}
		for _, e := range entries {
			if e.Word == "" || e.Hint == "" {
				return nil, fmt.Errorf("category %q has an entry missing word or hint", name)
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{categories: categories, names: names}, nil
}

// Categories returns all category names in sorted order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.names...)
}

// Has reports whether name is a known category.
func (c *Catalog) Has(name string) bool {
	_, ok := c.categories[name]
	return ok
}

// Pick samples a category uniformly from the given set (or from the
// whole catalog when the set is empty), then samples one of its entries
// uniformly. Unknown categories are an error.
func (c *Catalog) Pick(categories []string) (category string, entry Entry, err error) {
	pool := categories
	if len(pool) == 0 {
		pool = c.names
	}

	category = pool[rand.IntN(len(pool))]
	entries, ok := c.categories[category]
	if !ok {
		return "", Entry{}, fmt.Errorf("unknown category %q", category)
	}
	return category, entries[rand.IntN(len(entries))], nil
}
