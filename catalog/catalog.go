// catalog/catalog.go - Activity Catalog (emission factors per unit)
package catalog

import (
	"fmt"
	"strings"
)

// Category groups catalog entries and is stored as the activity type.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryDevice    Category = "device"
	CategoryFood      Category = "food"
	CategoryGreen     Category = "green"
	CategoryStudent   Category = "student"
	CategoryLifestyle Category = "lifestyle"
	CategoryEnergy    Category = "energy"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryDevice,
	CategoryFood,
	CategoryGreen,
	CategoryStudent,
	CategoryLifestyle,
	CategoryEnergy,
}

// IsCategory reports whether s names a known category.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == strings.ToLower(s) {
			return true
		}
	}
	return false
}

// Entry is one activity with its emission factor.
// CarbonPerUnit is kg CO2e per Unit; negative values are avoided emissions.
type Entry struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Name          string   `json:"name"`
	CarbonPerUnit float64  `json:"carbon_per_unit"`
	Unit          string   `json:"unit"`
	Description   string   `json:"description"`
	IsEmission    bool     `json:"is_emission"`
}

// Catalog is an immutable, validated set of entries.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// New validates entries and builds a catalog from a copy of them.
func New(entries []Entry) (*Catalog, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}

	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		c.byID[e.ID] = i
	}
	return c, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(entries []Entry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks id uniqueness and that the sign of each factor agrees with IsEmission.
func Validate(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("catalog entry %q has empty id", e.Name)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate catalog id %q", e.ID)
		}
		seen[e.ID] = true

		if !IsCategory(string(e.Category)) {
			return fmt.Errorf("catalog entry %q has unknown category %q", e.ID, e.Category)
		}
		if e.IsEmission && e.CarbonPerUnit <= 0 {
			return fmt.Errorf("catalog entry %q is an emission but has factor %v", e.ID, e.CarbonPerUnit)
		}
		if !e.IsEmission && e.CarbonPerUnit > 0 {
			return fmt.Errorf("catalog entry %q is an avoidance but has factor %v", e.ID, e.CarbonPerUnit)
		}
	}
	return nil
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// ByCategory returns entries of one category in table order.
func (c *Catalog) ByCategory(category Category) []Entry {
	out := []Entry{}
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of every entry.
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
