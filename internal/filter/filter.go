// Package filter reduces a catalog to the rows that satisfy hard constraints.
package filter

import (
	"strings"

	"github.com/hyperjump/meshi/internal/catalog"
)

// Target holds optional exclusive upper bounds, one per nutrient.
// The zero value constrains nothing.
type Target struct {
	max         catalog.NutritionVector
	constrained [catalog.NumNutrients]bool
}

// NewTarget returns a target with every nutrient of v constrained.
func NewTarget(v catalog.NutritionVector) Target {
	var t Target
	for _, n := range catalog.Nutrients() {
		t.Set(n, v[n])
	}
	return t
}

// Set constrains n to values strictly below max.
func (t *Target) Set(n catalog.Nutrient, max float64) {
	t.max[n] = max
	t.constrained[n] = true
}

// Clear removes the constraint on n.
func (t *Target) Clear(n catalog.Nutrient) {
	t.max[n] = 0
	t.constrained[n] = false
}

// Limit returns the ceiling for n and whether n is constrained.
func (t Target) Limit(n catalog.Nutrient) (float64, bool) {
	return t.max[n], t.constrained[n]
}

// Constrained reports whether any nutrient is constrained.
func (t Target) Constrained() bool {
	for _, c := range t.constrained {
		if c {
			return true
		}
	}
	return false
}

// Values returns the ceiling vector; unconstrained entries are zero.
func (t Target) Values() catalog.NutritionVector {
	return t.max
}

// Constraints are the hard constraints of one query. They compose conjunctively.
type Constraints struct {
	Target      Target
	Category    catalog.Category
	Ingredients []string
}

// Match reports whether row satisfies every constraint in c.
func (c *Constraints) Match(row *catalog.Row) bool {
	for n, limited := range c.Target.constrained {
		if limited && !(row.Nutrition[n] < c.Target.max[n]) {
			return false
		}
	}
	if !row.Has(c.Category) {
		return false
	}
	// Plain substring containment on the stored text: "egg" matches "eggplant".
	for _, ing := range c.Ingredients {
		if !strings.Contains(row.Ingredients, ing) {
			return false
		}
	}
	return true
}

// Apply returns the positions in rows that satisfy c, in their original order.
// The result may be empty.
func Apply(rows []catalog.Row, c Constraints) []int {
	out := make([]int, 0)
	for i := range rows {
		if c.Match(&rows[i]) {
			out = append(out, i)
		}
	}
	return out
}
