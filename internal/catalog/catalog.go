// Package catalog defines the immutable recipe catalog and its loaders.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Nutrient identifies one of the seven nutrition features.
type Nutrient int

const (
	Calories Nutrient = iota
	TotalFat
	Sugar
	Sodium
	Protein
	SaturatedFat
	Carbohydrates
)

// NumNutrients is the length of every NutritionVector.
const NumNutrients = 7

var nutrientColumns = [NumNutrients]string{
	"calories",
	"total fat",
	"sugar",
	"sodium",
	"protein",
	"saturated fat",
	"carbohydrates",
}

// Column returns the catalog column name of the nutrient.
func (n Nutrient) Column() string {
	if n < 0 || int(n) >= NumNutrients {
		return "unknown"
	}
	return nutrientColumns[n]
}

// String returns the column name.
func (n Nutrient) String() string {
	return n.Column()
}

// Nutrients returns all nutrients in feature order.
func Nutrients() []Nutrient {
	out := make([]Nutrient, NumNutrients)
	for i := range out {
		out[i] = Nutrient(i)
	}
	return out
}

// NutritionVector holds one value per nutrient, in Nutrient order.
type NutritionVector [NumNutrients]float64

// Get returns the value for n.
func (v NutritionVector) Get(n Nutrient) float64 {
	return v[n]
}

// Category is a food-type category. The zero value CategoryAny means no category.
type Category int

const (
	CategoryAny Category = iota
	Vegan
	NonVegan
	VeganDessert
	NonVeganDessert
	Healthy
)

// ErrUnknownCategory is returned by ParseCategory for names outside the known set.
var ErrUnknownCategory = errors.New("unknown category")

var categoryNames = map[Category]string{
	Vegan:           "Vegan",
	NonVegan:        "Non-Vegan",
	VeganDessert:    "Vegan dessert",
	NonVeganDessert: "Non-Vegan dessert",
	Healthy:         "Healthy",
}

// Categories returns every concrete category (CategoryAny excluded).
func Categories() []Category {
	return []Category{Vegan, NonVegan, VeganDessert, NonVeganDessert, Healthy}
}

// String returns the display name, which is also the catalog column name.
func (c Category) String() string {
	if c == CategoryAny {
		return ""
	}
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether c is CategoryAny or a known category.
func (c Category) Valid() bool {
	if c == CategoryAny {
		return true
	}
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory maps a display name to a Category, case-insensitively.
// An empty (or blank) name yields CategoryAny.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryAny, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(name, categoryNames[c]) {
			return c, nil
		}
	}
	return CategoryAny, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// CategorySet is a set of category flags.
type CategorySet uint8

// With returns the set with c added.
func (s CategorySet) With(c Category) CategorySet {
	if c == CategoryAny || !c.Valid() {
		return s
	}
	return s | 1<<uint(c)
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	if c == CategoryAny {
		return true
	}
	return s&(1<<uint(c)) != 0
}

// Row is one catalog entry. Ingredients and Steps hold the stored list-literal text;
// use the mapper package to turn them into sequences.
type Row struct {
	Name           string
	Minutes        int
	NumIngredients int
	Ingredients    string
	Nutrition      NutritionVector
	Categories     CategorySet
	Steps          string
}

// Has reports whether the row carries category c. CategoryAny always matches.
func (r *Row) Has(c Category) bool {
	return r.Categories.Has(c)
}

// Table is an ordered, read-only sequence of rows in source order.
type Table struct {
	rows []Row
}

// NewTable takes ownership of rows. Callers must not modify rows afterwards.
func NewTable(rows []Row) *Table {
	return &Table{rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a pointer to row i. The row must not be modified.
func (t *Table) Row(i int) *Row {
	return &t.rows[i]
}

// Rows returns the backing rows. The slice is shared and must not be modified.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// Store is a named, immutable catalog shared by concurrent recommendation requests.
// It is constructed once by the service layer and injected where needed.
type Store struct {
	name  string
	table *Table
}

// NewStore wraps table. name identifies the catalog source in logs.
func NewStore(name string, table *Table) *Store {
	if table == nil {
		table = NewTable(nil)
	}
	return &Store{name: name, table: table}
}

// Name returns the catalog source name.
func (s *Store) Name() string {
	return s.name
}

// Table returns the catalog table.
func (s *Store) Table() *Table {
	return s.table
}

// Len returns the number of rows in the catalog.
func (s *Store) Len() int {
	return s.table.Len()
}
