package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a required catalog column is absent from the header.
var ErrMissingColumn = errors.New("missing catalog column")

const (
	colName           = "name"
	colMinutes        = "minutes"
	colNumIngredients = "n_ingredients"
	colIngredients    = "ingredients"
	colSteps          = "steps"
)

// columnMap maps semantic fields to positions in a source record. It is resolved once
// per load from the header and is fixed for every record of that source.
type columnMap struct {
	name           int
	minutes        int
	numIngredients int
	ingredients    int
	steps          int
	nutrients      [NumNutrients]int
	categories     map[Category]int
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// resolveColumns builds the column map from a header row. Category columns are optional;
// a missing category column means no row carries that category.
func resolveColumns(header []string) (*columnMap, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}
	lookup := func(col string) (int, error) {
		i, ok := pos[col]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
		return i, nil
	}

	m := &columnMap{categories: make(map[Category]int)}
	var err error
	if m.name, err = lookup(colName); err != nil {
		return nil, err
	}
	if m.minutes, err = lookup(colMinutes); err != nil {
		return nil, err
	}
	if m.numIngredients, err = lookup(colNumIngredients); err != nil {
		return nil, err
	}
	if m.ingredients, err = lookup(colIngredients); err != nil {
		return nil, err
	}
	if m.steps, err = lookup(colSteps); err != nil {
		return nil, err
	}
	for _, n := range Nutrients() {
		if m.nutrients[n], err = lookup(n.Column()); err != nil {
			return nil, err
		}
	}
	for _, c := range Categories() {
		if i, ok := pos[strings.ToLower(c.String())]; ok {
			m.categories[c] = i
		}
	}
	return m, nil
}

// canonicalHeader returns the column order written by exporters.
func canonicalHeader() []string {
	h := []string{colName, colMinutes, colNumIngredients, colIngredients, colSteps}
	for _, n := range Nutrients() {
		h = append(h, n.Column())
	}
	for _, c := range Categories() {
		h = append(h, c.String())
	}
	return h
}

// parseRecord converts one source record into a Row. line is used in error messages.
// The ingredients and steps cells are stored exactly as read.
func (m *columnMap) parseRecord(record []string, line int) (Row, error) {
	raw := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}
	field := func(i int) string {
		return strings.TrimSpace(raw(i))
	}
	row := Row{
		Name:        field(m.name),
		Ingredients: raw(m.ingredients),
		Steps:       raw(m.steps),
	}
	var err error
	if row.Minutes, err = parseInt(field(m.minutes)); err != nil {
		return Row{}, fmt.Errorf("line %d: %s: %w", line, colMinutes, err)
	}
	if row.NumIngredients, err = parseInt(field(m.numIngredients)); err != nil {
		return Row{}, fmt.Errorf("line %d: %s: %w", line, colNumIngredients, err)
	}
	for _, n := range Nutrients() {
		v, err := strconv.ParseFloat(field(m.nutrients[n]), 64)
		if err != nil {
			return Row{}, fmt.Errorf("line %d: %s: %w", line, n.Column(), err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Row{}, fmt.Errorf("line %d: %s: non-finite value %q", line, n.Column(), field(m.nutrients[n]))
		}
		row.Nutrition[n] = v
	}
	for c, i := range m.categories {
		ok, err := parseFlag(field(i))
		if err != nil {
			return Row{}, fmt.Errorf("line %d: %s: %w", line, c.String(), err)
		}
		if ok {
			row.Categories = row.Categories.With(c)
		}
	}
	return row, nil
}

// parseInt accepts integers and integral floats ("12" or "12.0").
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// parseFlag reads a category flag; an empty cell is false.
func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, fmt.Errorf("invalid flag %q", s)
	}
	return f != 0, nil
}
