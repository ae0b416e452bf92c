// Package mapper turns recommendation results into recipe entities.
package mapper

import (
	"errors"
	"fmt"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/literal"
	"github.com/hyperjump/meshi/internal/models"
	"github.com/hyperjump/meshi/internal/recommend"
	"go.uber.org/zap"
)

// ErrMalformedField is returned when a stored list field cannot be parsed.
var ErrMalformedField = errors.New("malformed catalog field")

// Mapper converts matched rows into recipes.
type Mapper struct {
	skipMalformed bool
	logger        *zap.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithSkipMalformed drops rows whose list fields do not parse instead of
// failing the whole result. Each dropped row is logged as a warning. A result
// in which every row is dropped still fails with ErrMalformedField.
func WithSkipMalformed(l *zap.Logger) Option {
	return func(m *Mapper) {
		m.skipMalformed = true
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Mapper. By default a malformed field fails the request.
func New(opts ...Option) *Mapper {
	m := &Mapper{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToEntities converts res into recipes in ranking order.
// An empty result yields a nil slice and a nil error.
func (m *Mapper) ToEntities(res *recommend.Result) ([]*models.Recipe, error) {
	if res.Empty() {
		return nil, nil
	}
	out := make([]*models.Recipe, 0, len(res.Matches))
	for _, match := range res.Matches {
		recipe, err := ToRecipe(match.Row)
		if err != nil {
			if m.skipMalformed {
				m.logger.Warn("skipping malformed catalog row", zap.String("name", match.Row.Name), zap.Error(err))
				continue
			}
			return nil, err
		}
		if match.HasDistance {
			d := match.Distance
			recipe.Distance = &d
		}
		out = append(out, recipe)
	}
	if len(out) == 0 {
		m.logger.Error("every matched catalog row is malformed", zap.Int("matches", len(res.Matches)))
		return nil, fmt.Errorf("%w: all %d matched rows skipped", ErrMalformedField, len(res.Matches))
	}
	return out, nil
}

// ToEntities converts res with the default policy.
func ToEntities(res *recommend.Result) ([]*models.Recipe, error) {
	return New().ToEntities(res)
}

// ToRecipe converts a single catalog row.
func ToRecipe(row *catalog.Row) (*models.Recipe, error) {
	ingredients, err := literal.ParseStringList(row.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("%w: %q ingredients: %w", ErrMalformedField, row.Name, err)
	}
	steps, err := literal.ParseStringList(row.Steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %q steps: %w", ErrMalformedField, row.Name, err)
	}
	n := row.Nutrition
	return &models.Recipe{
		Name:               row.Name,
		PrepTime:           row.Minutes,
		NumIngredients:     row.NumIngredients,
		Ingredients:        ingredients,
		Calories:           n[catalog.Calories],
		TotalFat:           n[catalog.TotalFat],
		Sugar:              n[catalog.Sugar],
		Sodium:             n[catalog.Sodium],
		Protein:            n[catalog.Protein],
		SaturatedFat:       n[catalog.SaturatedFat],
		Carbohydrates:      n[catalog.Carbohydrates],
		RecipeInstructions: steps,
	}, nil
}
