package models

import (
	"fmt"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/filter"
	"github.com/hyperjump/meshi/internal/recommend"
)

// RecommendParams tunes the neighbor search.
type RecommendParams struct {
	NNeighbors     int  `json:"n_neighbors" validate:"min=0"`
	ReturnDistance bool `json:"return_distance"`
}

// RecommendRequest is the body of POST /recommend.
// NutritionInput lists ceilings in nutrient order; a null or missing entry
// leaves that nutrient unconstrained.
type RecommendRequest struct {
	NutritionInput []*float64       `json:"nutrition_input" validate:"max=7"`
	Ingredients    []string         `json:"ingredients" validate:"dive,required"`
	FoodType       string           `json:"food_type" validate:"omitempty,food_category"`
	Params         *RecommendParams `json:"params,omitempty"`
}

// RecommendResponse is the body returned by POST /recommend.
// Output is null when no recipe satisfied the constraints.
type RecommendResponse struct {
	Output []*Recipe `json:"output"`
}

// ToQuery converts the request into a pipeline query. A zero or missing
// neighbor count becomes defaultCount, or recommend.DefaultCount when that is not positive.
func (r *RecommendRequest) ToQuery(defaultCount int) (*recommend.Query, error) {
	if defaultCount <= 0 {
		defaultCount = recommend.DefaultCount
	}
	if len(r.NutritionInput) > catalog.NumNutrients {
		return nil, fmt.Errorf("%w: nutrition_input has %d values, at most %d allowed",
			recommend.ErrInvalidQuery, len(r.NutritionInput), catalog.NumNutrients)
	}
	category, err := catalog.ParseCategory(r.FoodType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recommend.ErrInvalidQuery, err)
	}

	var target filter.Target
	for i, v := range r.NutritionInput {
		if v != nil {
			target.Set(catalog.Nutrient(i), *v)
		}
	}
	q := &recommend.Query{
		Target:      target,
		Category:    category,
		Ingredients: r.Ingredients,
		K:           defaultCount,
	}
	if r.Params != nil {
		if r.Params.NNeighbors != 0 {
			q.K = r.Params.NNeighbors
		}
		q.WithDistances = r.Params.ReturnDistance
	}
	return q, nil
}
