// Package models defines the recipe entity and the recommendation request and response bodies.
package models

// Recipe is one recommended catalog entry. Field names follow the public API.
type Recipe struct {
	Name               string   `json:"Name"`
	PrepTime           int      `json:"PrepTime"`
	NumIngredients     int      `json:"NumIngredients"`
	Ingredients        []string `json:"Ingredients"`
	Calories           float64  `json:"Calories"`
	TotalFat           float64  `json:"TotalFat"`
	Sugar              float64  `json:"Sugar"`
	Sodium             float64  `json:"Sodium"`
	Protein            float64  `json:"Protein"`
	SaturatedFat       float64  `json:"SaturatedFat"`
	Carbohydrates      float64  `json:"Carbohydrates"`
	RecipeInstructions []string `json:"RecipeInstructions"`
	// Distance is the cosine distance to the query; present only when requested.
	Distance *float64 `json:"Distance,omitempty"`
}
