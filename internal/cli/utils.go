// Package cli provides CLI utilities for meshi.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/models"
	"github.com/hyperjump/meshi/pkg/utils"
)

// OutputFormat is the format for recommendation output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one recipe per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is the API response body, for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
}

// WriteRecipes writes recommended recipes to w in the given format.
// A nil slice means no recipe matched.
func WriteRecipes(w io.Writer, recipes []*models.Recipe, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models.RecommendResponse{Output: recipes})
	case OutputCompact:
		for i, r := range recipes {
			fmt.Fprintf(w, "%d\t%s\t%d min\t%.1f kcal%s\n", i+1, r.Name, r.PrepTime, r.Calories, distanceSuffix(r, "\t"))
		}
		return nil
	default:
		writeRecipesText(w, recipes)
		return nil
	}
}

func writeRecipesText(w io.Writer, recipes []*models.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "\nNo recipe matches the given constraints.")
		return
	}
	fmt.Fprintf(w, "\nFound %d recipes\n\n", len(recipes))
	for i, r := range recipes {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. %s%s\n", i+1, r.Name, distanceSuffix(r, " | "))
		fmt.Fprintf(w, "Prep time: %d min | Ingredients: %d\n", r.PrepTime, r.NumIngredients)
		fmt.Fprintf(w, "Calories %.1f | Fat %.1f | Saturated fat %.1f | Sugar %.1f | Sodium %.1f | Protein %.1f | Carbohydrates %.1f\n",
			r.Calories, r.TotalFat, r.SaturatedFat, r.Sugar, r.Sodium, r.Protein, r.Carbohydrates)
		fmt.Fprintf(w, "\nIngredients: %s\n", strings.Join(r.Ingredients, ", "))
		for j, step := range r.RecipeInstructions {
			fmt.Fprintf(w, "  %d. %s\n", j+1, utils.Truncate(step, 200))
		}
		fmt.Fprintln(w)
	}
}

func distanceSuffix(r *models.Recipe, sep string) string {
	if r.Distance == nil {
		return ""
	}
	return fmt.Sprintf("%sdistance %.4f", sep, *r.Distance)
}

// ParseIngredients splits a comma-separated ingredient list, trimming spaces
// and dropping empty entries.
func ParseIngredients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseNutrition parses comma-separated ceilings in nutrient order. An empty
// entry leaves that nutrient unconstrained: "500,,20" limits calories and sugar.
func ParseNutrition(s string) ([]*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > catalog.NumNutrients {
		return nil, fmt.Errorf("at most %d nutrition values allowed, got %d", catalog.NumNutrients, len(parts))
	}
	out := make([]*float64, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", catalog.Nutrient(i), err)
		}
		out[i] = &v
	}
	return out, nil
}
