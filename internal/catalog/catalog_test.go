package catalog

import (
	"errors"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{
			Name: "lentil soup", Minutes: 40, NumIngredients: 3,
			Ingredients: "['lentils', 'salt', 'water']",
			Steps:       "['boil water', 'add lentils']",
			Nutrition:   NutritionVector{210, 3, 4, 12, 20, 1, 6},
			Categories:  CategorySet(0).With(Vegan).With(Healthy),
		},
		{
			Name: "chocolate cake", Minutes: 75, NumIngredients: 4,
			Ingredients: "['flour', 'eggs', 'sugar', 'cocoa']",
			Steps:       "['mix', 'bake']",
			Nutrition:   NutritionVector{520.5, 30, 90, 8, 9, 18, 22},
			Categories:  CategorySet(0).With(NonVeganDessert),
		},
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"", CategoryAny, false},
		{"  ", CategoryAny, false},
		{"Vegan", Vegan, false},
		{"non-vegan", NonVegan, false},
		{"Vegan dessert", VeganDessert, false},
		{"Non-Vegan dessert", NonVeganDessert, false},
		{"HEALTHY", Healthy, false},
		{"Keto", CategoryAny, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownCategory) {
				t.Errorf("error should wrap ErrUnknownCategory: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategory_StringRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("round trip %v: got %v", c, got)
		}
	}
	if Category(42).Valid() {
		t.Error("Category(42) should not be valid")
	}
}

func TestCategorySet(t *testing.T) {
	s := CategorySet(0).With(Vegan).With(Healthy)
	if !s.Has(Vegan) || !s.Has(Healthy) {
		t.Errorf("set should contain Vegan and Healthy: %b", s)
	}
	if s.Has(NonVegan) || s.Has(VeganDessert) {
		t.Errorf("set should not contain NonVegan or VeganDessert: %b", s)
	}
	if !s.Has(CategoryAny) {
		t.Error("CategoryAny should match every set")
	}
	if s.With(CategoryAny) != s || s.With(Category(42)) != s {
		t.Error("adding CategoryAny or an invalid category should not change the set")
	}
}

func TestNutrientColumns(t *testing.T) {
	want := []string{"calories", "total fat", "sugar", "sodium", "protein", "saturated fat", "carbohydrates"}
	for i, n := range Nutrients() {
		if n.Column() != want[i] {
			t.Errorf("nutrient %d column = %q, want %q", i, n.Column(), want[i])
		}
	}
	if Nutrient(NumNutrients).Column() != "unknown" {
		t.Error("out-of-range nutrient should be unknown")
	}
}

func TestStore(t *testing.T) {
	store := NewStore("test", NewTable(sampleRows()))
	if store.Len() != 2 || store.Name() != "test" {
		t.Fatalf("store: len=%d name=%q", store.Len(), store.Name())
	}
	if store.Table().Row(1).Name != "chocolate cake" {
		t.Errorf("row 1: got %q", store.Table().Row(1).Name)
	}
	empty := NewStore("empty", nil)
	if empty.Len() != 0 {
		t.Errorf("nil table store should be empty, got %d", empty.Len())
	}
}
