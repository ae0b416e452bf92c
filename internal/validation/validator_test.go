package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Category    string   `json:"food_type" validate:"omitempty,food_category"`
	Count       int      `json:"n_neighbors" validate:"min=0,max=10"`
	Ingredients []string `json:"ingredients" validate:"max=3,dive,required"`
	Ignored     string   `json:"-" validate:"required"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{"valid", sample{Category: "vegan", Count: 5, Ingredients: []string{"salt"}, Ignored: "x"}, "", ""},
		{"blank category allowed", sample{Ignored: "x"}, "", ""},
		{"unknown category", sample{Category: "Keto", Ignored: "x"}, "food_type", "must be one of: Vegan, Non-Vegan"},
		{"count too high", sample{Count: 11, Ignored: "x"}, "n_neighbors", "n_neighbors must be at most 10"},
		{"negative count", sample{Count: -1, Ignored: "x"}, "n_neighbors", "at least 0"},
		{"too many ingredients", sample{Ingredients: []string{"a", "b", "c", "d"}, Ignored: "x"}, "ingredients", "at most 3 entries"},
		{"empty ingredient", sample{Ingredients: []string{"a", ""}, Ignored: "x"}, "ingredients[1]", "is required"},
		{"struct field name without json", sample{}, "Ignored", "Ignored is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("expected 1 field error, got %+v", verr.Fields)
			}
			f := verr.Fields[0]
			if f.Field != tt.wantField {
				t.Errorf("field = %q, want %q", f.Field, tt.wantField)
			}
			if !strings.Contains(f.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", f.Message, tt.wantMsg)
			}
			if err.Error() != f.Message {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}
