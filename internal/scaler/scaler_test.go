package scaler

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const tol = 1e-9

func TestFit_StandardizesColumns(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const rows, cols = 50, 7
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = r.Float64()*1000 - 100
	}
	m := mat.NewDense(rows, cols, data)
	orig := mat.DenseCopyOf(m)

	scaled, params, err := Fit(m)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(m, orig) {
		t.Error("Fit must not modify its input")
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, scaled)
		mean, variance := stat.PopMeanVariance(col, nil)
		if math.Abs(mean) > tol {
			t.Errorf("column %d mean = %g, want 0", j, mean)
		}
		if math.Abs(variance-1) > tol {
			t.Errorf("column %d variance = %g, want 1", j, variance)
		}
		if params.Std[j] <= 0 {
			t.Errorf("column %d std = %g, want > 0", j, params.Std[j])
		}
	}
}

func TestFit_DegenerateColumn(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		0.1, 1,
		0.1, 2,
		0.1, 3,
	})
	scaled, params, err := Fit(m)
	if err != nil {
		t.Fatal(err)
	}
	if params.Std[0] != 0 {
		t.Errorf("constant column std = %g, want 0", params.Std[0])
	}
	for i := 0; i < 3; i++ {
		if v := scaled.At(i, 0); v != 0 {
			t.Errorf("degenerate cell (%d,0) = %g, want exactly 0", i, v)
		}
	}
	out, err := params.Transform([]float64{42, 2})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 0 {
		t.Errorf("transformed degenerate feature = %g, want 0", out[0])
	}
	if math.Abs(out[1]) > tol {
		t.Errorf("transformed mean value = %g, want 0", out[1])
	}
}

func TestFit_SingleRow(t *testing.T) {
	scaled, params, err := Fit(mat.NewDense(1, 3, []float64{5, 6, 7}))
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 3; j++ {
		if scaled.At(0, j) != 0 || params.Std[j] != 0 {
			t.Errorf("single row column %d should be degenerate", j)
		}
	}
}

func TestTransform_MatchesFit(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 80,
	})
	scaled, params, err := Fit(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		out, err := params.Transform(mat.Row(nil, i, m))
		if err != nil {
			t.Fatal(err)
		}
		for j := range out {
			if math.Abs(out[j]-scaled.At(i, j)) > tol {
				t.Errorf("row %d col %d: transform %g, fit %g", i, j, out[j], scaled.At(i, j))
			}
		}
	}
}

func TestFit_Errors(t *testing.T) {
	if _, _, err := Fit(&mat.Dense{}); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty matrix: got %v, want ErrEmpty", err)
	}
	m := mat.NewDense(2, 1, []float64{1, math.NaN()})
	if _, _, err := Fit(m); !errors.Is(err, ErrNonFinite) {
		t.Errorf("NaN input: got %v, want ErrNonFinite", err)
	}
	_, params, err := Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := params.Transform([]float64{1}); err == nil {
		t.Error("expected error for wrong vector length")
	}
	if _, err := params.Transform([]float64{math.Inf(1), 1}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Inf input: got %v, want ErrNonFinite", err)
	}
}
