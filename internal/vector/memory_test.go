package vector

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCosineIndex_Search(t *testing.T) {
	idx := NewCosineIndex(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0.9, 0.1, 0,
		0, 1, 0,
	}))
	if idx.Size() != 3 || idx.Dims() != 3 {
		t.Fatalf("Size=%d Dims=%d", idx.Size(), idx.Dims())
	}

	results, err := idx.Search([]float64{1, 0, 0}, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Row != 0 || results[1].Row != 1 {
		t.Errorf("order = %d, %d; want 0, 1", results[0].Row, results[1].Row)
	}
	if !results[0].HasDistance || math.Abs(results[0].Distance) > 1e-12 {
		t.Errorf("self distance = %g", results[0].Distance)
	}
}

func TestCosineIndex_SelfMatch(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	const n, d = 40, 7
	data := make([]float64, n*d)
	for i := range data {
		data[i] = r.NormFloat64()
	}
	m := mat.NewDense(n, d, data)
	idx := NewCosineIndex(m)
	for i := 0; i < n; i++ {
		res, err := idx.Search(mat.Row(nil, i, m), 1, true)
		if err != nil {
			t.Fatal(err)
		}
		if res[0].Row != i {
			t.Errorf("row %d: nearest is %d", i, res[0].Row)
		}
		if res[0].Distance > 1e-9 {
			t.Errorf("row %d: self distance %g", i, res[0].Distance)
		}
	}
}

func TestCosineIndex_SortedAndClamped(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	data := make([]float64, 10*4)
	for i := range data {
		data[i] = r.Float64()*2 - 1
	}
	idx := NewCosineIndex(mat.NewDense(10, 4, data))
	res, err := idx.Search([]float64{0.3, -0.2, 0.9, 0.1}, 50, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 10 {
		t.Fatalf("k not clamped: got %d results", len(res))
	}
	for i := 1; i < len(res); i++ {
		if res[i].Distance < res[i-1].Distance {
			t.Fatalf("not sorted at %d: %g < %g", i, res[i].Distance, res[i-1].Distance)
		}
	}
	for _, n := range res {
		if n.Distance < 0 || n.Distance > 2 {
			t.Errorf("distance %g out of [0, 2]", n.Distance)
		}
	}
}

func TestCosineIndex_TiesKeepOrder(t *testing.T) {
	idx := NewCosineIndex(mat.NewDense(4, 2, []float64{
		0, 1,
		2, 0,
		1, 0,
		3, 0,
	}))
	res, err := idx.Search([]float64{1, 0}, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3, 0}
	for i, n := range res {
		if n.Row != want[i] {
			t.Errorf("position %d: row %d, want %d", i, n.Row, want[i])
		}
		if n.HasDistance || n.Distance != 0 {
			t.Errorf("distance should be omitted: %+v", n)
		}
	}
}

func TestCosineIndex_ZeroVectors(t *testing.T) {
	idx := NewCosineIndex(mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	}))
	res, err := idx.Search([]float64{0, 0}, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range res {
		if n.Distance != 1 {
			t.Errorf("zero query: row %d distance %g, want 1", n.Row, n.Distance)
		}
	}
	if res[0].Row != 0 {
		t.Errorf("equal distances should keep order, got row %d first", res[0].Row)
	}
}

func TestCosineIndex_Errors(t *testing.T) {
	idx := NewCosineIndex(mat.NewDense(1, 2, []float64{1, 2}))
	if _, err := idx.Search([]float64{1}, 1, false); !errors.Is(err, ErrDimension) {
		t.Errorf("got %v, want ErrDimension", err)
	}
	if _, err := idx.Search([]float64{1, 2}, 0, false); err == nil {
		t.Error("expected error for k=0")
	}
	if _, err := idx.Search([]float64{math.NaN(), 2}, 1, false); err == nil {
		t.Error("expected error for NaN query")
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		a, b []float64
		want float64
	}{
		{[]float64{1, 0}, []float64{1, 0}, 0},
		{[]float64{1, 0}, []float64{0, 1}, 1},
		{[]float64{1, 0}, []float64{-1, 0}, 2},
		{[]float64{0, 0}, []float64{1, 0}, 1},
		{[]float64{1}, []float64{1, 0}, 1},
	}
	for _, tt := range tests {
		if got := CosineDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CosineDistance(%v, %v) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

var _ Index = (*CosineIndex)(nil)
