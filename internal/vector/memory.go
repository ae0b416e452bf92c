package vector

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CosineIndex is a brute-force cosine index. It computes the distance from the
// query to every row; there is no approximate structure.
// A built index is read-only and safe for concurrent searches.
type CosineIndex struct {
	dims  int
	rows  [][]float64
	norms []float64
}

// NewCosineIndex builds an index over the rows of m. The rows are copied.
func NewCosineIndex(m *mat.Dense) *CosineIndex {
	r, c := m.Dims()
	idx := &CosineIndex{
		dims:  c,
		rows:  make([][]float64, r),
		norms: make([]float64, r),
	}
	for i := 0; i < r; i++ {
		idx.rows[i] = mat.Row(nil, i, m)
		idx.norms[i] = floats.Norm(idx.rows[i], 2)
	}
	return idx
}

// Size returns the number of indexed rows.
func (x *CosineIndex) Size() int {
	return len(x.rows)
}

// Dims returns the vector dimensionality.
func (x *CosineIndex) Dims() int {
	return x.dims
}

// Search returns the k rows closest to query by cosine distance, closest first.
// Rows at equal distance keep their index order. k larger than the index is
// clamped to its size.
func (x *CosineIndex) Search(query []float64, k int, withDistances bool) ([]Neighbor, error) {
	if len(query) != x.dims {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDimension, len(query), x.dims)
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	for _, v := range query {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("query contains non-finite value")
		}
	}

	qn := floats.Norm(query, 2)
	hits := make([]Neighbor, len(x.rows))
	for i, row := range x.rows {
		sim := 0.0
		if qn != 0 && x.norms[i] != 0 {
			sim = floats.Dot(query, row) / (qn * x.norms[i])
		}
		hits[i] = Neighbor{Row: i, Distance: clipDistance(1 - sim)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if k > len(hits) {
		k = len(hits)
	}
	hits = hits[:k]
	for i := range hits {
		if withDistances {
			hits[i].HasDistance = true
		} else {
			hits[i].Distance = 0
		}
	}
	return hits, nil
}
