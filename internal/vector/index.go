// Package vector provides exact nearest-neighbor search over scaled feature vectors.
package vector

import "errors"

// ErrDimension is returned when a query does not match the index dimensionality.
var ErrDimension = errors.New("vector dimension mismatch")

// Index defines nearest-neighbor search over a fixed set of row vectors.
type Index interface {
	Search(query []float64, k int, withDistances bool) ([]Neighbor, error)
	Size() int
	Dims() int
}

// Neighbor is a single search hit. Row is the position in the indexed matrix.
type Neighbor struct {
	Row         int
	Distance    float64 // Cosine distance in [0, 2]; set only when HasDistance
	HasDistance bool
}
