// Package scaler standardizes nutrition features to zero mean and unit variance.
package scaler

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrNonFinite is returned when an input value is NaN or infinite.
var ErrNonFinite = errors.New("non-finite feature value")

// ErrEmpty is returned when fitting an empty matrix.
var ErrEmpty = errors.New("cannot fit scaler on empty matrix")

// Params holds the per-column statistics of one fit.
// A zero Std marks a degenerate column, scaled to exactly 0.
type Params struct {
	Mean []float64
	Std  []float64
}

// Fit computes population mean and standard deviation per column of m and returns
// a new standardized matrix. m is not modified.
func Fit(m *mat.Dense) (*mat.Dense, *Params, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, nil, ErrEmpty
	}
	p := &Params{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, fmt.Errorf("%w: row %d column %d", ErrNonFinite, i, j)
			}
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		p.Mean[j] = mean
		// A constant column stays degenerate even when rounding leaves a tiny variance.
		if floats.Max(col) != floats.Min(col) && variance > 0 {
			p.Std[j] = math.Sqrt(variance)
		}
	}

	scaled := mat.NewDense(rows, cols, nil)
	scaled.Apply(func(_, j int, v float64) float64 {
		return p.scale(j, v)
	}, m)
	return scaled, p, nil
}

func (p *Params) scale(j int, v float64) float64 {
	if p.Std[j] == 0 {
		return 0
	}
	return (v - p.Mean[j]) / p.Std[j]
}

// Transform standardizes v with the fitted parameters.
func (p *Params) Transform(v []float64) ([]float64, error) {
	if len(v) != len(p.Mean) {
		return nil, fmt.Errorf("vector has %d features, scaler was fit on %d", len(v), len(p.Mean))
	}
	out := make([]float64, len(v))
	for j, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: feature %d", ErrNonFinite, j)
		}
		out[j] = p.scale(j, x)
	}
	return out, nil
}
