// Package recommend runs the content-based recommendation pipeline:
// filter the catalog, standardize the subset, and rank it by cosine distance.
package recommend

import (
	"fmt"
	"time"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/filter"
	"github.com/hyperjump/meshi/internal/scaler"
	"github.com/hyperjump/meshi/internal/vector"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Observer receives one call per finished recommendation.
type Observer interface {
	ObserveRecommendation(category string, subset, matches int, elapsed time.Duration, err error)
}

// Match is one recommended catalog row.
type Match struct {
	Row         *catalog.Row
	Distance    float64
	HasDistance bool
}

// Result is the ordered output of one recommendation, closest first.
type Result struct {
	Matches []Match
	Subset  int // rows left after filtering
	Elapsed time.Duration
}

// Empty reports whether no row satisfied the query constraints.
func (r *Result) Empty() bool {
	return r == nil || len(r.Matches) == 0
}

// Engine recommends rows from an injected catalog. Per-query state is local to
// Recommend, so an Engine is safe for concurrent use.
type Engine struct {
	store    *catalog.Store
	logger   *zap.Logger
	maxCount int
	observer Observer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for per-query debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxCount bounds the result count a query may ask for. n <= 0 removes the bound.
func WithMaxCount(n int) EngineOption {
	return func(e *Engine) { e.maxCount = n }
}

// WithMetrics reports every query to o.
func WithMetrics(o Observer) EngineOption {
	return func(e *Engine) { e.observer = o }
}

// NewEngine creates an engine over store.
func NewEngine(store *catalog.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the catalog the engine recommends from.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// Recommend returns the K catalog rows nearest to the query target among the rows
// that satisfy its constraints. A query no row satisfies yields an empty Result
// and a nil error.
func (e *Engine) Recommend(q *Query) (*Result, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", ErrInvalidQuery)
	}
	start := time.Now()
	res, err := e.recommend(q)
	elapsed := time.Since(start)
	if res != nil {
		res.Elapsed = elapsed
	}

	subset, matches := 0, 0
	if res != nil {
		subset, matches = res.Subset, len(res.Matches)
	}
	if e.observer != nil {
		e.observer.ObserveRecommendation(q.Category.String(), subset, matches, elapsed, err)
	}
	if err != nil {
		e.logger.Debug("recommendation failed", zap.Error(err))
		return nil, err
	}
	e.logger.Debug("recommendation",
		zap.String("catalog", e.store.Name()),
		zap.String("category", q.Category.String()),
		zap.Int("subset", subset),
		zap.Int("k", q.K),
		zap.Int("matches", matches),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func (e *Engine) recommend(q *Query) (*Result, error) {
	if err := q.Validate(e.maxCount); err != nil {
		return nil, err
	}
	rows := e.store.Table().Rows()
	subset := filter.Apply(rows, q.constraints())
	if len(subset) == 0 {
		return &Result{}, nil
	}

	scaled, params, err := scaler.Fit(featureMatrix(rows, subset))
	if err != nil {
		return nil, fmt.Errorf("scale subset: %w", err)
	}
	index := vector.NewCosineIndex(scaled)

	target, err := params.Transform(targetVector(q.Target, params))
	if err != nil {
		return nil, fmt.Errorf("scale target: %w", err)
	}
	neighbors, err := index.Search(target, q.K, q.WithDistances)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	res := &Result{
		Matches: make([]Match, len(neighbors)),
		Subset:  len(subset),
	}
	for i, n := range neighbors {
		res.Matches[i] = Match{
			Row:         &rows[subset[n.Row]],
			Distance:    n.Distance,
			HasDistance: n.HasDistance,
		}
	}
	return res, nil
}

// featureMatrix copies the nutrition vectors of the subset rows into a dense matrix.
func featureMatrix(rows []catalog.Row, subset []int) *mat.Dense {
	data := make([]float64, 0, len(subset)*catalog.NumNutrients)
	for _, i := range subset {
		data = append(data, rows[i].Nutrition[:]...)
	}
	return mat.NewDense(len(subset), catalog.NumNutrients, data)
}

// targetVector returns the ceilings of t. An unconstrained nutrient takes the
// subset mean, so it scales to 0 and does not pull the ranking.
func targetVector(t filter.Target, p *scaler.Params) []float64 {
	v := make([]float64, catalog.NumNutrients)
	for _, n := range catalog.Nutrients() {
		if limit, ok := t.Limit(n); ok {
			v[n] = limit
		} else {
			v[n] = p.Mean[n]
		}
	}
	return v
}
