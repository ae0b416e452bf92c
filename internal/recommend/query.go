package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/filter"
)

// DefaultCount is the number of recommendations returned when a caller does not ask for a count.
const DefaultCount = 5

// ErrInvalidQuery is returned for queries that are rejected before filtering.
var ErrInvalidQuery = errors.New("invalid query")

// Query is one recommendation request.
type Query struct {
	// Target holds the nutrition ceilings. They also form the vector the
	// neighbors are ranked against.
	Target        filter.Target
	Category      catalog.Category
	Ingredients   []string
	K             int
	WithDistances bool
}

// Validate checks q and returns an error wrapping ErrInvalidQuery.
// maxCount <= 0 disables the upper bound on K.
func (q *Query) Validate(maxCount int) error {
	if q.K <= 0 {
		return fmt.Errorf("%w: result count must be positive, got %d", ErrInvalidQuery, q.K)
	}
	if maxCount > 0 && q.K > maxCount {
		return fmt.Errorf("%w: result count %d exceeds maximum %d", ErrInvalidQuery, q.K, maxCount)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, catalog.ErrUnknownCategory)
	}
	for i, ing := range q.Ingredients {
		if ing == "" {
			return fmt.Errorf("%w: ingredient %d is empty", ErrInvalidQuery, i)
		}
	}
	for _, n := range catalog.Nutrients() {
		if v, ok := q.Target.Limit(n); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return fmt.Errorf("%w: %s ceiling is not finite", ErrInvalidQuery, n)
		}
	}
	return nil
}

func (q *Query) constraints() filter.Constraints {
	return filter.Constraints{
		Target:      q.Target,
		Category:    q.Category,
		Ingredients: q.Ingredients,
	}
}
