// Package transport produces round-trip transport cost figures between an
// origin and a destination. The exported Adapter wraps a primary estimator
// with a category-based fallback so feasibility checks always get a number.
package transport

import "context"

// Estimator prices a round trip for the whole party, in INR.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string, people int) (float64, error)
}
