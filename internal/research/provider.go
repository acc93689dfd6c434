// Package research gathers per-destination cost intelligence. A Researcher
// fans out the four independent lookups, caches the bundle per destination,
// and the cost-signal parser distills a daily spending floor from the
// free-form text that comes back.
package research

import (
	"context"
	"time"
)

// Provider is the external destination-research collaborator. Each method
// returns a free-form text blob; callers treat the text as untrusted prose.
type Provider interface {
	BudgetInfo(ctx context.Context, destination string, days, people int) (string, error)
	SafetyAdvisory(ctx context.Context, destination string) (string, error)
	Weather(ctx context.Context, destination string, start *time.Time) (string, error)
	TravelDocuments(ctx context.Context, origin, destination string) (string, error)
}
