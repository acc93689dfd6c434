package research

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/metrics"
	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Query identifies one research request. Destination drives caching; the
// remaining fields parameterize the individual lookups.
type Query struct {
	Origin      string
	Destination string
	Days        int
	People      int
	StartDate   *time.Time
}

// Researcher fetches the four-part research bundle for a destination,
// consulting the cache first. The four lookups are independent and run
// concurrently, each under its own timeout; a failed or slow lookup degrades
// to an empty blob instead of failing the bundle.
type Researcher struct {
	provider Provider
	cache    *Cache
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewResearcher wires a researcher. perCallTimeout bounds each of the four
// lookups individually, not the bundle as a whole.
func NewResearcher(provider Provider, cache *Cache, perCallTimeout time.Duration, logger zerolog.Logger) *Researcher {
	return &Researcher{
		provider: provider,
		cache:    cache,
		timeout:  perCallTimeout,
		logger:   logger.With().Str("component", "researcher").Logger(),
	}
}

// Research returns the bundle for the query's destination. It never fails;
// the worst case is a bundle of empty blobs, which downstream parsing
// resolves to defaults.
func (r *Researcher) Research(ctx context.Context, q Query) model.CostResearch {
	if hit, ok := r.cache.Get(q.Destination); ok {
		metrics.ResearchCacheLookups.WithLabelValues("hit").Inc()
		return hit
	}
	metrics.ResearchCacheLookups.WithLabelValues("miss").Inc()

	var bundle model.CostResearch
	var wg sync.WaitGroup
	wg.Add(4)

	// Each goroutine writes a distinct field; wg.Wait orders them before the
	// final read.
	go func() {
		defer wg.Done()
		bundle.BudgetInfo = r.lookup(ctx, "budget_info", func(c context.Context) (string, error) {
			return r.provider.BudgetInfo(c, q.Destination, q.Days, q.People)
		})
	}()
	go func() {
		defer wg.Done()
		bundle.SafetyAdvisory = r.lookup(ctx, "safety_advisory", func(c context.Context) (string, error) {
			return r.provider.SafetyAdvisory(c, q.Destination)
		})
	}()
	go func() {
		defer wg.Done()
		bundle.Weather = r.lookup(ctx, "weather", func(c context.Context) (string, error) {
			return r.provider.Weather(c, q.Destination, q.StartDate)
		})
	}()
	go func() {
		defer wg.Done()
		bundle.TravelDocuments = r.lookup(ctx, "travel_documents", func(c context.Context) (string, error) {
			return r.provider.TravelDocuments(c, q.Origin, q.Destination)
		})
	}()

	wg.Wait()

	// An all-empty bundle means every lookup failed; caching it would pin the
	// outage for a full TTL, so skip and let the next turn retry.
	if bundle != (model.CostResearch{}) {
		r.cache.Put(q.Destination, bundle)
	} else {
		r.logger.Warn().Str("destination", q.Destination).Msg("all research lookups failed; bundle not cached")
	}
	return bundle
}

func (r *Researcher) lookup(ctx context.Context, name string, fn func(context.Context) (string, error)) string {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := fn(callCtx)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues(name).Inc()
		r.logger.Warn().Err(err).Str("lookup", name).Msg("research lookup failed, degrading to empty text")
		return ""
	}
	return text
}
