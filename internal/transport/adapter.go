package transport

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/metrics"
)

// Adapter tries the primary estimator and falls back to the category
// estimator. It never surfaces an error: a double failure is a deployment
// problem, not a per-request one, so it warn-logs and prices the leg at zero.
type Adapter struct {
	primary  Estimator
	fallback Estimator
	logger   zerolog.Logger
}

// NewAdapter wires the fallback chain. primary may be nil when no transport
// service is configured; the category fallback then serves every request.
func NewAdapter(primary, fallback Estimator, logger zerolog.Logger) *Adapter {
	return &Adapter{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "transport").Logger(),
	}
}

// Estimate returns a non-negative round-trip figure for the whole party.
func (a *Adapter) Estimate(ctx context.Context, origin, destination string, people int) float64 {
	if a.primary != nil {
		v, err := a.primary.Estimate(ctx, origin, destination, people)
		if err == nil && validAmount(v) {
			metrics.TransportEstimateTotal.WithLabelValues("primary").Inc()
			return v
		}
		metrics.CollaboratorFailures.WithLabelValues("transport_primary").Inc()
		a.logger.Warn().Err(err).Float64("amount", v).
			Str("origin", origin).Str("destination", destination).
			Msg("primary transport estimate unusable, trying category fallback")
	}

	if a.fallback != nil {
		v, err := a.fallback.Estimate(ctx, origin, destination, people)
		if err == nil && validAmount(v) {
			metrics.TransportEstimateTotal.WithLabelValues("category").Inc()
			return v
		}
		a.logger.Warn().Err(err).Float64("amount", v).
			Str("origin", origin).Str("destination", destination).
			Msg("category transport estimate unusable")
	}

	metrics.TransportEstimateTotal.WithLabelValues("none").Inc()
	a.logger.Warn().Str("origin", origin).Str("destination", destination).
		Msg("no transport estimate available, treating transport as zero cost")
	return 0
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
