package notify

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/model"
)

// AlertSender is the notifier surface the dispatcher drives.
type AlertSender interface {
	SendSecurityAlert(ctx context.Context, alert model.SecurityAlert, user model.UserProfile) []ChannelResult
}

// Dispatcher consumes security alert events off the bus and fans them out
// through the notifier. An alert that reaches no channel at all is retried
// with exponential backoff up to maxAttempts; partial delivery counts as
// success because the remaining channels already logged their failure.
type Dispatcher struct {
	bus      *events.Bus
	notifier AlertSender
	logger   zerolog.Logger

	maxAttempts int
	baseBackoff time.Duration
	maxInterval time.Duration
}

// NewDispatcher wires a dispatcher with default retry policy.
func NewDispatcher(bus *events.Bus, notifier AlertSender, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		bus:         bus,
		notifier:    notifier,
		logger:      logger.With().Str("component", "alert_dispatcher").Logger(),
		maxAttempts: 5,
		baseBackoff: 200 * time.Millisecond,
		maxInterval: 10 * time.Second,
	}
}

// Run blocks consuming events until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Msg("alert dispatcher started")
	sub := d.bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("alert dispatcher stopped")
			return
		case evt := <-sub:
			if evt.Kind != events.EventSecurityAlertRaised {
				continue
			}
			d.dispatch(ctx, evt)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, evt events.Event) {
	if evt.Alert == nil || evt.Profile == nil {
		d.logger.Warn().Str("user_id", evt.UserID).Msg("alert event missing payload, dropped")
		return
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = d.baseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = d.maxInterval
	exp.Reset()

	for attempt := 1; ; attempt++ {
		results := d.notifier.SendSecurityAlert(ctx, *evt.Alert, *evt.Profile)
		if anyDelivered(results) {
			d.logger.Info().
				Str("user_id", evt.Profile.UserID).
				Str("severity", evt.Alert.Severity).
				Int("attempt", attempt).
				Int("channels", countDelivered(results)).
				Msg("security alert delivered")
			return
		}
		if len(results) == 0 {
			d.logger.Warn().
				Str("user_id", evt.Profile.UserID).
				Msg("security alert has no reachable channel, dropped")
			return
		}
		if attempt >= d.maxAttempts {
			d.logger.Error().
				Str("user_id", evt.Profile.UserID).
				Str("severity", evt.Alert.Severity).
				Int("attempts", attempt).
				Msg("security alert undeliverable, giving up")
			return
		}

		wait := exp.NextBackOff()
		d.logger.Warn().
			Str("user_id", evt.Profile.UserID).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("all channels failed, retrying alert")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}
}

func anyDelivered(results []ChannelResult) bool {
	return countDelivered(results) > 0
}

func countDelivered(results []ChannelResult) int {
	n := 0
	for _, r := range results {
		if r.Delivered {
			n++
		}
	}
	return n
}
