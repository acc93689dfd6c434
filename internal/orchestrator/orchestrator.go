// Package orchestrator sequences one conversation turn: intent, extraction,
// merge, completeness, research, feasibility, strategy. Every external call
// degrades to a bounded fallback; no turn fails hard.
package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/feasibility"
	"github.com/voyagetravel/voyage-backend/internal/metrics"
	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/nlp"
	"github.com/voyagetravel/voyage-backend/internal/planner"
	"github.com/voyagetravel/voyage-backend/internal/research"
	"github.com/voyagetravel/voyage-backend/internal/slots"
)

// Researcher supplies the four-part research bundle for a destination.
type Researcher interface {
	Research(ctx context.Context, q research.Query) model.CostResearch
}

// TransportEstimator prices the round trip; it never fails, worst case zero.
type TransportEstimator interface {
	Estimate(ctx context.Context, origin, destination string, people int) float64
}

// Orchestrator drives the turn state machine.
type Orchestrator struct {
	classifier nlp.IntentClassifier
	extractor  nlp.SlotExtractor
	researcher Researcher
	transport  TransportEstimator
	merger     slots.Merger
	bus        *events.Bus
	logger     zerolog.Logger
}

// New wires an orchestrator. bus may be nil when no background consumers run.
func New(
	classifier nlp.IntentClassifier,
	extractor nlp.SlotExtractor,
	researcher Researcher,
	transport TransportEstimator,
	merger slots.Merger,
	bus *events.Bus,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		extractor:  extractor,
		researcher: researcher,
		transport:  transport,
		merger:     merger,
		bus:        bus,
		logger:     logger.With().Str("component", "orchestrator").Logger(),
	}
}

// HandleTurn processes one utterance against the prior slot set and returns
// the turn verdict plus the merged slots the caller should persist.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID, utterance string, prior model.TripSlots) model.TurnResult {
	start := time.Now()
	result := o.handleTurn(ctx, utterance, prior)
	metrics.TurnSeconds.Observe(time.Since(start).Seconds())
	metrics.TurnsTotal.WithLabelValues(string(result.Status)).Inc()

	o.publishTurn(sessionID, result.Status)
	o.logger.Info().
		Str("sessionId", sessionID).
		Str("status", string(result.Status)).
		Strs("missing", result.MissingFields).
		Msg("turn handled")
	return result
}

func (o *Orchestrator) handleTurn(ctx context.Context, utterance string, prior model.TripSlots) model.TurnResult {
	intent, err := o.classifier.Classify(ctx, utterance)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("intent_classifier").Inc()
		o.logger.Warn().Err(err).Msg("intent classification failed, asking user to restate")
		return o.couldNotUnderstand(prior)
	}
	if intent != nlp.IntentTripPlanning {
		return model.TurnResult{
			Status: model.StatusOffTopic,
			Slots:  prior,
			Reply:  offTopicReply,
		}
	}

	fresh, err := o.extractor.Extract(ctx, utterance, prior)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("slot_extractor").Inc()
		o.logger.Warn().Err(err).Msg("slot extraction failed, asking user to restate")
		return o.couldNotUnderstand(prior)
	}

	merged := o.merger.Merge(prior, fresh)

	missing := slots.Missing(merged)
	if len(missing) > 0 {
		// Deliberate cost control: no research or transport lookups run
		// until the slot set is complete.
		return model.TurnResult{
			Status:        model.StatusCollecting,
			Slots:         merged,
			MissingFields: missing,
			KnownFields:   slots.Known(merged),
			Reply:         collectingReply(missing),
		}
	}

	return o.evaluate(ctx, merged)
}

// evaluate runs the cost pipeline on a complete slot set.
func (o *Orchestrator) evaluate(ctx context.Context, merged model.TripSlots) model.TurnResult {
	origin, destination := *merged.OriginCity, *merged.Destination

	bundle := o.researcher.Research(ctx, research.Query{
		Origin:      origin,
		Destination: destination,
		Days:        *merged.NumDays,
		People:      merged.NumPeople,
		StartDate:   merged.StartDate,
	})

	estimate := research.ParseDailyMinimum(bundle.BudgetInfo)
	metrics.EstimateSourceTotal.WithLabelValues(string(estimate.Source)).Inc()

	transportTotal := o.transport.Estimate(ctx, origin, destination, merged.NumPeople)

	verdict := feasibility.Evaluate(feasibility.Inputs{
		DailyMinimumPerPerson: estimate.DailyMinimumPerPerson,
		NumDays:               *merged.NumDays,
		NumPeople:             merged.NumPeople,
		Budget:                *merged.Budget,
		TransportTotal:        transportTotal,
		EstimateSource:        estimate.Source,
	})

	if !verdict.IsSufficient {
		// Remember the user's first choice so a later budget increase is
		// re-validated against it. An existing marker is older and wins.
		if merged.OriginalDestination == nil {
			d := destination
			merged.OriginalDestination = &d
		}
		return model.TurnResult{
			Status:      model.StatusInsufficient,
			Slots:       merged,
			KnownFields: slots.Known(merged),
			Feasibility: &verdict,
			Reply:       insufficientReply(destination, verdict),
		}
	}

	strategy := planner.Select(verdict)
	return model.TurnResult{
		Status:      model.StatusSufficient,
		Slots:       merged,
		KnownFields: slots.Known(merged),
		Feasibility: &verdict,
		Strategy:    string(strategy),
		Reply:       sufficientReply(destination, verdict, strategy, bundle),
	}
}

func (o *Orchestrator) couldNotUnderstand(prior model.TripSlots) model.TurnResult {
	return model.TurnResult{
		Status:        model.StatusCollecting,
		Slots:         prior,
		MissingFields: slots.Missing(prior),
		KnownFields:   slots.Known(prior),
		Reply:         couldNotUnderstandReply,
	}
}

func (o *Orchestrator) publishTurn(sessionID string, status model.TurnStatus) {
	if o.bus == nil {
		return
	}
	ok := o.bus.Publish(events.Event{
		Kind:      events.EventTurnEvaluated,
		SessionID: sessionID,
		Status:    string(status),
	})
	if !ok {
		o.logger.Debug().Str("sessionId", sessionID).Msg("event bus full, turn event dropped")
	}
}
