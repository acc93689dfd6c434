// Package nlp is the boundary to the language understanding collaborators.
// It classifies utterances as on or off topic and extracts loosely-typed trip
// facts, normalizing the extractor's sentinel placeholders before they reach
// the core slot model.
package nlp

import (
	"context"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Intent is the coarse routing decision for one utterance.
type Intent string

const (
	IntentTripPlanning Intent = "trip_planning"
	IntentOffTopic     Intent = "off_topic"
)

// IntentClassifier decides whether an utterance belongs to trip planning.
type IntentClassifier interface {
	Classify(ctx context.Context, utterance string) (Intent, error)
}

// SlotExtractor pulls trip facts out of an utterance. Prior slots are passed
// for conversational context only; the returned slots carry just what this
// utterance itself established, already normalized.
type SlotExtractor interface {
	Extract(ctx context.Context, utterance string, prior model.TripSlots) (model.TripSlots, error)
}
