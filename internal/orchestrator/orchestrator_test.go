package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/nlp"
	"github.com/voyagetravel/voyage-backend/internal/research"
	"github.com/voyagetravel/voyage-backend/internal/slots"
)

type fakeClassifier struct {
	intent nlp.Intent
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(context.Context, string) (nlp.Intent, error) {
	f.calls++
	return f.intent, f.err
}

type fakeExtractor struct {
	slots model.TripSlots
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, string, model.TripSlots) (model.TripSlots, error) {
	f.calls++
	return f.slots, f.err
}

type fakeResearcher struct {
	bundle    model.CostResearch
	calls     int
	lastQuery research.Query
}

func (f *fakeResearcher) Research(_ context.Context, q research.Query) model.CostResearch {
	f.calls++
	f.lastQuery = q
	return f.bundle
}

type fakeTransport struct {
	amount float64
	calls  int
}

func (f *fakeTransport) Estimate(context.Context, string, string, int) float64 {
	f.calls++
	return f.amount
}

type fixture struct {
	classifier *fakeClassifier
	extractor  *fakeExtractor
	researcher *fakeResearcher
	transport  *fakeTransport
	bus        *events.Bus
	orch       *Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		classifier: &fakeClassifier{intent: nlp.IntentTripPlanning},
		extractor:  &fakeExtractor{},
		researcher: &fakeResearcher{bundle: model.CostResearch{BudgetInfo: "rooms from ₹3000 per day"}},
		transport:  &fakeTransport{amount: 8000},
		bus:        events.NewBus(8),
	}
	f.orch = New(f.classifier, f.extractor, f.researcher, f.transport,
		slots.NewMerger("English"), f.bus, zerolog.Nop())
	return f
}

func strPtr(v string) *string   { return &v }
func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }

// completeSlots returns a slot set that passes the completeness check.
// With the fixture's 3000/day research text and 8000 transport, the required
// total is 3000*5*2*1.2 + 8000 = 44000.
func completeSlots(budget float64) model.TripSlots {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return model.TripSlots{
		OriginCity:        strPtr("Mumbai"),
		Destination:       strPtr("Goa"),
		NumDays:           intPtr(5),
		NumPeople:         2,
		Budget:            f64Ptr(budget),
		StartDate:         &start,
		PreferredLanguage: "English",
	}
}

func TestHandleTurn_OffTopicShortCircuits(t *testing.T) {
	f := newFixture()
	f.classifier.intent = nlp.IntentOffTopic
	prior := model.TripSlots{Destination: strPtr("Goa")}

	got := f.orch.HandleTurn(context.Background(), "s-1", "what is 2+2", prior)

	assert.Equal(t, model.StatusOffTopic, got.Status)
	assert.Equal(t, prior, got.Slots, "off-topic turns leave slots untouched")
	assert.NotEmpty(t, got.Reply)
	assert.Equal(t, 0, f.extractor.calls, "no extraction on off-topic turns")
	assert.Equal(t, 0, f.researcher.calls)
}

func TestHandleTurn_ClassifierFailureAsksToRestate(t *testing.T) {
	f := newFixture()
	f.classifier.err = errors.New("nlp service down")
	prior := model.TripSlots{Destination: strPtr("Goa")}

	got := f.orch.HandleTurn(context.Background(), "s-1", "plan a trip", prior)

	assert.Equal(t, model.StatusCollecting, got.Status)
	assert.Equal(t, prior, got.Slots)
	assert.Contains(t, got.Reply, "restate")
	assert.Equal(t, 0, f.researcher.calls)
	assert.Equal(t, 0, f.transport.calls)
}

func TestHandleTurn_ExtractionFailureAsksToRestate(t *testing.T) {
	f := newFixture()
	f.extractor.err = errors.New("malformed extractor output")
	prior := model.TripSlots{Destination: strPtr("Goa")}

	got := f.orch.HandleTurn(context.Background(), "s-1", "plan a trip", prior)

	assert.Equal(t, model.StatusCollecting, got.Status)
	assert.Equal(t, prior, got.Slots)
	assert.Contains(t, got.Reply, "restate")
	assert.Equal(t, 0, f.researcher.calls)
}

func TestHandleTurn_IncompleteCollectsWithoutCostLookups(t *testing.T) {
	f := newFixture()
	f.extractor.slots = model.TripSlots{
		OriginCity:  strPtr("Mumbai"),
		Destination: strPtr("Goa"),
		NumDays:     intPtr(5),
		NumPeople:   2,
		Budget:      f64Ptr(40000),
	}

	got := f.orch.HandleTurn(context.Background(), "s-1", "5 days in Goa from Mumbai, 2 people, 40000", model.TripSlots{})

	assert.Equal(t, model.StatusCollecting, got.Status)
	assert.Equal(t, []string{"start date"}, got.MissingFields)
	assert.Equal(t, "Goa", got.KnownFields["destination"])
	assert.Contains(t, got.Reply, "start date")
	assert.Equal(t, 0, f.researcher.calls, "no research while slots are incomplete")
	assert.Equal(t, 0, f.transport.calls, "no transport pricing while slots are incomplete")
}

func TestHandleTurn_SufficientBudget(t *testing.T) {
	f := newFixture()
	f.researcher.bundle.SafetyAdvisory = "Generally safe; watch the currents."
	f.extractor.slots = completeSlots(50000)

	got := f.orch.HandleTurn(context.Background(), "s-1", "all details", model.TripSlots{})

	assert.Equal(t, model.StatusSufficient, got.Status)
	require.NotNil(t, got.Feasibility)
	assert.Equal(t, 44000.0, got.Feasibility.RequiredTotal)
	assert.Equal(t, 6000.0, got.Feasibility.Surplus)
	assert.True(t, got.Feasibility.IsSufficient)
	assert.Equal(t, model.TierModerate, got.Feasibility.Tier)
	assert.Equal(t, "balanced-planner", got.Strategy)
	assert.Contains(t, got.Reply, "Goa")
	assert.Contains(t, got.Reply, "Safety:")
	assert.Equal(t, 1, f.researcher.calls)
	assert.Equal(t, 1, f.transport.calls)

	evt := <-f.bus.Subscribe()
	assert.Equal(t, events.EventTurnEvaluated, evt.Kind)
	assert.Equal(t, "s-1", evt.SessionID)
	assert.Equal(t, "SUFFICIENT", evt.Status)
}

func TestHandleTurn_InsufficientRecordsOriginalDestination(t *testing.T) {
	f := newFixture()
	f.extractor.slots = completeSlots(40000)

	got := f.orch.HandleTurn(context.Background(), "s-1", "all details", model.TripSlots{})

	assert.Equal(t, model.StatusInsufficient, got.Status)
	require.NotNil(t, got.Feasibility)
	assert.Equal(t, 4000.0, got.Feasibility.Shortfall)
	assert.Empty(t, got.Strategy, "no strategy is selected for an insufficient budget")
	require.NotNil(t, got.Slots.OriginalDestination)
	assert.Equal(t, "Goa", *got.Slots.OriginalDestination)
}

func TestHandleTurn_ExistingOriginalDestinationIsKept(t *testing.T) {
	f := newFixture()
	fresh := completeSlots(40000)
	fresh.OriginalDestination = nil
	f.extractor.slots = fresh

	prior := completeSlots(40000)
	prior.Destination = strPtr("Ladakh")
	prior.OriginalDestination = strPtr("Kerala")

	got := f.orch.HandleTurn(context.Background(), "s-1", "all details", prior)

	assert.Equal(t, model.StatusInsufficient, got.Status)
	require.NotNil(t, got.Slots.OriginalDestination)
	assert.Equal(t, "Kerala", *got.Slots.OriginalDestination, "the older marker wins")
}

func TestHandleTurn_BudgetIncreaseRevalidatesFirstChoice(t *testing.T) {
	f := newFixture()
	f.extractor.slots = model.TripSlots{Budget: f64Ptr(60000)}

	prior := completeSlots(40000)
	prior.Destination = strPtr("Ladakh")
	prior.OriginalDestination = strPtr("Goa")

	got := f.orch.HandleTurn(context.Background(), "s-1", "make it 60000", prior)

	assert.Equal(t, "Goa", f.researcher.lastQuery.Destination,
		"the restored first choice is what gets researched")
	assert.Equal(t, model.StatusSufficient, got.Status)
	require.NotNil(t, got.Slots.Destination)
	assert.Equal(t, "Goa", *got.Slots.Destination)
	assert.Nil(t, got.Slots.OriginalDestination)
}
