package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

func strPtr(v string) *string    { return &v }
func intPtr(v int) *int          { return &v }
func f64Ptr(v float64) *float64  { return &v }
func datePtr(v string) *time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return &t
}

var testMerger = NewMerger("English")

func TestMerge_AllUnknownTurnIsIdempotent(t *testing.T) {
	prior := model.TripSlots{
		OriginCity:        strPtr("Mumbai"),
		Destination:       strPtr("Goa"),
		NumDays:           intPtr(5),
		NumPeople:         2,
		Budget:            f64Ptr(40000),
		StartDate:         datePtr("2026-01-15"),
		Interests:         strPtr("beaches"),
		PreferredLanguage: "Hindi",
	}

	got := testMerger.Merge(prior, model.TripSlots{})
	assert.Equal(t, prior, got)
}

func TestMerge_FreshKnownWinsPriorKnownSurvives(t *testing.T) {
	prior := model.TripSlots{Destination: strPtr("Goa")}
	fresh := model.TripSlots{OriginCity: strPtr("Mumbai")}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.OriginCity)
	assert.Equal(t, "Mumbai", *got.OriginCity)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "Goa", *got.Destination)
}

func TestMerge_FreshOverwritesPrior(t *testing.T) {
	prior := model.TripSlots{Destination: strPtr("Goa"), NumDays: intPtr(5)}
	fresh := model.TripSlots{Destination: strPtr("Kerala")}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Kerala", *got.Destination)
	require.NotNil(t, got.NumDays)
	assert.Equal(t, 5, *got.NumDays)
}

func TestMerge_BudgetIncreaseRestoresOriginalDestination(t *testing.T) {
	prior := model.TripSlots{
		Budget:              f64Ptr(40000),
		Destination:         strPtr("Ladakh"),
		OriginalDestination: strPtr("Goa"),
	}
	fresh := model.TripSlots{Budget: f64Ptr(60000)}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Budget)
	assert.Equal(t, 60000.0, *got.Budget)
	require.NotNil(t, got.Destination)
	assert.Equal(t, "Goa", *got.Destination)
	assert.Nil(t, got.OriginalDestination, "restoration must clear the marker")
}

func TestMerge_BudgetDecreaseDoesNotRestore(t *testing.T) {
	prior := model.TripSlots{
		Budget:              f64Ptr(40000),
		Destination:         strPtr("Ladakh"),
		OriginalDestination: strPtr("Goa"),
	}
	fresh := model.TripSlots{Budget: f64Ptr(30000)}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Budget)
	assert.Equal(t, 30000.0, *got.Budget, "a fresh known budget is adopted even when lower")
	require.NotNil(t, got.Destination)
	assert.Equal(t, "Ladakh", *got.Destination)
	require.NotNil(t, got.OriginalDestination)
	assert.Equal(t, "Goa", *got.OriginalDestination)
}

func TestMerge_EqualBudgetDoesNotRestore(t *testing.T) {
	prior := model.TripSlots{
		Budget:              f64Ptr(40000),
		Destination:         strPtr("Ladakh"),
		OriginalDestination: strPtr("Goa"),
	}
	fresh := model.TripSlots{Budget: f64Ptr(40000)}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Ladakh", *got.Destination, "restoration requires a strict increase")
}

func TestMerge_FreshDestinationBeatsRestoration(t *testing.T) {
	prior := model.TripSlots{
		Budget:              f64Ptr(40000),
		Destination:         strPtr("Ladakh"),
		OriginalDestination: strPtr("Goa"),
	}
	fresh := model.TripSlots{Budget: f64Ptr(60000), Destination: strPtr("Kerala")}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Kerala", *got.Destination, "a destination named in the same utterance wins")
	assert.Nil(t, got.OriginalDestination, "the increase still consumes the marker")
}

func TestMerge_IncreaseWithoutMarkerKeepsDestination(t *testing.T) {
	prior := model.TripSlots{Budget: f64Ptr(40000), Destination: strPtr("Goa")}
	fresh := model.TripSlots{Budget: f64Ptr(60000)}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Goa", *got.Destination)
}

func TestMerge_IncreaseFromUnknownBudgetDoesNotRestore(t *testing.T) {
	prior := model.TripSlots{
		Destination:         strPtr("Ladakh"),
		OriginalDestination: strPtr("Goa"),
	}
	fresh := model.TripSlots{Budget: f64Ptr(60000)}

	got := testMerger.Merge(prior, fresh)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Ladakh", *got.Destination, "first known budget is not an increase event")
	require.NotNil(t, got.OriginalDestination)
}

func TestMerge_DefaultsOnFirstTurn(t *testing.T) {
	got := testMerger.Merge(model.TripSlots{}, model.TripSlots{Destination: strPtr("Goa")})

	assert.Equal(t, 1, got.NumPeople)
	assert.Equal(t, "English", got.PreferredLanguage)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	prior := model.TripSlots{Destination: strPtr("Goa")}
	fresh := model.TripSlots{OriginCity: strPtr("Mumbai")}

	got := testMerger.Merge(prior, fresh)
	*got.Destination = "Changed"
	*got.OriginCity = "Changed"

	assert.Equal(t, "Goa", *prior.Destination)
	assert.Equal(t, "Mumbai", *fresh.OriginCity)
}
