package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SentinelsBecomeAbsent(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not specified", "not specified"},
		{"mixed case", "Not Specified"},
		{"unknown", "unknown"},
		{"n/a", "N/A"},
		{"none", "none"},
		{"anywhere", "anywhere"},
		{"padded", "  unknown  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(RawSlots{Destination: tc.value, OriginCity: tc.value, Interests: tc.value})
			assert.Nil(t, got.Destination)
			assert.Nil(t, got.OriginCity)
			assert.Nil(t, got.Interests)
		})
	}
}

func TestNormalize_RealValuesSurvive(t *testing.T) {
	got := Normalize(RawSlots{
		OriginCity:        " Mumbai ",
		Destination:       "Goa",
		NumDays:           5,
		NumPeople:         2,
		Budget:            40000,
		StartDate:         "2026-01-15",
		Interests:         "beaches, seafood",
		PreferredLanguage: "Hindi",
	})

	if assert.NotNil(t, got.OriginCity) {
		assert.Equal(t, "Mumbai", *got.OriginCity)
	}
	if assert.NotNil(t, got.Destination) {
		assert.Equal(t, "Goa", *got.Destination)
	}
	if assert.NotNil(t, got.NumDays) {
		assert.Equal(t, 5, *got.NumDays)
	}
	assert.Equal(t, 2, got.NumPeople)
	if assert.NotNil(t, got.Budget) {
		assert.Equal(t, 40000.0, *got.Budget)
	}
	if assert.NotNil(t, got.StartDate) {
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *got.StartDate)
	}
	assert.Equal(t, "Hindi", got.PreferredLanguage)
}

func TestNormalize_NonPositiveNumbersBecomeAbsent(t *testing.T) {
	got := Normalize(RawSlots{NumDays: 0, NumPeople: -1, Budget: -500})
	assert.Nil(t, got.NumDays)
	assert.Equal(t, 0, got.NumPeople)
	assert.Nil(t, got.Budget)
}

func TestNormalize_DateLayouts(t *testing.T) {
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		value string
	}{
		{"iso", "2026-03-09"},
		{"rfc3339", "2026-03-09T00:00:00Z"},
		{"long form", "March 9, 2026"},
		{"day first", "9 March 2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(RawSlots{StartDate: tc.value})
			if assert.NotNil(t, got.StartDate) {
				assert.Equal(t, want, *got.StartDate)
			}
		})
	}
}

func TestNormalize_UnparseableDateIsAbsent(t *testing.T) {
	got := Normalize(RawSlots{StartDate: "sometime next month"})
	assert.Nil(t, got.StartDate)
}
