package nlp

import (
	"strings"
	"time"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// RawSlots is the loosely-typed slot payload produced by extraction backends.
// String fields may carry placeholder sentinels and numeric fields may be
// zero or negative; Normalize maps all of those to absent.
type RawSlots struct {
	OriginCity        string  `json:"originCity"`
	Destination       string  `json:"destination"`
	NumDays           int     `json:"numDays"`
	NumPeople         int     `json:"numPeople"`
	Budget            float64 `json:"budget"`
	StartDate         string  `json:"startDate"`
	Interests         string  `json:"interests"`
	PreferredLanguage string  `json:"preferredLanguage"`
}

// Placeholder strings extraction backends emit instead of omitting a field.
// Compared case-insensitively after trimming.
var sentinelValues = map[string]struct{}{
	"":              {},
	"not specified": {},
	"unknown":       {},
	"n/a":           {},
	"none":          {},
	"anywhere":      {},
}

// Date layouts accepted from extraction backends, most specific first.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
	"2 January 2006",
}

// Normalize converts a raw extraction payload into the core slot model.
// Sentinel strings and non-positive numbers become nil; an unparseable start
// date is treated as absent rather than failing the turn.
func Normalize(raw RawSlots) model.TripSlots {
	out := model.TripSlots{
		OriginCity:  cleanString(raw.OriginCity),
		Destination: cleanString(raw.Destination),
		Interests:   cleanString(raw.Interests),
	}

	if raw.NumDays > 0 {
		d := raw.NumDays
		out.NumDays = &d
	}
	if raw.NumPeople > 0 {
		out.NumPeople = raw.NumPeople
	}
	if raw.Budget > 0 {
		b := raw.Budget
		out.Budget = &b
	}
	if lang := cleanString(raw.PreferredLanguage); lang != nil {
		out.PreferredLanguage = *lang
	}
	if ts := cleanString(raw.StartDate); ts != nil {
		if t, ok := parseStartDate(*ts); ok {
			out.StartDate = &t
		}
	}
	return out
}

// cleanString trims the value and returns nil for sentinels.
func cleanString(v string) *string {
	v = strings.TrimSpace(v)
	if _, isSentinel := sentinelValues[strings.ToLower(v)]; isSentinel {
		return nil
	}
	return &v
}

func parseStartDate(v string) (time.Time, bool) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
