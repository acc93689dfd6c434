package slots

import (
	"strconv"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Required facts and their user-facing names, in report order.
var requiredFields = []struct {
	name  string
	known func(model.TripSlots) bool
}{
	{"origin city", func(s model.TripSlots) bool { return s.OriginCity != nil }},
	{"destination", func(s model.TripSlots) bool { return s.Destination != nil }},
	{"number of days", func(s model.TripSlots) bool { return s.NumDays != nil }},
	{"budget", func(s model.TripSlots) bool { return s.Budget != nil }},
	{"start date", func(s model.TripSlots) bool { return s.StartDate != nil }},
}

// Missing lists the required facts not yet known, by display name.
func Missing(s model.TripSlots) []string {
	var out []string
	for _, f := range requiredFields {
		if !f.known(s) {
			out = append(out, f.name)
		}
	}
	return out
}

// IsComplete reports whether cost research and feasibility may proceed.
func IsComplete(s model.TripSlots) bool {
	return len(Missing(s)) == 0
}

// Known echoes the facts gathered so far as display name to value, for
// surfacing back to the user while collecting.
func Known(s model.TripSlots) map[string]string {
	out := make(map[string]string)
	if s.OriginCity != nil {
		out["origin city"] = *s.OriginCity
	}
	if s.Destination != nil {
		out["destination"] = *s.Destination
	}
	if s.NumDays != nil {
		out["number of days"] = strconv.Itoa(*s.NumDays)
	}
	if s.NumPeople > 0 {
		out["travellers"] = strconv.Itoa(s.NumPeople)
	}
	if s.Budget != nil {
		out["budget"] = strconv.FormatFloat(*s.Budget, 'f', -1, 64)
	}
	if s.StartDate != nil {
		out["start date"] = s.StartDate.Format("2006-01-02")
	}
	if s.Interests != nil {
		out["interests"] = *s.Interests
	}
	return out
}
