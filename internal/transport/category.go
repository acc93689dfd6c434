package transport

import (
	"context"
	"strings"
)

// Per-person round-trip figures by route category, INR.
const (
	sameRegionPerPerson    = 3000.0
	crossRegionPerPerson   = 6000.0
	internationalPerPerson = 15000.0
)

// Coarse region buckets for common Indian cities. Lookup is case-insensitive
// on the leading city token, so "Goa, India" still resolves.
var cityRegions = map[string]string{
	"delhi": "north", "new delhi": "north", "jaipur": "north", "agra": "north",
	"amritsar": "north", "chandigarh": "north", "shimla": "north", "manali": "north",
	"leh": "north", "ladakh": "north", "rishikesh": "north", "dehradun": "north",
	"varanasi": "north", "lucknow": "north", "srinagar": "north", "jammu": "north",

	"mumbai": "west", "pune": "west", "goa": "west", "ahmedabad": "west",
	"udaipur": "west", "jodhpur": "west", "jaisalmer": "west", "surat": "west",
	"nashik": "west", "aurangabad": "west",

	"bangalore": "south", "bengaluru": "south", "chennai": "south",
	"hyderabad": "south", "kochi": "south", "mysore": "south", "ooty": "south",
	"munnar": "south", "pondicherry": "south", "madurai": "south",
	"coimbatore": "south", "alleppey": "south", "hampi": "south",

	"kolkata": "east", "bhubaneswar": "east", "puri": "east", "patna": "east",
	"darjeeling": "east", "gangtok": "east", "guwahati": "east",
	"shillong": "east", "kaziranga": "east",
}

// Destinations priced as international routes.
var internationalPlaces = map[string]struct{}{
	"paris": {}, "london": {}, "dubai": {}, "singapore": {}, "bangkok": {},
	"bali": {}, "thailand": {}, "nepal": {}, "kathmandu": {}, "colombo": {},
	"sri lanka": {}, "maldives": {}, "tokyo": {}, "japan": {}, "new york": {},
	"usa": {}, "europe": {}, "switzerland": {}, "vietnam": {}, "indonesia": {},
	"malaysia": {}, "kuala lumpur": {},
}

// CategoryEstimator is the heuristic fallback: it buckets the route as same
// region, cross region, or international and multiplies the per-person figure
// by the party size. Routes it cannot place are priced cross-region.
type CategoryEstimator struct{}

func NewCategoryEstimator() CategoryEstimator { return CategoryEstimator{} }

// Estimate implements Estimator. It never fails.
func (CategoryEstimator) Estimate(_ context.Context, origin, destination string, people int) (float64, error) {
	if people < 1 {
		people = 1
	}
	return routePerPerson(origin, destination) * float64(people), nil
}

func routePerPerson(origin, destination string) float64 {
	o, d := placeKey(origin), placeKey(destination)

	if _, intl := internationalPlaces[d]; intl {
		return internationalPerPerson
	}
	if _, intl := internationalPlaces[o]; intl {
		return internationalPerPerson
	}

	or, oKnown := cityRegions[o]
	dr, dKnown := cityRegions[d]
	if oKnown && dKnown && or == dr {
		return sameRegionPerPerson
	}
	return crossRegionPerPerson
}

// placeKey lowercases and keeps only the part before any comma, e.g.
// "Goa, India" -> "goa".
func placeKey(place string) string {
	place = strings.ToLower(strings.TrimSpace(place))
	if i := strings.IndexByte(place, ','); i >= 0 {
		place = strings.TrimSpace(place[:i])
	}
	return place
}
