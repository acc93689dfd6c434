package nlp

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// KeywordClassifier is the degraded-mode classifier used when no NLP service
// is configured. Any travel vocabulary hit counts as on-topic.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

var travelKeywords = []string{
	"trip", "travel", "itinerary", "vacation", "holiday", "visit", "tour",
	"flight", "train", "hotel", "stay", "destination", "budget", "getaway",
	"backpack", "sightseeing", "days in",
}

// Classify implements IntentClassifier.
func (c *KeywordClassifier) Classify(_ context.Context, utterance string) (Intent, error) {
	lower := strings.ToLower(utterance)
	for _, kw := range travelKeywords {
		if strings.Contains(lower, kw) {
			return IntentTripPlanning, nil
		}
	}
	return IntentOffTopic, nil
}

// RuleExtractor is the degraded-mode slot extractor. It covers the common
// phrasings ("from Mumbai to Goa for 5 days, 2 people, budget 40000") and
// leaves everything else absent.
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

var (
	routePattern       = regexp.MustCompile(`(?i)\bfrom\s+([a-z]+(?:\s[a-z]+)?)\s+to\s+([a-z]+(?:\s[a-z]+)?)`)
	destinationPattern = regexp.MustCompile(`(?i)\b(?:to|in|visit(?:ing)?)\s+([a-z]+(?:\s[a-z]+)?)`)
	daysPattern        = regexp.MustCompile(`(?i)\b(\d+)\s*(?:days?|nights?)\b`)
	peoplePattern      = regexp.MustCompile(`(?i)\b(\d+)\s*(?:people|persons?|travellers?|travelers?|adults?|pax)\b`)
	currencyPattern    = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr\b)\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k)?`)
	budgetWordPattern  = regexp.MustCompile(`(?i)\bbudget(?:\s+(?:of|is|around|about))?\s*(?:₹|\brs\.?|\binr\b)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k)?`)
	isoDatePattern     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
)

// Words that the loose one-or-two-word place capture tends to swallow.
var placeStopWords = map[string]struct{}{
	"for": {}, "with": {}, "on": {}, "in": {}, "next": {}, "this": {}, "and": {},
}

// Leading words that mean the capture grabbed a verb phrase, not a place.
var placeVerbWords = map[string]struct{}{
	"go": {}, "plan": {}, "travel": {}, "visit": {}, "make": {}, "take": {},
	"be": {}, "do": {}, "see": {}, "stay": {}, "spend": {}, "the": {},
	"a": {}, "an": {}, "my": {}, "our": {},
}

// Extract implements SlotExtractor.
func (e *RuleExtractor) Extract(_ context.Context, utterance string, _ model.TripSlots) (model.TripSlots, error) {
	var raw RawSlots

	if m := routePattern.FindStringSubmatch(utterance); m != nil {
		raw.OriginCity = titleCase(trimPlace(m[1]))
		raw.Destination = titleCase(trimPlace(m[2]))
	} else {
		for _, m := range destinationPattern.FindAllStringSubmatch(utterance, -1) {
			if place := trimPlace(m[1]); place != "" && !startsWithVerb(place) {
				raw.Destination = titleCase(place)
				break
			}
		}
	}

	if m := daysPattern.FindStringSubmatch(utterance); m != nil {
		raw.NumDays, _ = strconv.Atoi(m[1])
	}
	if m := peoplePattern.FindStringSubmatch(utterance); m != nil {
		raw.NumPeople, _ = strconv.Atoi(m[1])
	} else if containsWord(utterance, "solo") {
		raw.NumPeople = 1
	} else if containsWord(utterance, "couple") {
		raw.NumPeople = 2
	}

	if m := currencyPattern.FindStringSubmatch(utterance); m != nil {
		raw.Budget = parseAmount(m[1], m[2])
	} else if m := budgetWordPattern.FindStringSubmatch(utterance); m != nil {
		raw.Budget = parseAmount(m[1], m[2])
	}

	if m := isoDatePattern.FindStringSubmatch(utterance); m != nil {
		raw.StartDate = m[1]
	}

	return Normalize(raw), nil
}

// trimPlace drops a trailing stop word swallowed by the two-word capture,
// e.g. "goa for" from "to Goa for 5 days".
func trimPlace(place string) string {
	words := strings.Fields(place)
	for len(words) > 0 {
		if _, stop := placeStopWords[strings.ToLower(words[len(words)-1])]; !stop {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func startsWithVerb(place string) bool {
	words := strings.Fields(strings.ToLower(place))
	if len(words) == 0 {
		return false
	}
	_, verb := placeVerbWords[words[0]]
	return verb
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsWord(utterance, word string) bool {
	for _, f := range strings.Fields(strings.ToLower(utterance)) {
		if strings.Trim(f, ",.!?") == word {
			return true
		}
	}
	return false
}

func parseAmount(digits, kSuffix string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(kSuffix, "k") {
		v *= 1000
	}
	return v
}
