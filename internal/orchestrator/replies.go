package orchestrator

import (
	"fmt"
	"strings"

	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/planner"
)

const (
	offTopicReply = "I'm a trip planning assistant, so that's outside what I can help with. " +
		"Tell me where you'd like to travel and I'll take it from there."

	couldNotUnderstandReply = "Sorry, I couldn't quite follow that. " +
		"Could you restate it? For example: \"5 days in Goa from Mumbai, 2 people, budget 40000\"."
)

func collectingReply(missing []string) string {
	return fmt.Sprintf("Got it so far. To check whether your plan works I still need: %s.",
		strings.Join(missing, ", "))
}

func insufficientReply(destination string, v model.FeasibilityResult) string {
	return fmt.Sprintf(
		"Your budget falls short for %s: the trip needs about ₹%.0f all-in, which leaves a gap of ₹%.0f. "+
			"You could raise the budget, shorten the trip, or let me suggest a closer destination.",
		destination, v.RequiredTotal, v.Shortfall)
}

func sufficientReply(destination string, v model.FeasibilityResult, strategy planner.Strategy, bundle model.CostResearch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Good news: your budget covers %s with about ₹%.0f to spare (%s tier). Planning with the %s approach.",
		destination, v.Surplus, v.Tier, strategy)

	if note := snippet(bundle.SafetyAdvisory); note != "" {
		fmt.Fprintf(&b, "\nSafety: %s", note)
	}
	if note := snippet(bundle.Weather); note != "" {
		fmt.Fprintf(&b, "\nWeather: %s", note)
	}
	if note := snippet(bundle.TravelDocuments); note != "" {
		fmt.Fprintf(&b, "\nDocuments: %s", note)
	}
	return b.String()
}

// snippet trims a research blob to its first sentence-ish line for the reply.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	const maxRunes = 200
	runes := []rune(text)
	if len(runes) > maxRunes {
		text = string(runes[:maxRunes]) + "…"
	}
	return text
}
