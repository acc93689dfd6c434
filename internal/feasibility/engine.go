// Package feasibility computes whether a stated budget covers a trip and
// classifies how far above the minimum viable spend it sits.
package feasibility

import (
	"math"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

const (
	// Contingency applied to the per-diem component only. Transport comes
	// from a targeted lookup and carries no extra margin.
	bufferFactor = 1.2

	// Tier band floors for the per-person per-day budget ratio, inclusive.
	moderateRatio = 1.3
	luxuryRatio   = 2.5
)

// Inputs are the five figures the verdict is derived from, plus the estimate
// provenance echoed through to the result.
type Inputs struct {
	DailyMinimumPerPerson float64
	NumDays               int
	NumPeople             int
	Budget                float64
	TransportTotal        float64
	EstimateSource        model.EstimateSource
}

// Evaluate computes the sufficiency verdict. The tier is classified even when
// the budget falls short; it informs strategy selection but never overrides
// the verdict.
func Evaluate(in Inputs) model.FeasibilityResult {
	days, people := in.NumDays, in.NumPeople
	if days < 1 {
		days = 1
	}
	if people < 1 {
		people = 1
	}

	required := in.DailyMinimumPerPerson*float64(days)*float64(people)*bufferFactor + in.TransportTotal

	return model.FeasibilityResult{
		RequiredTotal: required,
		IsSufficient:  in.Budget >= required,
		Shortfall:     math.Max(0, required-in.Budget),
		Surplus:       math.Max(0, in.Budget-required),
		Tier:          classifyTier(in.Budget, people, days, in.DailyMinimumPerPerson),

		DailyMinimumPerPerson: in.DailyMinimumPerPerson,
		TransportTotal:        in.TransportTotal,
		BufferFactor:          bufferFactor,
		EstimateSource:        in.EstimateSource,
	}
}

func classifyTier(budget float64, people, days int, dailyMin float64) model.Tier {
	if dailyMin <= 0 {
		return model.TierBudget
	}
	r := (budget / float64(people) / float64(days)) / dailyMin
	switch {
	case r >= luxuryRatio:
		return model.TierLuxury
	case r >= moderateRatio:
		return model.TierModerate
	default:
		return model.TierBudget
	}
}
