// Package planner maps a feasibility verdict onto the planning strategy that
// downstream itinerary generation runs with.
package planner

import "github.com/voyagetravel/voyage-backend/internal/model"

// Strategy names a planning approach.
type Strategy string

const (
	StrategyBudgetOptimizer Strategy = "budget-optimizer"
	StrategyBalanced        Strategy = "balanced-planner"
	StrategyPremium         Strategy = "premium-planner"
)

// Select picks a strategy from the verdict. The tier informs the choice but
// never overrides sufficiency: a budget that falls short always gets the
// optimizer, whatever its ratio says.
func Select(result model.FeasibilityResult) Strategy {
	if !result.IsSufficient {
		return StrategyBudgetOptimizer
	}
	switch result.Tier {
	case model.TierLuxury:
		return StrategyPremium
	case model.TierModerate:
		return StrategyBalanced
	default:
		return StrategyBudgetOptimizer
	}
}
