package feasibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Fixed inputs: 3000/day, 5 days, 2 people, 8000 transport.
// required = 3000*5*2*1.2 + 8000 = 44000.
func baseInputs(budget float64) Inputs {
	return Inputs{
		DailyMinimumPerPerson: 3000,
		NumDays:               5,
		NumPeople:             2,
		Budget:                budget,
		TransportTotal:        8000,
		EstimateSource:        model.SourceParsed,
	}
}

func TestEvaluate_Monotonicity(t *testing.T) {
	cases := []struct {
		name          string
		budget        float64
		wantOK        bool
		wantShortfall float64
		wantSurplus   float64
	}{
		{"below required", 40000, false, 4000, 0},
		{"exactly required", 44000, true, 0, 0},
		{"above required", 50000, true, 0, 6000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(baseInputs(tc.budget))

			assert.Equal(t, 44000.0, got.RequiredTotal)
			assert.Equal(t, tc.wantOK, got.IsSufficient)
			assert.Equal(t, tc.wantShortfall, got.Shortfall)
			assert.Equal(t, tc.wantSurplus, got.Surplus)
		})
	}
}

func TestEvaluate_BufferAppliesToPerDiemOnly(t *testing.T) {
	got := Evaluate(Inputs{
		DailyMinimumPerPerson: 1000,
		NumDays:               1,
		NumPeople:             1,
		Budget:                5000,
		TransportTotal:        1000,
	})
	// 1000*1.2 + 1000, not (1000+1000)*1.2.
	assert.Equal(t, 2200.0, got.RequiredTotal)
	assert.Equal(t, 1.2, got.BufferFactor)
}

func TestEvaluate_TierBoundariesInclusive(t *testing.T) {
	cases := []struct {
		name   string
		budget float64
		want   model.Tier
	}{
		// r = (budget/2/5)/3000
		{"well below moderate", 30000, model.TierBudget},
		{"just under moderate", 38999, model.TierBudget},
		{"exactly 1.3 is moderate", 39000, model.TierModerate},
		{"mid moderate band", 50000, model.TierModerate},
		{"just under luxury", 74999, model.TierModerate},
		{"exactly 2.5 is luxury", 75000, model.TierLuxury},
		{"well above luxury", 120000, model.TierLuxury},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(baseInputs(tc.budget))
			assert.Equal(t, tc.want, got.Tier)
		})
	}
}

func TestEvaluate_TierComputedEvenWhenInsufficient(t *testing.T) {
	// 39000 < 44000 required, yet the ratio already clears the moderate bar.
	got := Evaluate(baseInputs(39000))
	assert.False(t, got.IsSufficient)
	assert.Equal(t, model.TierModerate, got.Tier)
}

func TestEvaluate_EchoesInputs(t *testing.T) {
	got := Evaluate(baseInputs(50000))
	assert.Equal(t, 3000.0, got.DailyMinimumPerPerson)
	assert.Equal(t, 8000.0, got.TransportTotal)
	assert.Equal(t, model.SourceParsed, got.EstimateSource)
}

func TestEvaluate_DegenerateInputsClamped(t *testing.T) {
	got := Evaluate(Inputs{DailyMinimumPerPerson: 2000, NumDays: 0, NumPeople: 0, Budget: 10000})
	assert.Equal(t, 2400.0, got.RequiredTotal, "days and people clamp to 1")

	got = Evaluate(Inputs{DailyMinimumPerPerson: 0, NumDays: 5, NumPeople: 2, Budget: 10000})
	assert.Equal(t, model.TierBudget, got.Tier, "zero daily minimum cannot support a ratio")
}
