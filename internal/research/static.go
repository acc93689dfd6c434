package research

import (
	"context"
	"time"
)

// StaticProvider is the degraded-mode provider used when no research service
// is configured. Its text carries no cost figures, so downstream parsing
// lands on the default daily minimum.
type StaticProvider struct{}

func NewStaticProvider() StaticProvider { return StaticProvider{} }

func (StaticProvider) BudgetInfo(_ context.Context, _ string, _, _ int) (string, error) {
	return "Live cost research is not configured; standard daily cost assumptions apply.", nil
}

func (StaticProvider) SafetyAdvisory(_ context.Context, _ string) (string, error) {
	return "No live safety advisory available. Check official government travel advisories before departure.", nil
}

func (StaticProvider) Weather(_ context.Context, _ string, _ *time.Time) (string, error) {
	return "No live weather outlook available.", nil
}

func (StaticProvider) TravelDocuments(_ context.Context, _, _ string) (string, error) {
	return "Carry a government-issued photo ID. International routes may need a passport and visa.", nil
}
