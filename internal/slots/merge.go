// Package slots holds the pure core of the conversation state: field-level
// merging of freshly extracted facts into the prior fact set, and the
// completeness check that gates cost research. Nothing here calls out or
// locks; both operations are deterministic.
package slots

import "github.com/voyagetravel/voyage-backend/internal/model"

// Merger reconciles extraction turns into the authoritative slot set.
type Merger struct {
	defaultLanguage string
}

// NewMerger creates a merger that fills PreferredLanguage with
// defaultLanguage when neither side knows it.
func NewMerger(defaultLanguage string) Merger {
	return Merger{defaultLanguage: defaultLanguage}
}

// Merge combines a fresh extraction with the prior slot set, per field:
// a fresh known value wins, a prior known value survives a fresh unknown,
// and a known field is never downgraded to unknown.
//
// Budget is special. A fresh budget is always adopted, and when it strictly
// exceeds the prior known budget while the prior carries an
// OriginalDestination (recorded by an earlier failed feasibility check), the
// destination is restored from OriginalDestination and the marker cleared, so
// the raised budget is re-validated against the user's first choice rather
// than a substituted fallback. A destination named in the same utterance
// still wins over the restoration.
func (m Merger) Merge(prior, fresh model.TripSlots) model.TripSlots {
	out := prior.Clone()
	fresh = fresh.Clone()

	budgetIncrease := fresh.Budget != nil && out.Budget != nil && *fresh.Budget > *out.Budget
	if fresh.Budget != nil {
		out.Budget = fresh.Budget
	}
	if budgetIncrease && out.OriginalDestination != nil {
		out.Destination = out.OriginalDestination
		out.OriginalDestination = nil
	}

	if fresh.OriginCity != nil {
		out.OriginCity = fresh.OriginCity
	}
	if fresh.Destination != nil {
		out.Destination = fresh.Destination
	}
	if fresh.NumDays != nil {
		out.NumDays = fresh.NumDays
	}
	if fresh.NumPeople > 0 {
		out.NumPeople = fresh.NumPeople
	}
	if fresh.StartDate != nil {
		out.StartDate = fresh.StartDate
	}
	if fresh.Interests != nil {
		out.Interests = fresh.Interests
	}
	if fresh.PreferredLanguage != "" {
		out.PreferredLanguage = fresh.PreferredLanguage
	}

	if out.NumPeople <= 0 {
		out.NumPeople = 1
	}
	if out.PreferredLanguage == "" {
		out.PreferredLanguage = m.defaultLanguage
	}
	return out
}
