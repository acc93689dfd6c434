// Package feedback collects post-trip feedback and aggregates it into the
// stats surface the product dashboard reads.
package feedback

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/store"
)

const (
	minRating = 1
	maxRating = 5
	topItems  = 5
)

var validExperiences = map[string]struct{}{
	"excellent": {},
	"good":      {},
	"average":   {},
	"poor":      {},
}

type Service struct {
	store store.Store
	log   zerolog.Logger
}

func NewService(s store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log.With().Str("component", "feedback").Logger()}
}

// Submit validates and stores feedback. Resubmitting for the same trip and
// user replaces the earlier record while keeping its id and creation time.
func (s *Service) Submit(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	if err := validate(fb); err != nil {
		return nil, err
	}
	stored, err := s.store.Feedback().Upsert(ctx, fb)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("trip_id", stored.TripID).
		Str("user_id", stored.UserID).
		Int("rating", stored.Rating).
		Msg("feedback submitted")
	return stored, nil
}

func (s *Service) TripFeedback(ctx context.Context, tripID string) (*model.Feedback, error) {
	return s.store.Feedback().GetByTrip(ctx, tripID)
}

// UserHistory returns everything the user has submitted, newest first.
func (s *Service) UserHistory(ctx context.Context, userID string) ([]*model.Feedback, error) {
	return s.store.Feedback().ListByUser(ctx, userID)
}

// Stats aggregates every stored record. RecommendationRate is a percentage
// in [0,100].
func (s *Service) Stats(ctx context.Context) (*model.FeedbackStats, error) {
	all, err := s.store.Feedback().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.FeedbackStats{
		TopHighlights:      []model.FeedbackItemCount{},
		CommonImprovements: []model.FeedbackItemCount{},
	}
	if len(all) == 0 {
		return stats, nil
	}

	ratingSum := 0
	recommendations := 0
	highlights := map[string]int{}
	improvements := map[string]int{}
	for _, fb := range all {
		ratingSum += fb.Rating
		if fb.WouldRecommend {
			recommendations++
		}
		for _, h := range fb.Highlights {
			highlights[h]++
		}
		for _, i := range fb.Improvements {
			improvements[i]++
		}
	}

	total := len(all)
	stats.TotalFeedback = total
	stats.AverageRating = float64(ratingSum) / float64(total)
	stats.RecommendationRate = float64(recommendations) / float64(total) * 100
	stats.TopHighlights = topCounts(highlights)
	stats.CommonImprovements = topCounts(improvements)
	return stats, nil
}

func validate(fb *model.Feedback) error {
	if strings.TrimSpace(fb.TripID) == "" {
		return fmt.Errorf("%w: tripId is required", model.ErrValidation)
	}
	if strings.TrimSpace(fb.UserID) == "" {
		return fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if fb.Rating < minRating || fb.Rating > maxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", model.ErrValidation, minRating, maxRating)
	}
	if _, ok := validExperiences[strings.ToLower(fb.Experience)]; !ok {
		return fmt.Errorf("%w: experience must be one of excellent, good, average, poor", model.ErrValidation)
	}
	return nil
}

// topCounts returns the topItems most frequent entries. Ties break
// alphabetically so the ordering is stable.
func topCounts(counts map[string]int) []model.FeedbackItemCount {
	items := make([]model.FeedbackItemCount, 0, len(counts))
	for item, count := range counts {
		items = append(items, model.FeedbackItemCount{Item: item, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Item < items[j].Item
	})
	if len(items) > topItems {
		items = items[:topItems]
	}
	return items
}
