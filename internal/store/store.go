package store

import (
	"context"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., postgres, sqlite).
type Store interface {
	Sessions() Sessions
	Feedback() Feedback
}

// Sessions persists conversational slot state keyed by session id.
type Sessions interface {
	// Put upserts the session. UpdateTime is set by the store; CreationTime
	// survives an update.
	Put(ctx context.Context, s *model.Session) (*model.Session, error)
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Feedback persists post-trip feedback, at most one record per (trip, user).
type Feedback interface {
	// Upsert inserts or replaces the (TripID, UserID) record. The stored
	// FeedbackID and CreationTime survive an update.
	Upsert(ctx context.Context, fb *model.Feedback) (*model.Feedback, error)
	GetByTrip(ctx context.Context, tripID string) (*model.Feedback, error)
	// ListByUser returns the user's feedback newest first.
	ListByUser(ctx context.Context, userID string) ([]*model.Feedback, error)
	ListAll(ctx context.Context) ([]*model.Feedback, error)
}
