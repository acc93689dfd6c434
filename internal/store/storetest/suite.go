package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers
	sessionID := "sess-" + uuid.New().String()
	userID := "u-" + uuid.New().String()

	// Sessions: missing reads report not found
	if _, err := s.Sessions().Get(ctx, sessionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetSession missing: err=%v", err)
	}

	dest := "Goa"
	days := 5
	budget := 50000.0
	sess := &model.Session{
		SessionID: sessionID,
		UserID:    userID,
		Slots: model.TripSlots{
			Destination:       &dest,
			NumDays:           &days,
			NumPeople:         2,
			Budget:            &budget,
			PreferredLanguage: "English",
		},
	}
	created, err := s.Sessions().Put(ctx, sess)
	if err != nil {
		t.Fatalf("PutSession: %v", err)
	}
	if created.CreationTime.IsZero() || created.UpdateTime.IsZero() {
		t.Fatalf("PutSession: timestamps not set: %+v", created)
	}

	got, err := s.Sessions().Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != userID || got.Slots.Destination == nil || *got.Slots.Destination != "Goa" {
		t.Fatalf("GetSession: slots did not round-trip: %+v", got)
	}
	if got.Slots.Budget == nil || *got.Slots.Budget != 50000 || got.Slots.NumPeople != 2 {
		t.Fatalf("GetSession: numeric slots did not round-trip: %+v", got.Slots)
	}

	// Update replaces slots and keeps the creation time
	time.Sleep(5 * time.Millisecond)
	newDest := "Ladakh"
	sess.Slots.Destination = &newDest
	updated, err := s.Sessions().Put(ctx, sess)
	if err != nil {
		t.Fatalf("PutSession update: %v", err)
	}
	if !updated.CreationTime.Equal(created.CreationTime) {
		t.Fatalf("PutSession update: creation time changed: %v -> %v", created.CreationTime, updated.CreationTime)
	}
	if !updated.UpdateTime.After(created.UpdateTime) {
		t.Fatalf("PutSession update: update time did not advance")
	}
	if got, err := s.Sessions().Get(ctx, sessionID); err != nil || *got.Slots.Destination != "Ladakh" {
		t.Fatalf("GetSession after update: got=%+v err=%v", got, err)
	}

	// Delete
	if err := s.Sessions().Delete(ctx, sessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.Sessions().Get(ctx, sessionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetSession after delete: err=%v", err)
	}
	if err := s.Sessions().Delete(ctx, sessionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteSession twice: err=%v", err)
	}

	// Feedback
	tripID := "trip-" + uuid.New().String()
	comment := "Great beaches"
	fb := &model.Feedback{
		TripID:         tripID,
		UserID:         userID,
		Rating:         5,
		Experience:     "excellent",
		WouldRecommend: true,
		Highlights:     []string{"beaches", "food"},
		Improvements:   []string{"traffic"},
		Comment:        &comment,
	}
	stored, err := s.Feedback().Upsert(ctx, fb)
	if err != nil {
		t.Fatalf("UpsertFeedback: %v", err)
	}
	if stored.FeedbackID == "" {
		t.Fatalf("UpsertFeedback: empty feedback id")
	}

	// A second submission for the same trip and user replaces in place
	time.Sleep(5 * time.Millisecond)
	fb.Rating = 4
	fb.Experience = "good"
	again, err := s.Feedback().Upsert(ctx, fb)
	if err != nil {
		t.Fatalf("UpsertFeedback update: %v", err)
	}
	if again.FeedbackID != stored.FeedbackID {
		t.Fatalf("UpsertFeedback update: feedback id changed: %s -> %s", stored.FeedbackID, again.FeedbackID)
	}
	if !again.CreationTime.Equal(stored.CreationTime) {
		t.Fatalf("UpsertFeedback update: creation time changed")
	}

	byTrip, err := s.Feedback().GetByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("GetByTrip: %v", err)
	}
	if byTrip.Rating != 4 || byTrip.Experience != "good" {
		t.Fatalf("GetByTrip: update not applied: %+v", byTrip)
	}
	if len(byTrip.Highlights) != 2 || byTrip.Highlights[0] != "beaches" {
		t.Fatalf("GetByTrip: highlights did not round-trip: %+v", byTrip.Highlights)
	}
	if byTrip.Comment == nil || *byTrip.Comment != "Great beaches" {
		t.Fatalf("GetByTrip: comment did not round-trip: %+v", byTrip.Comment)
	}

	if _, err := s.Feedback().GetByTrip(ctx, "trip-"+uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByTrip missing: err=%v", err)
	}

	// History is newest first; empty lists come back empty, not null
	trip2 := "trip-" + uuid.New().String()
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Feedback().Upsert(ctx, &model.Feedback{TripID: trip2, UserID: userID, Rating: 3, Experience: "average"}); err != nil {
		t.Fatalf("UpsertFeedback second trip: %v", err)
	}
	history, err := s.Feedback().ListByUser(ctx, userID)
	if err != nil || len(history) != 2 {
		t.Fatalf("ListByUser: n=%d err=%v", len(history), err)
	}
	if history[0].TripID != trip2 {
		t.Fatalf("ListByUser: expected newest first, got %s", history[0].TripID)
	}
	if len(history[0].Highlights) != 0 {
		t.Fatalf("ListByUser: expected empty highlights, got %+v", history[0].Highlights)
	}

	all, err := s.Feedback().ListAll(ctx)
	if err != nil || len(all) < 2 {
		t.Fatalf("ListAll: n=%d err=%v", len(all), err)
	}
}
