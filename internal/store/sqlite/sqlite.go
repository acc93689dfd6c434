package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode. The busy timeout covers writer contention between the request
// path and background sweeps.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the trip tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trip_sessions (
            session_id    TEXT PRIMARY KEY,
            user_id       TEXT NOT NULL,
            slots         TEXT NOT NULL,
            creation_time TIMESTAMP NOT NULL,
            update_time   TIMESTAMP NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS trip_feedback (
            feedback_id     TEXT PRIMARY KEY,
            trip_id         TEXT NOT NULL,
            user_id         TEXT NOT NULL,
            rating          INTEGER NOT NULL,
            experience      TEXT NOT NULL,
            would_recommend BOOLEAN NOT NULL,
            highlights      TEXT NOT NULL,
            improvements    TEXT NOT NULL,
            comment         TEXT,
            creation_time   TIMESTAMP NOT NULL,
            update_time     TIMESTAMP NOT NULL,
            UNIQUE(trip_id, user_id)
        )`,
		`CREATE INDEX IF NOT EXISTS trip_feedback_user_idx ON trip_feedback(user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Sessions() store.Sessions { return &sessions{db: s.db} }
func (s *sqliteStore) Feedback() store.Feedback { return &feedback{db: s.db} }

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Sessions ---

type sessions struct{ db *sql.DB }

func (s *sessions) Put(ctx context.Context, m *model.Session) (*model.Session, error) {
	slots, err := json.Marshal(m.Slots)
	if err != nil {
		return nil, fmt.Errorf("encode session slots: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO trip_sessions (session_id, user_id, slots, creation_time, update_time)
        VALUES (?,?,?,?,?)
        ON CONFLICT(session_id) DO UPDATE
            SET user_id = excluded.user_id,
                slots = excluded.slots,
                update_time = excluded.update_time
    `, m.SessionID, m.UserID, string(slots), now, now)
	if err != nil {
		return nil, err
	}

	out := *m
	row := s.db.QueryRowContext(ctx, `SELECT creation_time, update_time FROM trip_sessions WHERE session_id=?`, m.SessionID)
	if err := row.Scan(&out.CreationTime, &out.UpdateTime); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *sessions) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	var out model.Session
	var slots []byte
	row := s.db.QueryRowContext(ctx, `
        SELECT session_id, user_id, slots, creation_time, update_time
        FROM trip_sessions WHERE session_id=?
    `, sessionID)
	if err := row.Scan(&out.SessionID, &out.UserID, &slots, &out.CreationTime, &out.UpdateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(slots, &out.Slots); err != nil {
		return nil, fmt.Errorf("decode session slots: %w", err)
	}
	return &out, nil
}

func (s *sessions) Delete(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trip_sessions WHERE session_id=?`, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Feedback ---

type feedback struct{ db *sql.DB }

const feedbackColumns = `feedback_id, trip_id, user_id, rating, experience, would_recommend,
    highlights, improvements, comment, creation_time, update_time`

func (f *feedback) Upsert(ctx context.Context, m *model.Feedback) (*model.Feedback, error) {
	highlights, err := marshalList(m.Highlights)
	if err != nil {
		return nil, err
	}
	improvements, err := marshalList(m.Improvements)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// feedback_id and creation_time stay out of the conflict SET list so the
	// stored values survive an update.
	_, err = f.db.ExecContext(ctx, `
        INSERT INTO trip_feedback
            (feedback_id, trip_id, user_id, rating, experience, would_recommend, highlights, improvements, comment, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(trip_id, user_id) DO UPDATE
            SET rating = excluded.rating,
                experience = excluded.experience,
                would_recommend = excluded.would_recommend,
                highlights = excluded.highlights,
                improvements = excluded.improvements,
                comment = excluded.comment,
                update_time = excluded.update_time
    `, uuid.New().String(), m.TripID, m.UserID, m.Rating, m.Experience, m.WouldRecommend,
		string(highlights), string(improvements), m.Comment, now, now)
	if err != nil {
		return nil, err
	}

	row := f.db.QueryRowContext(ctx, `
        SELECT `+feedbackColumns+` FROM trip_feedback WHERE trip_id=? AND user_id=?
    `, m.TripID, m.UserID)
	return scanFeedback(row)
}

func (f *feedback) GetByTrip(ctx context.Context, tripID string) (*model.Feedback, error) {
	row := f.db.QueryRowContext(ctx, `
        SELECT `+feedbackColumns+`
        FROM trip_feedback WHERE trip_id=?
        ORDER BY creation_time DESC LIMIT 1
    `, tripID)
	out, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return out, err
}

func (f *feedback) ListByUser(ctx context.Context, userID string) ([]*model.Feedback, error) {
	return f.list(ctx, `
        SELECT `+feedbackColumns+`
        FROM trip_feedback WHERE user_id=?
        ORDER BY creation_time DESC
    `, userID)
}

func (f *feedback) ListAll(ctx context.Context) ([]*model.Feedback, error) {
	return f.list(ctx, `
        SELECT `+feedbackColumns+`
        FROM trip_feedback
        ORDER BY creation_time DESC
    `)
}

func (f *feedback) list(ctx context.Context, query string, args ...any) ([]*model.Feedback, error) {
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, fb)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*model.Feedback, error) {
	var out model.Feedback
	var highlights, improvements []byte
	if err := row.Scan(
		&out.FeedbackID, &out.TripID, &out.UserID, &out.Rating, &out.Experience, &out.WouldRecommend,
		&highlights, &improvements, &out.Comment, &out.CreationTime, &out.UpdateTime,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(highlights, &out.Highlights); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	if err := json.Unmarshal(improvements, &out.Improvements); err != nil {
		return nil, fmt.Errorf("decode improvements: %w", err)
	}
	return &out, nil
}

// marshalList keeps empty lists as JSON arrays rather than SQL nulls.
func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}
