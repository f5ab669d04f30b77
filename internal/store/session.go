package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents one completed monitoring run.
type Session struct {
	ID                string    `json:"id"`
	StartedAt         time.Time `json:"started_at"`
	EndedAt           time.Time `json:"ended_at"`
	FocusedSeconds    float64   `json:"focused_seconds"`
	DistractedSeconds float64   `json:"distracted_seconds"`
	DistractionCount  int       `json:"distraction_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// HistoryRecord is one sampled attention level/mood entry.
type HistoryRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
	Level     float64   `json:"level"`
	Mood      string    `json:"mood"`
}

// Totals aggregates focus counters across sessions.
type Totals struct {
	FocusedSeconds    float64 `json:"focused_seconds"`
	DistractedSeconds float64 `json:"distracted_seconds"`
	DistractionCount  int     `json:"distraction_count"`
	Sessions          int     `json:"sessions"`
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session. A missing ID is generated.
func (r *SessionRepository) Create(sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	sess.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at, ended_at, focused_seconds, distracted_seconds, distraction_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.StartedAt, sess.EndedAt, sess.FocusedSeconds,
		sess.DistractedSeconds, sess.DistractionCount, sess.CreatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, started_at, ended_at, focused_seconds, distracted_seconds, distraction_count, created_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.StartedAt, &sess.EndedAt, &sess.FocusedSeconds,
		&sess.DistractedSeconds, &sess.DistractionCount, &sess.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, focused_seconds, distracted_seconds, distraction_count, created_at
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.EndedAt, &sess.FocusedSeconds,
			&sess.DistractedSeconds, &sess.DistractionCount, &sess.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Totals aggregates focus counters across all sessions.
func (r *SessionRepository) Totals() (*Totals, error) {
	t := &Totals{}

	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(focused_seconds), 0), COALESCE(SUM(distracted_seconds), 0),
		        COALESCE(SUM(distraction_count), 0), COUNT(*)
		 FROM sessions`,
	).Scan(&t.FocusedSeconds, &t.DistractedSeconds, &t.DistractionCount, &t.Sessions)

	if err != nil {
		return nil, err
	}

	return t, nil
}

// Delete removes a session by its ID.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendHistory inserts attention history records for a session in a
// single transaction.
func (r *SessionRepository) AppendHistory(sessionID string, records []HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO attention_history (session_id, at, level, mood) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(sessionID, rec.At, rec.Level, rec.Mood); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// History retrieves the attention history for a session, oldest first.
func (r *SessionRepository) History(sessionID string) ([]HistoryRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, at, level, mood
		 FROM attention_history
		 WHERE session_id = ?
		 ORDER BY at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.At, &rec.Level, &rec.Mood); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
