package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Progress is one session's resume position for an item.
type Progress struct {
	SessionID       string
	ItemID          string
	PositionSeconds float64
	DurationSeconds float64
	UpdatedAt       time.Time
}

// ProgressRepository records playback positions reported by the player
// sync controller, keyed by session and item.
type ProgressRepository struct {
	db *DB
}

func NewProgressRepository(db *DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Upsert(sessionID, itemID string, position, duration float64) error {
	_, err := r.db.conn.Exec(`
		INSERT INTO playback_progress
			(session_id, item_id, position_seconds, duration_seconds, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, item_id) DO UPDATE SET
			position_seconds = excluded.position_seconds,
			duration_seconds = excluded.duration_seconds,
			updated_at = excluded.updated_at`,
		sessionID, itemID, position, duration, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Get(sessionID, itemID string) (*Progress, error) {
	var p Progress
	err := r.db.conn.QueryRow(`
		SELECT session_id, item_id, position_seconds, duration_seconds, updated_at
		FROM playback_progress
		WHERE session_id = ? AND item_id = ?`,
		sessionID, itemID,
	).Scan(&p.SessionID, &p.ItemID, &p.PositionSeconds, &p.DurationSeconds, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("progress for %s/%s: %w", sessionID, itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}
