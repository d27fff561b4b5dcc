package db

import (
	"fmt"
	"time"
)

type SessionRecord struct {
	ID         string
	ShareCode  string
	PlayerID   string
	DurationMs int
	StartedAt  *time.Time
	EndedAt    *time.Time
	Clicks     int
	Hits       int
	Score      int
	Accuracy   int
	CPS        float64
	BestStreak int
	CreatedAt  time.Time
}

func (d *DB) CreateSession(shareCode, playerID string, durationMs int) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO sessions (share_code, player_id, duration_ms, started_at)
		VALUES ($1, $2, $3, now())
		RETURNING id
	`, shareCode, playerID, durationMs).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// EndSession stamps ended_at and stores the final stats.
func (d *DB) EndSession(sessionID string, clicks, hits, score, accuracy int, cps float64, bestStreak int) error {
	_, err := d.conn.Exec(`
		UPDATE sessions
		SET ended_at = now(), clicks = $2, hits = $3, score = $4, accuracy = $5, cps = $6, best_streak = $7
		WHERE id = $1
	`, sessionID, clicks, hits, score, accuracy, cps, bestStreak)
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	return nil
}

func (d *DB) GetSessionByShareCode(shareCode string) (*SessionRecord, error) {
	var s SessionRecord
	err := d.conn.QueryRow(`
		SELECT id, share_code, player_id, duration_ms, started_at, ended_at,
		       clicks, hits, score, accuracy, cps, best_streak, created_at
		FROM sessions WHERE share_code = $1
		ORDER BY created_at DESC LIMIT 1
	`, shareCode).Scan(&s.ID, &s.ShareCode, &s.PlayerID, &s.DurationMs, &s.StartedAt, &s.EndedAt,
		&s.Clicks, &s.Hits, &s.Score, &s.Accuracy, &s.CPS, &s.BestStreak, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &s, nil
}
