package db

import (
	"fmt"
	"time"
)

type ShotEvent struct {
	SessionID    string
	PlayerID     string
	TargetID     int
	Hit          bool
	DirX         float64
	DirY         float64
	DirZ         float64
	TargetX      float64
	TargetY      float64
	TargetZ      float64
	TargetRadius float64
	SpawnedAt    time.Time
	FiredAt      time.Time
	ReactionMs   int
}

const insertShotSQL = `
	INSERT INTO shot_events (session_id, player_id, target_id, hit, dir_x, dir_y, dir_z, target_x, target_y, target_z, target_radius, spawned_at, fired_at, reaction_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (d *DB) RecordShot(ev ShotEvent) error {
	_, err := d.conn.Exec(insertShotSQL,
		ev.SessionID, ev.PlayerID, ev.TargetID, ev.Hit, ev.DirX, ev.DirY, ev.DirZ,
		ev.TargetX, ev.TargetY, ev.TargetZ, ev.TargetRadius, ev.SpawnedAt, ev.FiredAt, ev.ReactionMs)
	if err != nil {
		return fmt.Errorf("recording shot: %w", err)
	}
	return nil
}

func (d *DB) BatchRecordShots(events []ShotEvent) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertShotSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(
			ev.SessionID, ev.PlayerID, ev.TargetID, ev.Hit, ev.DirX, ev.DirY, ev.DirZ,
			ev.TargetX, ev.TargetY, ev.TargetZ, ev.TargetRadius, ev.SpawnedAt, ev.FiredAt, ev.ReactionMs); err != nil {
			return fmt.Errorf("recording shot in batch: %w", err)
		}
	}

	return tx.Commit()
}
