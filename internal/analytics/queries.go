package analytics

import (
	"aimtrainer/internal/db"
	"fmt"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

func (q *Queries) GetSessionStats(sessionID string) (*SessionStats, error) {
	stats := &SessionStats{
		SessionID: sessionID,
	}

	var durationMs int
	err := q.DB.QueryRow(`
		SELECT s.share_code, s.player_id, p.name, p.color, s.duration_ms,
		       s.clicks, s.hits, s.score, s.accuracy, s.cps, s.best_streak
		FROM sessions s
		JOIN players p ON p.id = s.player_id
		WHERE s.id = $1
	`, sessionID).Scan(&stats.ShareCode, &stats.PlayerID, &stats.PlayerName, &stats.PlayerColor,
		&durationMs, &stats.Clicks, &stats.Hits, &stats.Score, &stats.Accuracy, &stats.CPS, &stats.BestStreak)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	stats.Duration = durationMs / 1000

	// Reaction times only exist for hits
	err = q.DB.QueryRow(`
		SELECT COALESCE(AVG(reaction_ms), 0), COALESCE(MIN(reaction_ms), 0)
		FROM shot_events
		WHERE session_id = $1 AND hit
	`, sessionID).Scan(&stats.AvgReaction, &stats.BestReaction)
	if err != nil {
		return nil, fmt.Errorf("getting reaction stats: %w", err)
	}

	return stats, nil
}

func (q *Queries) GetSessionStatsByShareCode(shareCode string) (*SessionStats, error) {
	rec, err := q.DB.GetSessionByShareCode(shareCode)
	if err != nil {
		return nil, err
	}
	return q.GetSessionStats(rec.ID)
}

func (q *Queries) GetPlayerLifetimeStats(playerID string) (*PlayerLifetimeStats, error) {
	stats := &PlayerLifetimeStats{
		PlayerID: playerID,
	}

	err := q.DB.QueryRow(`SELECT name, color FROM players WHERE id = $1`, playerID).
		Scan(&stats.PlayerName, &stats.PlayerColor)
	if err != nil {
		return nil, fmt.Errorf("getting player: %w", err)
	}

	err = q.DB.QueryRow(`
		SELECT
			COUNT(*) as sessions_played,
			COALESCE(SUM(clicks), 0) as total_clicks,
			COALESCE(SUM(hits), 0) as total_hits,
			COALESCE(MAX(score), 0) as best_score,
			COALESCE(MAX(accuracy), 0) as best_accuracy,
			COALESCE(MAX(cps), 0) as best_cps
		FROM sessions
		WHERE player_id = $1 AND ended_at IS NOT NULL
	`, playerID).Scan(&stats.SessionsPlayed, &stats.TotalClicks, &stats.TotalHits,
		&stats.BestScore, &stats.BestAccuracy, &stats.BestCPS)
	if err != nil {
		return nil, fmt.Errorf("getting lifetime stats: %w", err)
	}

	stats.Badges = EvaluateLifetimeBadges(*stats)

	return stats, nil
}

func (q *Queries) GetLeaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "score":
		query = `
			SELECT p.id, p.name, p.color, COALESCE(MAX(s.score), 0)::float8 as value
			FROM players p
			JOIN sessions s ON s.player_id = p.id AND s.ended_at IS NOT NULL
			GROUP BY p.id, p.name, p.color
			ORDER BY value DESC
			LIMIT $1`
	case "accuracy":
		query = `
			SELECT p.id, p.name, p.color, COALESCE(MAX(s.accuracy), 0)::float8 as value
			FROM players p
			JOIN sessions s ON s.player_id = p.id AND s.ended_at IS NOT NULL AND s.clicks >= 10
			GROUP BY p.id, p.name, p.color
			ORDER BY value DESC
			LIMIT $1`
	case "cps":
		query = `
			SELECT p.id, p.name, p.color, COALESCE(MAX(s.cps), 0) as value
			FROM players p
			JOIN sessions s ON s.player_id = p.id AND s.ended_at IS NOT NULL
			GROUP BY p.id, p.name, p.color
			ORDER BY value DESC
			LIMIT $1`
	case "reaction":
		query = `
			SELECT p.id, p.name, p.color, COALESCE(MIN(se.reaction_ms), 0)::float8 as value
			FROM players p
			JOIN shot_events se ON se.player_id = p.id AND se.hit
			GROUP BY p.id, p.name, p.color
			ORDER BY value ASC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.PlayerColor, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, nil
}
