package server

import (
	"aimtrainer/internal/analytics"
	"log"
	"net/http"
	"sort"
	"strings"
)

func (s *Server) handleAnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	data := struct {
		PlayerStats *analytics.PlayerLifetimeStats
		Leaderboard []analytics.LeaderboardEntry
	}{}

	if s.DB == nil {
		if idCookie, err := r.Cookie("player_id"); err == nil {
			data.PlayerStats = s.memoryPlayerStats(idCookie.Value)
		}
		data.Leaderboard = s.memoryLeaderboard(10)
	} else {
		q := analytics.NewQueries(s.DB)

		// Get player stats if known
		if idCookie, err := r.Cookie("player_id"); err == nil {
			stats, err := q.GetPlayerLifetimeStats(idCookie.Value)
			if err == nil {
				data.PlayerStats = stats
			}
		}

		// Default leaderboard: score
		leaderboard, err := q.GetLeaderboard("score", 10)
		if err != nil {
			log.Printf("[Analytics] leaderboard error: %v\n", err)
		}
		data.Leaderboard = leaderboard
	}

	if err := s.Tmpl.ExecuteTemplate(w, "analytics-dashboard", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering analytics", http.StatusInternalServerError)
	}
}

func (s *Server) handleAnalyticsLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "score"
	}

	var entries []analytics.LeaderboardEntry
	if s.DB == nil {
		// Without a database only personal-best scores are tracked
		if category == "score" {
			entries = s.memoryLeaderboard(10)
		}
	} else {
		var err error
		entries, err = analytics.NewQueries(s.DB).GetLeaderboard(category, 10)
		if err != nil {
			log.Printf("[Analytics] leaderboard error: %v\n", err)
			http.Error(w, "Error loading leaderboard", http.StatusInternalServerError)
			return
		}
	}

	// htmx tab switches want the bare entries, direct visits the full page
	name := "leaderboard-page"
	if r.Header.Get("HX-Request") != "" {
		name = "leaderboard-entries"
	}
	if err := s.Tmpl.ExecuteTemplate(w, name, entries); err != nil {
		log.Println(err)
	}
}

func (s *Server) handleAnalyticsPlayer(w http.ResponseWriter, r *http.Request) {
	// /analytics/player/{id}
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 {
		http.Error(w, "Player ID required", http.StatusBadRequest)
		return
	}
	playerID := parts[3]

	var stats *analytics.PlayerLifetimeStats
	if s.DB == nil {
		stats = s.memoryPlayerStats(playerID)
		if stats == nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
	} else {
		q := analytics.NewQueries(s.DB)
		var err error
		stats, err = q.GetPlayerLifetimeStats(playerID)
		if err != nil {
			log.Printf("[Analytics] player stats error: %v\n", err)
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		// Show what was actually awarded, not a re-evaluation
		badgeIDs, err := s.DB.GetPlayerBadges(playerID)
		if err == nil {
			stats.Badges = stats.Badges[:0]
			for _, id := range badgeIDs {
				if b, ok := analytics.AllBadges[analytics.BadgeID(id)]; ok {
					stats.Badges = append(stats.Badges, b)
				}
			}
		}
	}

	if err := s.Tmpl.ExecuteTemplate(w, "analytics-player", stats); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering player stats", http.StatusInternalServerError)
	}
}

// memoryLeaderboard ranks the in-memory player store by personal best.
func (s *Server) memoryLeaderboard(limit int) []analytics.LeaderboardEntry {
	list := s.Players.GetList()
	sort.Slice(list, func(i, j int) bool { return list[i].BestScore > list[j].BestScore })

	var entries []analytics.LeaderboardEntry
	for _, p := range list {
		if len(entries) == limit {
			break
		}
		if p.Sessions == 0 {
			continue
		}
		entries = append(entries, analytics.LeaderboardEntry{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			PlayerColor: p.Color,
			Value:       float64(p.BestScore),
			Rank:        len(entries) + 1,
		})
	}
	return entries
}

// memoryPlayerStats builds a lifetime scorecard from the in-memory store
// when no database is configured. Only session count and personal best
// survive without persistence.
func (s *Server) memoryPlayerStats(playerID string) *analytics.PlayerLifetimeStats {
	p := s.Players.Get(playerID)
	if p == nil {
		return nil
	}
	return &analytics.PlayerLifetimeStats{
		PlayerID:       p.ID,
		PlayerName:     p.Name,
		PlayerColor:    p.Color,
		SessionsPlayed: p.Sessions,
		BestScore:      p.BestScore,
	}
}
