package analytics

// SessionStats is one finished session's scorecard.
type SessionStats struct {
	SessionID    string
	ShareCode    string
	PlayerID     string
	PlayerName   string
	PlayerColor  string
	Duration     int // seconds
	Clicks       int
	Hits         int
	Score        int
	Accuracy     int     // percent
	CPS          float64 // clicks per second
	BestStreak   int
	AvgReaction  float64 // ms
	BestReaction int     // ms
}

type PlayerLifetimeStats struct {
	PlayerID       string
	PlayerName     string
	PlayerColor    string
	SessionsPlayed int
	TotalClicks    int
	TotalHits      int
	BestScore      int
	BestAccuracy   int
	BestCPS        float64
	Badges         []Badge
}

type LeaderboardEntry struct {
	PlayerID    string
	PlayerName  string
	PlayerColor string
	Value       float64
	Rank        int
}
