package analytics

type BadgeID string

const (
	BadgeSharpshooter  BadgeID = "sharpshooter"
	BadgeSpeedDemon    BadgeID = "speed_demon"
	BadgeCenturion     BadgeID = "centurion"
	BadgeTriggerHappy  BadgeID = "trigger_happy"
	BadgePerfectionist BadgeID = "perfectionist"
	BadgeHotStreak     BadgeID = "hot_streak"
	BadgeVeteran       BadgeID = "veteran"
)

type Badge struct {
	ID          BadgeID
	Name        string
	Description string
	Icon        string
}

var AllBadges = map[BadgeID]Badge{
	BadgeSharpshooter:  {ID: BadgeSharpshooter, Name: "Sharpshooter", Description: "90%+ accuracy over 10+ shots", Icon: "🎯"},
	BadgeSpeedDemon:    {ID: BadgeSpeedDemon, Name: "Speed Demon", Description: "Average reaction time under 300ms", Icon: "⚡"},
	BadgeCenturion:     {ID: BadgeCenturion, Name: "Centurion", Description: "1000+ points in a single session", Icon: "💯"},
	BadgeTriggerHappy:  {ID: BadgeTriggerHappy, Name: "Trigger Happy", Description: "3+ clicks per second average", Icon: "🖱️"},
	BadgePerfectionist: {ID: BadgePerfectionist, Name: "Perfectionist", Description: "100% accuracy over 10+ shots", Icon: "✨"},
	BadgeHotStreak:     {ID: BadgeHotStreak, Name: "Hot Streak", Description: "10 hits in a row", Icon: "🔥"},
	BadgeVeteran:       {ID: BadgeVeteran, Name: "Veteran", Description: "Played 10+ sessions", Icon: "🏅"},
}

// EvaluateSessionBadges checks which badges a player earned in one session.
func EvaluateSessionBadges(stats SessionStats) []Badge {
	var earned []Badge

	// Sharpshooter: 90%+ accuracy with a meaningful sample
	if stats.Clicks >= 10 && stats.Accuracy >= 90 {
		earned = append(earned, AllBadges[BadgeSharpshooter])
	}

	// Speed Demon: avg reaction < 300ms
	if stats.Hits > 0 && stats.AvgReaction > 0 && stats.AvgReaction < 300 {
		earned = append(earned, AllBadges[BadgeSpeedDemon])
	}

	// Centurion: 1000+ points in a session
	if stats.Score >= 1000 {
		earned = append(earned, AllBadges[BadgeCenturion])
	}

	// Trigger Happy: 3+ CPS
	if stats.CPS >= 3.0 {
		earned = append(earned, AllBadges[BadgeTriggerHappy])
	}

	// Perfectionist: every shot a hit
	if stats.Clicks >= 10 && stats.Accuracy == 100 {
		earned = append(earned, AllBadges[BadgePerfectionist])
	}

	// Hot Streak: 10 consecutive hits
	if stats.BestStreak >= 10 {
		earned = append(earned, AllBadges[BadgeHotStreak])
	}

	return earned
}

// EvaluateLifetimeBadges checks which badges a player earned across their career.
func EvaluateLifetimeBadges(stats PlayerLifetimeStats) []Badge {
	var earned []Badge

	// Veteran: 10+ sessions
	if stats.SessionsPlayed >= 10 {
		earned = append(earned, AllBadges[BadgeVeteran])
	}

	return earned
}
