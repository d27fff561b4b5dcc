package sessions

import (
	"aimtrainer/internal/broadcast"
	"aimtrainer/internal/game"
	"aimtrainer/internal/scene"
	"aimtrainer/internal/wshub"
	"sync"
	"time"
)

// Session is one player's live training instance plus its delivery channels.
type Session struct {
	Code        string // share code, also the results URL key
	PlayerID    string
	Game        *game.Game
	Scene       *scene.Handle
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time

	mu       sync.Mutex
	recordID string // database row ID of the current round, "" without a database
}

func (s *Session) SetRecordID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordID = id
}

func (s *Session) RecordID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordID
}
