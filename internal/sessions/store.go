package sessions

import (
	"aimtrainer/internal/broadcast"
	"aimtrainer/internal/events"
	"aimtrainer/internal/game"
	"aimtrainer/internal/scene"
	"aimtrainer/internal/targets"
	"aimtrainer/internal/wshub"
	"fmt"
	"sync"
	"time"
)

const staleTTL = 1 * time.Hour

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      game.Config
}

func NewStore(cfg game.Config) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
	go s.sweepStale()
	return s
}

// Create builds a fresh session graph (scene, target manager, game, SSE
// broadcaster, websocket hub) under a unique share code.
func (s *Store) Create(playerID string, duration int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	if duration > 0 {
		cfg.Duration = duration
	}

	// Try up to 10 times to generate a unique code
	for i := 0; i < 10; i++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating session code: %w", err)
		}
		if _, exists := s.sessions[code]; exists {
			continue
		}

		sc := scene.NewHandle()
		tm := targets.NewManager(sc, cfg.Spawn)
		bus := events.NewBus()
		g := game.NewGame(tm, bus, cfg)
		b := broadcast.NewBroadcaster(bus)

		session := &Session{
			Code:        code,
			PlayerID:    playerID,
			Game:        g,
			Scene:       sc,
			Broadcaster: b,
			Hub:         wshub.NewHub(),
			CreatedAt:   time.Now(),
		}
		s.sessions[code] = session
		return session, nil
	}
	return nil, fmt.Errorf("failed to generate unique session code after 10 attempts")
}

func (s *Store) Get(code string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[code]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
}

func (s *Store) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	return list
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for code, sess := range s.sessions {
			if now.Sub(sess.CreatedAt) > staleTTL {
				delete(s.sessions, code)
			}
		}
		s.mu.Unlock()
	}
}
