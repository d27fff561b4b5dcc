package players

import (
	"aimtrainer/internal/utility"
	"sync"
)

// Store keeps in-memory player profiles so names, colors and personal bests
// survive across sessions even without a database.
type Store struct {
	mu      sync.Mutex
	players map[string]*Player
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]*Player),
	}
}

func (s *Store) Add(id string, name string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, e := s.players[id]; e {
		p.Name = name
		return p
	}
	player := &Player{ID: id, Name: name, Color: utility.RandomColorHex()}
	s.players[id] = player
	return player
}

func (s *Store) Get(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[id]
}

func (s *Store) GetList() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	playerList := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		playerList = append(playerList, p)
	}
	return playerList
}

// RecordSession bumps the session count and personal best. Returns nil for
// unknown players.
func (s *Store) RecordSession(id string, score int) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, e := s.players[id]; e {
		p.Sessions++
		if score > p.BestScore {
			p.BestScore = score
		}
		return p
	}
	return nil
}

func (s *Store) ValidateSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.players[id]
	return exists
}
