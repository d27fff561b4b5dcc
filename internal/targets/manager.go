package targets

import (
	"aimtrainer/internal/geom"
	"aimtrainer/internal/scene"
	"aimtrainer/internal/utility"
	"math/rand"
	"sync"
	"time"
)

// SpawnConfig bounds target placement. Initial spawns pick uniformly inside
// the ranges at the fixed depth; proximity spawns offset the previous
// position by at most MaxShift per axis, then clamp back into the ranges.
// The vertical ceiling intentionally differs between the two cases; both
// bounds are kept configurable rather than unified.
type SpawnConfig struct {
	HalfRangeX    float64 // horizontal range is [-HalfRangeX, HalfRangeX]
	MinY          float64
	MaxYInitial   float64
	MaxYProximity float64
	Depth         float64 // fixed distance in front of the camera (negative Z)
	Radius        float64
	MaxShift      float64
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		HalfRangeX:    8,
		MinY:          1,
		MaxYInitial:   5,
		MaxYProximity: 6,
		Depth:         12,
		Radius:        0.5,
		MaxShift:      3,
	}
}

// Manager creates, positions and destroys targets, mirroring every live
// target into the scene handle it was given.
type Manager struct {
	mu      sync.Mutex
	targets map[int]*Target
	nextID  int
	scene   *scene.Handle
	cfg     SpawnConfig
	rng     *rand.Rand
}

func NewManager(sc *scene.Handle, cfg SpawnConfig) *Manager {
	return &Manager{
		targets: make(map[int]*Target),
		nextID:  1,
		scene:   sc,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Spawn places a new target. With no previous position the placement is
// uniform inside the spawn ranges; with one, the new position is a bounded
// random offset from it, clamped into the ranges.
func (m *Manager) Spawn(prev *geom.Vec3) *Target {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pos geom.Vec3
	if prev == nil {
		pos = geom.Vec3{
			X: m.uniform(-m.cfg.HalfRangeX, m.cfg.HalfRangeX),
			Y: m.uniform(m.cfg.MinY, m.cfg.MaxYInitial),
			Z: -m.cfg.Depth,
		}
	} else {
		pos = geom.Vec3{
			X: geom.Clamp(prev.X+m.uniform(-m.cfg.MaxShift, m.cfg.MaxShift), -m.cfg.HalfRangeX, m.cfg.HalfRangeX),
			Y: geom.Clamp(prev.Y+m.uniform(-m.cfg.MaxShift, m.cfg.MaxShift), m.cfg.MinY, m.cfg.MaxYProximity),
			Z: -m.cfg.Depth,
		}
	}

	id := m.nextID
	m.nextID++
	target := &Target{
		ID:        id,
		Pos:       pos,
		Radius:    m.cfg.Radius,
		Color:     utility.RandomColorHex(),
		SpawnedAt: time.Now(),
	}
	m.targets[id] = target
	m.scene.Add(scene.Object{ID: id, Pos: pos, Radius: target.Radius, Color: target.Color})
	return target
}

func (m *Manager) Get(id int) *Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targets[id]
}

// Despawn removes the target from the live set and the scene. It reports
// whether the target was live; despawning an absent or dead target is a
// no-op.
func (m *Manager) Despawn(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.targets[id]
	if !ok || t.Dead {
		return false
	}
	t.Dead = true
	m.scene.Remove(id)
	return true
}

func (m *Manager) Live() []*Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*Target, 0, len(m.targets))
	for _, t := range m.targets {
		if !t.Dead {
			list = append(list, t)
		}
	}
	return list
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets = make(map[int]*Target)
	m.nextID = 1
	m.scene.Clear()
}

func (m *Manager) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}
