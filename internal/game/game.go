package game

import (
	"aimtrainer/internal/events"
	"aimtrainer/internal/geom"
	"aimtrainer/internal/raycast"
	"aimtrainer/internal/targets"
	"math"
	"sync"
	"time"
)

type State string

const (
	StateIdle   = State("idle")
	StateActive = State("active")
	StateEnded  = State("ended")
)

// PointValue is the fixed score awarded per hit.
const PointValue = 100

// TickInterval is how often the round timer reevaluates remaining time and
// live CPS while a session is active.
const TickInterval = 100 * time.Millisecond

type Config struct {
	Duration  int // seconds
	CameraPos geom.Vec3
	Spawn     targets.SpawnConfig
}

func DefaultConfig() Config {
	return Config{
		Duration:  30,
		CameraPos: geom.Vec3{Y: 1.6},
		Spawn:     targets.DefaultSpawnConfig(),
	}
}

// HUD is the live display state pushed to the client each tick.
type HUD struct {
	TimeLeft float64
	Score    int
	CPS      float64
	Accuracy int
}

// Result holds the final stats of an ended session.
type Result struct {
	Score      int
	Clicks     int
	Hits       int
	Accuracy   int
	CPS        float64
	BestStreak int
	Duration   int
}

// ClickResult reports what a single shot did.
type ClickResult struct {
	Counted   bool // false while the session is not active
	Hit       bool
	HitTarget *targets.Target
	Spawned   *targets.Target
	Score     int
}

// Game is the session state machine. All mutation goes through Start, Click
// and Tick; every transition is a discrete synchronous step.
type Game struct {
	mu         sync.Mutex
	state      State
	cfg        Config
	startedAt  time.Time
	clicks     int
	hits       int
	score      int
	streak     int
	bestStreak int
	timeLeft   float64
	liveCPS    float64
	result     Result

	Targets *targets.Manager
	Events  *events.Bus
}

func NewGame(tm *targets.Manager, bus *events.Bus, cfg Config) *Game {
	return &Game{
		state:    StateIdle,
		cfg:      cfg,
		timeLeft: float64(cfg.Duration),
		Targets:  tm,
		Events:   bus,
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Duration() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.Duration
}

// SetDuration changes the round length. Rejected while a round is running.
func (g *Game) SetDuration(seconds int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateActive {
		return false
	}
	g.cfg.Duration = seconds
	g.timeLeft = float64(seconds)
	return true
}

// Start moves Idle or Ended into Active: counters reset, one target spawned,
// timer armed. Returns the spawned target, or nil when already active.
func (g *Game) Start(now time.Time) *targets.Target {
	g.mu.Lock()
	if g.state == StateActive {
		g.mu.Unlock()
		return nil
	}
	g.state = StateActive
	g.startedAt = now
	g.clicks = 0
	g.hits = 0
	g.score = 0
	g.streak = 0
	g.bestStreak = 0
	g.timeLeft = float64(g.cfg.Duration)
	g.liveCPS = 0
	g.result = Result{}

	g.Targets.Clear()
	target := g.Targets.Spawn(nil)
	g.mu.Unlock()

	g.Events.StateChanges <- events.StateChangeEvent{State: string(StateActive)}
	return target
}

// Click processes one primary-button shot along dir. Outside Active it
// counts nothing. A hit scores PointValue and the target respawns near the
// hit location; a miss carries no penalty.
//
// The whole shot is one critical section: the end-of-round transition in
// Tick cannot interleave between the ray query and the respawn, so a click
// never spawns into an ended session. A target another shot already claimed
// (Despawn returns false) counts as a miss.
func (g *Game) Click(dir geom.Vec3, now time.Time) ClickResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateActive {
		return ClickResult{}
	}
	g.clicks++
	ray := geom.NewRay(g.cfg.CameraPos, dir)

	hit := raycast.QueryHit(ray, g.Targets.Live())
	if hit == nil || !g.Targets.Despawn(hit.Target.ID) {
		g.streak = 0
		return ClickResult{Counted: true, Score: g.score}
	}

	prev := hit.Target.Pos
	spawned := g.Targets.Spawn(&prev)

	g.hits++
	g.score += PointValue
	g.streak++
	if g.streak > g.bestStreak {
		g.bestStreak = g.streak
	}

	return ClickResult{
		Counted:   true,
		Hit:       true,
		HitTarget: hit.Target,
		Spawned:   spawned,
		Score:     g.score,
	}
}

// Tick recomputes remaining time and live CPS. When time runs out it
// performs the Active -> Ended transition and reports true.
func (g *Game) Tick(now time.Time) bool {
	g.mu.Lock()
	if g.state != StateActive {
		g.mu.Unlock()
		return false
	}

	elapsed := now.Sub(g.startedAt).Seconds()
	remaining := float64(g.cfg.Duration) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	g.timeLeft = remaining
	if elapsed > 0 {
		g.liveCPS = float64(g.clicks) / elapsed
	}

	if remaining > 0 {
		g.mu.Unlock()
		return false
	}

	g.state = StateEnded
	g.result = Result{
		Score:      g.score,
		Clicks:     g.clicks,
		Hits:       g.hits,
		Accuracy:   accuracy(g.hits, g.clicks),
		CPS:        float64(g.clicks) / float64(g.cfg.Duration),
		BestStreak: g.bestStreak,
		Duration:   g.cfg.Duration,
	}
	g.Targets.Clear()
	g.mu.Unlock()

	g.Events.StateChanges <- events.StateChangeEvent{State: string(StateEnded)}
	return true
}

func (g *Game) HUD() HUD {
	g.mu.Lock()
	defer g.mu.Unlock()
	return HUD{
		TimeLeft: g.timeLeft,
		Score:    g.score,
		CPS:      g.liveCPS,
		Accuracy: accuracy(g.hits, g.clicks),
	}
}

// Result returns the final stats. Only meaningful once the state is Ended.
func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

func accuracy(hits, clicks int) int {
	if clicks == 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(clicks) * 100))
}
