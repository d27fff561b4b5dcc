package targets

import (
	"aimtrainer/internal/geom"
	"time"
)

type Target struct {
	ID        int
	Pos       geom.Vec3
	Radius    float64
	Color     string
	Dead      bool
	SpawnedAt time.Time
}
