// Package raycast answers "what did this shot hit": a ray from the camera
// against the session's live targets, nearest intersection first.
package raycast

import (
	"aimtrainer/internal/geom"
	"aimtrainer/internal/targets"
)

// Hit is one ray/target intersection.
type Hit struct {
	Target   *targets.Target
	Distance float64
}

// QueryHit casts ray against live and returns the nearest intersected
// target, or nil on a miss. Ties on distance resolve to the first of the
// equally-near targets encountered.
func QueryHit(ray geom.Ray, live []*targets.Target) *Hit {
	var nearest *Hit
	for _, t := range live {
		dist, ok := ray.IntersectSphere(t.Pos, t.Radius)
		if !ok {
			continue
		}
		if nearest == nil || dist < nearest.Distance {
			nearest = &Hit{Target: t, Distance: dist}
		}
	}
	return nearest
}
