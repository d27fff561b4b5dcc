package geom

import "math"

// Ray is a half-line from Origin along the unit Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay normalizes dir so intersection distances are world units.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: Normalize(dir)}
}

// IntersectSphere returns the distance along the ray to the nearest
// intersection with the sphere at center with the given radius. The second
// return is false when the ray misses or the sphere is entirely behind the
// origin. A ray starting inside the sphere hits at the exit point.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := Sub(r.Origin, center)
	b := 2 * Dot(oc, r.Dir)
	c := MagSq(oc) - radius*radius

	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t := (-b - sqrtDisc) / 2
	if t < 0 {
		t = (-b + sqrtDisc) / 2
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
