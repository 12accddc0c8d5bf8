package game

import "math"

// geomEps is the tolerance used for parallel-ray and grazing-hit tests.
const geomEps = 1e-9

// selfHitEps is the minimum travel distance before a ray may register a hit.
// Prevents a ray that starts on an occupant's edge from colliding with it.
const selfHitEps = 1e-6

// Vec is a 2D point or direction in canvas space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the 2D cross product (z component) of v and o.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l < geomEps {
		return v
	}
	return Vec{v.X / l, v.Y / l}
}

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// VecFromAngle returns the unit vector pointing along angle (radians).
func VecFromAngle(angle float64) Vec {
	return Vec{math.Cos(angle), math.Sin(angle)}
}

// Ray is a half-line: origin plus unit direction.
type Ray struct {
	Origin Vec
	Dir    Vec
}

// NewRay builds a ray from an origin point and an aim angle in radians.
func NewRay(origin Vec, angle float64) Ray {
	return Ray{Origin: origin, Dir: VecFromAngle(angle)}
}

// PointAt returns the point at distance d along the ray.
func (r Ray) PointAt(d float64) Vec {
	return r.Origin.Add(r.Dir.Scale(d))
}

// LineSegment is a bounded edge with an outward-facing unit normal.
// Tile bounding boxes and the play-area border are made of these.
type LineSegment struct {
	A, B   Vec
	Normal Vec
}

// IntersectSegment returns the distance along the ray at which it crosses
// the segment, or false when they do not meet. Hits behind the origin or
// within selfHitEps of it are rejected.
func (r Ray) IntersectSegment(s LineSegment) (float64, bool) {
	e := s.B.Sub(s.A)
	denom := r.Dir.Cross(e)
	if math.Abs(denom) < geomEps {
		return 0, false // parallel
	}
	ao := s.A.Sub(r.Origin)
	t := ao.Cross(e) / denom
	u := ao.Cross(r.Dir) / denom
	if t < selfHitEps || u < -geomEps || u > 1+geomEps {
		return 0, false
	}
	return t, true
}

// Reflect mirrors dir about the unit normal n: r = d - 2(d·n)n.
func Reflect(dir, n Vec) Vec {
	return dir.Sub(n.Scale(2 * dir.Dot(n)))
}
