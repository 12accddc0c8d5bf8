package game

import (
	"math"
	"testing"
)

func vecApprox(a, b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestIntersectSegment(t *testing.T) {
	ray := Ray{Origin: Vec{0, 0}, Dir: Vec{1, 0}}

	d, ok := ray.IntersectSegment(LineSegment{A: Vec{5, -1}, B: Vec{5, 1}})
	if !ok {
		t.Fatal("expected hit on crossing segment")
	}
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("hit distance = %v, want 5", d)
	}

	// Segment entirely to one side of the ray line.
	if _, ok := ray.IntersectSegment(LineSegment{A: Vec{5, 1}, B: Vec{5, 3}}); ok {
		t.Fatal("expected miss on offset segment")
	}

	// Parallel segment.
	if _, ok := ray.IntersectSegment(LineSegment{A: Vec{0, 1}, B: Vec{10, 1}}); ok {
		t.Fatal("expected miss on parallel segment")
	}

	// Segment behind the origin.
	if _, ok := ray.IntersectSegment(LineSegment{A: Vec{-5, -1}, B: Vec{-5, 1}}); ok {
		t.Fatal("expected miss on segment behind origin")
	}
}

func TestIntersectSegmentEndpoint(t *testing.T) {
	// A hit exactly on a segment endpoint still counts.
	ray := Ray{Origin: Vec{0, 0}, Dir: Vec{1, 1}.Normalize()}
	d, ok := ray.IntersectSegment(LineSegment{A: Vec{4, 0}, B: Vec{4, 4}})
	if !ok {
		t.Fatal("expected endpoint hit")
	}
	if math.Abs(d-4*math.Sqrt2) > 1e-9 {
		t.Fatalf("hit distance = %v, want %v", d, 4*math.Sqrt2)
	}
}

func TestReflect(t *testing.T) {
	r := Reflect(Vec{1, 0}, Vec{-1, 0})
	if !vecApprox(r, Vec{-1, 0}, 1e-12) {
		t.Fatalf("head-on reflection = %+v, want (-1,0)", r)
	}

	s := math.Sqrt2 / 2
	r = Reflect(Vec{s, s}, Vec{0, -1})
	if !vecApprox(r, Vec{s, -s}, 1e-12) {
		t.Fatalf("diagonal reflection = %+v, want (%v,%v)", r, s, -s)
	}

	// Reflection preserves length.
	if math.Abs(r.Len()-1) > 1e-12 {
		t.Fatalf("reflected length = %v, want 1", r.Len())
	}
}

func TestVecFromAngle(t *testing.T) {
	v := VecFromAngle(0)
	if !vecApprox(v, Vec{1, 0}, 1e-12) {
		t.Fatalf("angle 0 = %+v, want (1,0)", v)
	}
	v = VecFromAngle(math.Pi / 2)
	if !vecApprox(v, Vec{0, 1}, 1e-12) {
		t.Fatalf("angle pi/2 = %+v, want (0,1)", v)
	}
	if a := VecFromAngle(0.7).Angle(); math.Abs(a-0.7) > 1e-12 {
		t.Fatalf("angle roundtrip = %v, want 0.7", a)
	}
}

func TestNormalizeZero(t *testing.T) {
	if v := (Vec{}).Normalize(); v != (Vec{}) {
		t.Fatalf("normalized zero vector = %+v", v)
	}
}
