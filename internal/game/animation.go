package game

// Animation is purely presentational: it never affects combat resolution,
// but the state machine polls it each frame and accepts no action while
// anything is in flight.

const (
	moveAnimSpeed = 4.0 // canvas units per tick
	shotAnimSpeed = 12.0
)

// MoveAnim interpolates a character along a sequence of canvas waypoints.
type MoveAnim struct {
	waypoints []Vec
	idx       int
	pos       Vec
	speed     float64
	active    bool
}

// Start begins interpolation from the first waypoint through the rest.
func (a *MoveAnim) Start(waypoints []Vec, speed float64) {
	if len(waypoints) < 2 {
		a.active = false
		return
	}
	a.waypoints = waypoints
	a.idx = 1
	a.pos = waypoints[0]
	a.speed = speed
	a.active = true
}

// Active reports whether the interpolation is still running.
func (a *MoveAnim) Active() bool { return a.active }

// Pos returns the current interpolated position.
func (a *MoveAnim) Pos() Vec { return a.pos }

// Advance steps the interpolation by one tick.
func (a *MoveAnim) Advance() {
	if !a.active {
		return
	}
	remaining := a.speed
	for remaining > 0 && a.idx < len(a.waypoints) {
		wp := a.waypoints[a.idx]
		d := a.pos.Dist(wp)
		if d <= remaining {
			a.pos = wp
			remaining -= d
			a.idx++
		} else {
			a.pos = a.pos.Add(wp.Sub(a.pos).Normalize().Scale(remaining))
			remaining = 0
		}
	}
	if a.idx >= len(a.waypoints) {
		a.active = false
	}
}

// ShotFlight animates a resolved shot path segment by segment. Damage is
// applied when the flight reaches the terminal target, so an intervening
// death can still force a recompute of the remaining path (see
// GameState.recomputeFlight).
type ShotFlight struct {
	origin     Vec
	path       []Target
	projectile ProjectileDetails
	shooterIdx int
	fromTeam   int

	seg      int     // index of the segment currently in flight
	segStart Vec     // canvas start of the current segment
	dist     float64 // distance travelled along the current segment
	done     bool
}

// NewShotFlight starts animating a resolved shot path.
func NewShotFlight(origin Vec, path []Target, proj ProjectileDetails, shooterIdx, fromTeam int) *ShotFlight {
	f := &ShotFlight{
		origin:     origin,
		path:       path,
		projectile: proj,
		shooterIdx: shooterIdx,
		fromTeam:   fromTeam,
		segStart:   origin,
	}
	if len(path) == 0 {
		f.done = true
	}
	return f
}

// Done reports whether the flight has fully resolved.
func (f *ShotFlight) Done() bool { return f.done }

// Pos returns the projectile's current canvas position.
func (f *ShotFlight) Pos() Vec {
	if f.done || f.seg >= len(f.path) {
		return f.segStart
	}
	tgt := f.path[f.seg]
	dir := tgt.Impact.Sub(f.segStart).Normalize()
	return f.segStart.Add(dir.Scale(f.dist))
}

// Advance consumes up to budget units of travel. It returns the Target
// reached plus the unspent budget, or nil while the projectile is still
// mid-segment. Leftover distance carries across segment boundaries, so a
// frame that crosses a ricochet point does not jump ahead. An in-flight
// shot always resolves to completion; there is no cancellation.
func (f *ShotFlight) Advance(budget float64) (*Target, float64) {
	if f.done {
		return nil, 0
	}
	tgt := &f.path[f.seg]
	segLen := f.segStart.Dist(tgt.Impact)
	if f.dist+budget < segLen {
		f.dist += budget
		return nil, 0
	}
	budget -= segLen - f.dist
	f.segStart = tgt.Impact
	f.dist = 0
	f.seg++
	if f.seg >= len(f.path) {
		f.done = true
	}
	return tgt, budget
}

// Remaining returns the targets not yet reached, excluding any segment
// currently in flight.
func (f *ShotFlight) Remaining() []Target {
	if f.done || f.seg >= len(f.path) {
		return nil
	}
	return f.path[f.seg:]
}
