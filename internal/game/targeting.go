package game

import (
	"fmt"
	"sort"
)

// Ray marching granularity: step = TileSize / stepsPerTile. Small enough
// that no tile can be skipped between steps.
const stepsPerTile = 8

// ricochetNudge offsets a reflected ray off the surface it bounced from.
const ricochetNudge = 1e-3

// HitKind identifies what a Target struck.
type HitKind int

const (
	HitObstacle HitKind = iota
	HitCharacter
	HitBorder // shot left the play area: lost
)

func (k HitKind) String() string {
	switch k {
	case HitObstacle:
		return "obstacle"
	case HitCharacter:
		return "character"
	case HitBorder:
		return "border"
	default:
		return "unknown"
	}
}

// Target is one resolved hit along a shot path.
type Target struct {
	Kind          HitKind
	Tile          TileCoord // struck occupant's tile (last in-bounds tile for border exits)
	Impact        Vec
	Normal        Vec // outward normal of the struck edge
	OutDir        Vec // reflected direction when the path continues; zero when terminal
	Distance      float64 // cumulative distance from the shot origin
	RicochetsLeft int
	CharacterIdx  int // arena index of the struck character, -1 otherwise
}

// ObstacleSet is the static obstacle occupancy, keyed by row-major tile
// index.
type ObstacleSet map[int]bool

// NewObstacleSet builds an ObstacleSet from level tiles, dropping any that
// fall outside the grid.
func NewObstacleSet(g Grid, tiles []TileCoord) ObstacleSet {
	set := make(ObstacleSet, len(tiles))
	for _, t := range tiles {
		if g.InBounds(t) {
			set[g.Index(t)] = true
		}
	}
	return set
}

// Has reports whether the tile holds an obstacle.
func (o ObstacleSet) Has(g Grid, t TileCoord) bool { return o[g.Index(t)] }

// ResolveShot traces a projectile from origin along the given ray and
// returns the ordered shot path. Characters on fromTeam are transparent to
// hit-testing. Obstacles reflect the ray while the ricochet budget lasts;
// characters and the play-area border always terminate the path. Shot
// paths are ephemeral: recomputed from scratch on every query.
func ResolveShot(g Grid, origin Ray, fromTeam int, proj ProjectileDetails, characters []*Character, obstacles ObstacleSet) []Target {
	charAt := liveCharacterIndex(g, characters)

	var path []Target
	budget := 0
	if proj.CanRicochet() {
		budget = proj.Ricochets
	}

	ray := origin
	travelled := 0.0
	skipTile := -1 // tile that reflected the previous segment
	for {
		tgt, ok := marchSegment(g, ray, fromTeam, characters, charAt, obstacles, skipTile)
		if !ok {
			// Ray left the play area without any hit this segment.
			path = append(path, borderTarget(g, ray, travelled, budget))
			return path
		}
		tgt.Distance += travelled
		tgt.RicochetsLeft = budget

		if tgt.Kind == HitCharacter || budget == 0 {
			path = append(path, tgt)
			return path
		}

		// Ricochet: mirror the direction about the struck edge's normal and
		// continue from the impact point with one less bounce.
		budget--
		out := Reflect(ray.Dir, tgt.Normal).Normalize()
		tgt.OutDir = out
		tgt.RicochetsLeft = budget
		path = append(path, tgt)

		travelled = tgt.Distance
		skipTile = g.Index(tgt.Tile)
		ray = Ray{Origin: tgt.Impact.Add(out.Scale(ricochetNudge)), Dir: out}
	}
}

// liveCharacterIndex maps row-major tile index to character arena index for
// every live character.
func liveCharacterIndex(g Grid, characters []*Character) map[int]int {
	m := make(map[int]int, len(characters))
	for i, c := range characters {
		if c.Alive() {
			m[g.Index(c.Tile)] = i
		}
	}
	return m
}

// marchSegment walks one straight segment of a shot. It returns the closest
// hit, or ok=false when the ray exits the play area first.
//
// At each fixed-size step, the tile under the ray and its eight neighbors
// are scanned for occupants not yet examined on this segment. Candidates
// are ordered nearest-tile-center-first (row-major index breaking exact
// ties), and only a strictly closer intersection displaces the current
// best, so equal-distance hits resolve deterministically to the earlier
// candidate. A pending hit is only accepted once the march has reached its
// distance, which guarantees no closer occupant is still unscanned.
func marchSegment(g Grid, ray Ray, fromTeam int, characters []*Character, charAt map[int]int, obstacles ObstacleSet, skipTile int) (Target, bool) {
	const step = TileSize / stepsPerTile

	examined := map[int]bool{skipTile: true}
	best := Target{Distance: -1}

	for d := step; ; d += step {
		if best.Distance >= 0 && best.Distance <= d {
			return best, true
		}
		p := ray.PointAt(d)
		if !g.Contains(p) {
			if best.Distance >= 0 {
				return best, true
			}
			return Target{}, false
		}

		for _, tile := range candidateTiles(g, g.TileAt(p), p) {
			idx := g.Index(tile)
			if examined[idx] {
				continue
			}

			var kind HitKind
			charIdx := -1
			switch {
			case obstacles[idx]:
				kind = HitObstacle
			default:
				ci, ok := charAt[idx]
				if !ok {
					continue
				}
				if characters[ci].Team == fromTeam {
					// Friendly: transparent to hit-testing.
					examined[idx] = true
					continue
				}
				kind = HitCharacter
				charIdx = ci
			}
			examined[idx] = true

			for _, edge := range TileEdges(tile) {
				t, ok := ray.IntersectSegment(edge)
				if !ok {
					continue
				}
				if best.Distance < 0 || t < best.Distance {
					best = Target{
						Kind:         kind,
						Tile:         tile,
						Impact:       ray.PointAt(t),
						Normal:       edge.Normal,
						Distance:     t,
						CharacterIdx: charIdx,
					}
				}
			}
		}
	}
}

// candidateTiles returns the in-bounds tiles around center ordered by
// distance of their centers from the march point p, row-major index
// breaking exact ties.
func candidateTiles(g Grid, center TileCoord, p Vec) []TileCoord {
	tiles := make([]TileCoord, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			t := center.Add(dc, dr)
			if g.InBounds(t) {
				tiles = append(tiles, t)
			}
		}
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		di := g.TileCenter(tiles[i]).Sub(p)
		dj := g.TileCenter(tiles[j]).Sub(p)
		li := di.Dot(di)
		lj := dj.Dot(dj)
		if li != lj {
			return li < lj
		}
		return g.Index(tiles[i]) < g.Index(tiles[j])
	})
	return tiles
}

// borderTarget locates where a lost shot crosses the play-area border.
// The arena is bounded, so a ray that hits nothing must cross it; anything
// else is a geometry fault.
func borderTarget(g Grid, ray Ray, travelled float64, budget int) Target {
	bestT := -1.0
	var bestNormal Vec
	for _, seg := range g.BorderSegments() {
		t, ok := ray.IntersectSegment(seg)
		if !ok {
			continue
		}
		if bestT < 0 || t < bestT {
			bestT = t
			bestNormal = seg.Normal
		}
	}
	if bestT < 0 {
		panic(fmt.Sprintf("shot ray from %+v dir %+v escaped the bounded play area", ray.Origin, ray.Dir))
	}
	impact := ray.PointAt(bestT)
	// Resolve the tile just inside the border.
	inside := ray.PointAt(bestT - ricochetNudge)
	return Target{
		Kind:          HitBorder,
		Tile:          g.TileAt(inside),
		Impact:        impact,
		Normal:        bestNormal,
		Distance:      travelled + bestT,
		RicochetsLeft: budget,
		CharacterIdx:  -1,
	}
}

// HasLineOfSight reports whether the straight segment from a to b crosses
// no obstacle tile. Characters do not block sight.
func HasLineOfSight(g Grid, a, b Vec, obstacles ObstacleSet) bool {
	dist := a.Dist(b)
	if dist < geomEps {
		return true
	}
	ray := Ray{Origin: a, Dir: b.Sub(a).Normalize()}
	for idx := range obstacles {
		tile := T(idx%g.Cols, idx/g.Cols)
		for _, edge := range TileEdges(tile) {
			if t, ok := ray.IntersectSegment(edge); ok && t < dist {
				return false
			}
		}
	}
	return true
}
