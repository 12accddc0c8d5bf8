package game

import (
	"fmt"
	"math/rand"
)

// AIDifficulty selects an AI personality. All personalities share the same
// decision algorithm; only the profile knobs differ.
type AIDifficulty int

const (
	AIEasy AIDifficulty = iota
	AIMedium
	AIHard
)

func (d AIDifficulty) String() string {
	switch d {
	case AIEasy:
		return "easy"
	case AIMedium:
		return "medium"
	case AIHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a config string to a difficulty.
func ParseDifficulty(s string) (AIDifficulty, error) {
	switch s {
	case "easy":
		return AIEasy, nil
	case "medium":
		return AIMedium, nil
	case "hard":
		return AIHard, nil
	default:
		return AIMedium, fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// aiProfile is the full set of knobs a difficulty level tunes: aim jitter
// after target selection, whether fog of war is honored when scanning, and
// the class spawned during placement.
type aiProfile struct {
	aimJitter  float64 // max random aim perturbation, radians
	honorFog   bool
	spawnClass CharacterClass
}

func profileFor(d AIDifficulty) aiProfile {
	switch d {
	case AIEasy:
		return aiProfile{aimJitter: 0.12, honorFog: true, spawnClass: ClassScout}
	case AIHard:
		return aiProfile{aimJitter: 0, honorFog: false, spawnClass: ClassSoldier}
	default:
		return aiProfile{aimJitter: 0.04, honorFog: true, spawnClass: ClassSoldier}
	}
}

// AIPlanner drives one team. It is a pull-based queue: when empty, it
// synthesizes a short sequence of actions for the current situation and
// emits them one per NextAction call. It only ever reads the GameState;
// every mutation flows back through OnAction.
type AIPlanner struct {
	Team    int
	profile aiProfile
	rng     *rand.Rand
	queue   []Action
}

// NewAIPlanner creates a planner for a team with a deterministic seed.
func NewAIPlanner(team int, d AIDifficulty, seed int64) *AIPlanner {
	return &AIPlanner{
		Team:    team,
		profile: profileFor(d),
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// Reset drops any queued actions, forcing a replan on the next call. The
// host calls this when a queued action is rejected.
func (p *AIPlanner) Reset() { p.queue = nil }

// NextAction returns the next action for the planner's team. The host
// invokes it once per eligible frame: only on this team's turn and never
// while an animation is in flight.
func (p *AIPlanner) NextAction(s *GameState) Action {
	if len(p.queue) == 0 {
		p.plan(s)
	}
	if len(p.queue) == 0 {
		return EndTurnAction{}
	}
	a := p.queue[0]
	p.queue = p.queue[1:]
	return a
}

func (p *AIPlanner) push(actions ...Action) { p.queue = append(p.queue, actions...) }

// plan refills the queue for the current situation.
func (p *AIPlanner) plan(s *GameState) {
	if s.Phase == PhasePlacement {
		p.planPlacement(s)
		return
	}

	idx := p.nextCharacter(s)
	if idx < 0 {
		p.push(EndTurnAction{}) // nothing selectable: end the team turn
		return
	}
	c := s.Characters[idx]
	enemies := p.scanEnemies(s, c)

	// Wounded and holding a ready heal: patch up first (free ability).
	if hi := c.AbilityIndex(AbilityHeal); hi >= 0 && c.Abilities[hi].Ready() &&
		c.Health*2 <= c.Stats.MaxHealth {
		p.push(SelectCharacterAction{Index: idx}, HealAction{})
		return
	}

	// Carrying the enemy flag: run it home before anything else.
	if c.HasFlag && !c.HasMoved {
		if dest, ok := p.retreatTile(s, c); ok {
			p.push(
				SelectCharacterAction{Index: idx},
				SelectCharacterStateAction{State: SubStateMoving},
				SelectTileAction{Tile: dest},
			)
			return
		}
	}

	// Fresh character with a clear shot: take it.
	if !c.HasMoved && !c.HasShot {
		if angle, ok := p.bestShot(s, c, enemies); ok {
			angle += p.jitter()
			p.push(
				SelectCharacterAction{Index: idx},
				SelectCharacterStateAction{State: SubStateAiming},
				AimAction{Angle: angle},
				ShootAction{},
			)
			return
		}
		// No direct line: a grenade arcs over whatever is in the way.
		if tile, ok := p.grenadeTarget(s, c, enemies); ok {
			p.push(
				SelectCharacterAction{Index: idx},
				SelectCharacterStateAction{State: SubStateThrowingGrenade},
				SelectTileAction{Tile: tile},
			)
			return
		}
	}

	if !c.HasMoved {
		if dest, ok := p.advanceTile(s, c, enemies); ok {
			p.push(
				SelectCharacterAction{Index: idx},
				SelectCharacterStateAction{State: SubStateMoving},
				SelectTileAction{Tile: dest},
			)
			return
		}
	}

	// Moved character that can still fire: look for a shot from here.
	if c.CanFire() {
		if angle, ok := p.bestShot(s, c, enemies); ok {
			angle += p.jitter()
			p.push(
				SelectCharacterAction{Index: idx},
				SelectCharacterStateAction{State: SubStateAiming},
				AimAction{Angle: angle},
				ShootAction{},
			)
			return
		}
	}

	p.push(SelectCharacterAction{Index: idx}, EndTurnAction{})
}

// planPlacement picks the first candidate spawn tile no enemy has a
// direct, unobstructed line to, falling back to the first legal tile.
func (p *AIPlanner) planPlacement(s *GameState) {
	tiles := s.LegalTiles
	if len(tiles) == 0 {
		return // state machine will advance phase; nothing to queue
	}
	choice := tiles[0]
	for _, t := range tiles {
		if p.tileExposure(s, t) == 0 {
			choice = t
			break
		}
	}
	p.push(PlaceCharacterAction{Tile: choice, Class: p.profile.spawnClass})
}

// nextCharacter returns the first selectable character of the team.
func (p *AIPlanner) nextCharacter(s *GameState) int {
	for i, c := range s.Characters {
		if c.Team == p.Team && c.Alive() && !c.TurnOver {
			return i
		}
	}
	return -1
}

func (p *AIPlanner) jitter() float64 {
	if p.profile.aimJitter == 0 {
		return 0
	}
	return (p.rng.Float64()*2 - 1) * p.profile.aimJitter
}

// scanEnemies returns the arena indices of live enemies the character may
// consider. With fog of war on (and a profile that honors it), only
// enemies in line of sight count.
func (p *AIPlanner) scanEnemies(s *GameState, c *Character) []int {
	var out []int
	from := s.Grid.TileCenter(c.Tile)
	for i, e := range s.Characters {
		if !e.Alive() || e.Team == p.Team {
			continue
		}
		if s.Config.FogOfWar && p.profile.honorFog &&
			!HasLineOfSight(s.Grid, from, s.Grid.TileCenter(e.Tile), s.Obstacles) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// tileExposure counts enemies with a direct unobstructed line to the tile.
func (p *AIPlanner) tileExposure(s *GameState, tile TileCoord) int {
	center := s.Grid.TileCenter(tile)
	n := 0
	for _, e := range s.Characters {
		if !e.Alive() || e.Team == p.Team {
			continue
		}
		if HasLineOfSight(s.Grid, s.Grid.TileCenter(e.Tile), center, s.Obstacles) {
			n++
		}
	}
	return n
}

// bestShot picks the best enemy a straight aimed shot actually reaches:
// an enemy squatting on the planner's own flag always comes first,
// otherwise lowest health, ties broken by smaller Manhattan distance.
// Returns the firing angle.
func (p *AIPlanner) bestShot(s *GameState, c *Character, enemies []int) (float64, bool) {
	ownFlagTile := s.Flags[p.Team].Tile
	origin := s.Grid.TileCenter(c.Tile)

	bestIdx := -1
	var bestAngle float64
	better := func(i, j int) bool { // i beats j
		ei, ej := s.Characters[i], s.Characters[j]
		onFlagI := ei.Tile.Equal(ownFlagTile)
		onFlagJ := ej.Tile.Equal(ownFlagTile)
		if onFlagI != onFlagJ {
			return onFlagI
		}
		if ei.Health != ej.Health {
			return ei.Health < ej.Health
		}
		return c.Tile.Manhattan(ei.Tile) < c.Tile.Manhattan(ej.Tile)
	}

	for _, i := range enemies {
		e := s.Characters[i]
		angle := s.Grid.TileCenter(e.Tile).Sub(origin).Angle()
		if !p.shotReaches(s, c, angle, i) {
			continue
		}
		if bestIdx < 0 || better(i, bestIdx) {
			bestIdx = i
			bestAngle = angle
		}
	}
	return bestAngle, bestIdx >= 0
}

// shotReaches resolves a trial shot and checks that its terminal target is
// the intended enemy. The targeting engine is the oracle here: hundreds of
// these queries can run per decision.
func (p *AIPlanner) shotReaches(s *GameState, c *Character, angle float64, enemyIdx int) bool {
	ray := NewRay(s.Grid.TileCenter(c.Tile), angle)
	path := ResolveShot(s.Grid, ray, c.Team, c.Stats.Weapon, s.Characters, s.Obstacles)
	if len(path) == 0 {
		return false
	}
	last := path[len(path)-1]
	if c.Stats.Weapon.Kind == ProjectileSplash {
		// A splash shot only needs to land on or next to the enemy.
		return last.Kind != HitBorder &&
			last.Tile.Manhattan(s.Characters[enemyIdx].Tile) <= c.Stats.Weapon.BlastRadius
	}
	return last.Kind == HitCharacter && last.CharacterIdx == enemyIdx
}

// grenadeTarget returns an enemy tile inside grenade range, if the
// character holds a ready grenade. Skips targets whose blast would catch
// the thrower.
func (p *AIPlanner) grenadeTarget(s *GameState, c *Character, enemies []int) (TileCoord, bool) {
	gi := c.AbilityIndex(AbilityGrenade)
	if gi < 0 || !c.Abilities[gi].Ready() || c.HasShot {
		return TileCoord{}, false
	}
	ab := c.Abilities[gi]
	for _, i := range enemies {
		t := s.Characters[i].Tile
		if c.Tile.Manhattan(t) > ab.MaxRange {
			continue
		}
		if c.Tile.Manhattan(t) <= ab.Grenade.BlastRadius {
			continue // would catch ourselves in the blast
		}
		if s.Obstacles.Has(s.Grid, t) {
			continue
		}
		return t, true
	}
	return TileCoord{}, false
}

// retreatTile picks the safest reachable tile for a flag carrier heading
// home: fewest enemy sightlines first, then shortest remaining distance to
// the own flag.
func (p *AIPlanner) retreatTile(s *GameState, c *Character) (TileCoord, bool) {
	home := s.Flags[c.Team].Tile
	tiles := s.movementTiles(c)
	if len(tiles) == 0 {
		return TileCoord{}, false
	}
	best := tiles[0]
	bestExp := p.tileExposure(s, best)
	bestDist := best.Manhattan(home)
	for _, t := range tiles[1:] {
		exp := p.tileExposure(s, t)
		dist := t.Manhattan(home)
		if exp < bestExp || (exp == bestExp && dist < bestDist) {
			best, bestExp, bestDist = t, exp, dist
		}
	}
	return best, true
}

// advanceTile moves toward the objective. A tile exposing exactly one
// enemy is preferred (a clean duel); otherwise minimize exposure, then
// distance to the objective.
func (p *AIPlanner) advanceTile(s *GameState, c *Character, enemies []int) (TileCoord, bool) {
	objective := p.objectiveTile(s, c)
	tiles := s.movementTiles(c)
	if len(tiles) == 0 {
		return TileCoord{}, false
	}

	bestDuel := TileCoord{}
	haveDuel := false
	bestDuelDist := 0
	for _, t := range tiles {
		if p.tileExposure(s, t) == 1 {
			d := t.Manhattan(objective)
			if !haveDuel || d < bestDuelDist {
				bestDuel, bestDuelDist, haveDuel = t, d, true
			}
		}
	}
	if haveDuel && len(enemies) > 0 {
		return bestDuel, true
	}

	best := tiles[0]
	bestExp := p.tileExposure(s, best)
	bestDist := best.Manhattan(objective)
	for _, t := range tiles[1:] {
		exp := p.tileExposure(s, t)
		dist := t.Manhattan(objective)
		if exp < bestExp || (exp == bestExp && dist < bestDist) {
			best, bestExp, bestDist = t, exp, dist
		}
	}
	// Standing still is never an advance.
	if best.Equal(c.Tile) {
		return TileCoord{}, false
	}
	return best, true
}

// objectiveTile is the enemy flag, or the own flag's current position when
// an enemy is already carrying it off.
func (p *AIPlanner) objectiveTile(s *GameState, c *Character) TileCoord {
	own := s.Flags[p.Team]
	if own.Carried() {
		return own.Tile
	}
	var target TileCoord
	found := false
	for _, f := range s.Flags {
		if f.Team == p.Team {
			continue
		}
		if !found || c.Tile.Manhattan(f.Tile) < c.Tile.Manhattan(target) {
			target = f.Tile
			found = true
		}
	}
	return target
}
