package game

import "fmt"

// Combat resolution: damage application along resolved shot paths, splash
// areas, deaths, and mid-flight retargeting. All mutation goes through the
// GameState that owns the character arena.

// resolveImpact applies the effect of a reached target. Intermediate
// ricochet targets carry no damage; only the terminal target does.
func (s *GameState) resolveImpact(f *ShotFlight, tgt *Target) {
	switch tgt.Kind {
	case HitBorder:
		s.Log.Add(s.Turn, f.shooterIdx, f.fromTeam, "shot", "lost", "left play area")
	case HitObstacle:
		if tgt.OutDir != (Vec{}) {
			s.Log.Add(s.Turn, f.shooterIdx, f.fromTeam, "shot", "ricochet",
				fmt.Sprintf("off %d,%d budget=%d", tgt.Tile.Col, tgt.Tile.Row, tgt.RicochetsLeft))
			return
		}
		if f.projectile.Kind == ProjectileSplash {
			s.applySplash(tgt.Tile, f.projectile, f.fromTeam)
			return
		}
		s.Log.Add(s.Turn, f.shooterIdx, f.fromTeam, "shot", "stopped",
			fmt.Sprintf("obstacle %d,%d", tgt.Tile.Col, tgt.Tile.Row))
	case HitCharacter:
		if f.projectile.Kind == ProjectileSplash {
			s.applySplash(tgt.Tile, f.projectile, f.fromTeam)
			return
		}
		s.damageCharacter(tgt.CharacterIdx, f.projectile.Damage, f.fromTeam)
	}
}

// applySplash damages every live character in the blast area, scaled by
// falloff per tile of Manhattan distance from the blast center. Characters
// beyond the radius are untouched. The blast ignores team: splash has no
// friendly-fire immunity.
func (s *GameState) applySplash(center TileCoord, proj ProjectileDetails, fromTeam int) {
	area := s.Grid.BlastTiles(center, proj.BlastRadius)
	inArea := make(map[int]bool, len(area))
	for _, t := range area {
		inArea[s.Grid.Index(t)] = true
	}
	s.Log.Add(s.Turn, -1, fromTeam, "shot", "splash",
		fmt.Sprintf("center %d,%d radius=%d", center.Col, center.Row, proj.BlastRadius))
	for i, c := range s.Characters {
		if !c.Alive() || !inArea[s.Grid.Index(c.Tile)] {
			continue
		}
		dmg := float64(proj.Damage)
		for k := c.Tile.Manhattan(center); k > 0; k-- {
			dmg *= proj.Falloff
		}
		s.damageCharacter(i, int(dmg), fromTeam)
	}
}

// damageCharacter applies damage, tracks stats, and handles death.
func (s *GameState) damageCharacter(idx, dmg, fromTeam int) {
	if dmg <= 0 {
		return
	}
	c := s.Characters[idx]
	if !c.Alive() {
		return
	}
	c.ApplyDamage(dmg)
	s.Stats[fromTeam].Hits++
	s.Stats[fromTeam].DamageDealt += dmg
	s.Log.Add(s.Turn, idx, c.Team, "damage", "taken",
		fmt.Sprintf("%d -> hp %d", dmg, c.Health))
	if !c.Alive() {
		s.Stats[fromTeam].Kills++
		s.handleDeath(idx)
	}
}

// handleDeath marks a character out of play. The arena entry remains (UI
// addressing stays stable); alive queries filter it from now on. Carried
// flags drop on the death tile, and any projectile still in flight
// re-resolves its remaining path without the dead character in it.
func (s *GameState) handleDeath(idx int) {
	c := s.Characters[idx]
	s.Log.Add(s.Turn, idx, c.Team, "death", "down",
		fmt.Sprintf("at %d,%d", c.Tile.Col, c.Tile.Row))

	// A character crossing several enemy flag tiles may carry more than
	// one flag; all of them drop here.
	for _, f := range s.Flags {
		if f.CarrierIdx != idx {
			continue
		}
		f.CarrierIdx = -1
		f.Tile = c.Tile
		c.HasFlag = false
		s.Log.Add(s.Turn, idx, c.Team, "flag", "dropped",
			fmt.Sprintf("team %d flag at %d,%d", f.Team, c.Tile.Col, c.Tile.Row))
	}
	if s.SelectedIdx == idx {
		s.deselect()
	}
	s.recomputeFlight(idx)
	s.checkLastTeamStanding()
}

// recomputeFlight re-resolves an in-flight projectile's remaining targets
// when an intervening character dies mid-flight. The flight continues from
// its current position along its current direction.
func (s *GameState) recomputeFlight(deadIdx int) {
	f := s.flight
	if f == nil || f.Done() {
		return
	}
	remaining := f.Remaining()
	if len(remaining) == 0 {
		return
	}
	involves := false
	for _, t := range remaining {
		if t.CharacterIdx == deadIdx {
			involves = true
			break
		}
	}
	if !involves {
		return
	}

	pos := f.Pos()
	dir := remaining[0].Impact.Sub(f.segStart).Normalize()
	if dir == (Vec{}) {
		return
	}
	proj := f.projectile
	proj.Ricochets = remaining[0].RicochetsLeft
	path := ResolveShot(s.Grid, Ray{Origin: pos, Dir: dir}, f.fromTeam, proj, s.Characters, s.Obstacles)

	f.path = path
	f.seg = 0
	f.segStart = pos
	f.dist = 0
	f.done = len(path) == 0
	s.Log.Add(s.Turn, f.shooterIdx, f.fromTeam, "shot", "retarget",
		fmt.Sprintf("%d targets remain", len(path)))
}
