package game

import "testing"

func TestPlacementFlow(t *testing.T) {
	cfg := DefaultConfig()
	level := DefaultLevel()
	s, err := NewGameState(cfg, level)
	if err != nil {
		t.Fatalf("new game state: %v", err)
	}

	if s.Phase != PhasePlacement || s.CurrentTeam != 0 {
		t.Fatalf("start = %s team %d, want placement team 0", s.Phase, s.CurrentTeam)
	}
	if len(s.LegalTiles) == 0 {
		t.Fatal("no legal spawn tiles for team 0")
	}
	for _, tile := range s.LegalTiles {
		if d := tile.Manhattan(level.FlagTiles[0]); d > cfg.MaxSpawnDistance {
			t.Fatalf("spawn tile %+v is %d tiles from the flag, max %d", tile, d, cfg.MaxSpawnDistance)
		}
		if s.Obstacles.Has(s.Grid, tile) {
			t.Fatalf("spawn tile %+v is an obstacle", tile)
		}
		if tile.Equal(level.FlagTiles[0]) || tile.Equal(level.FlagTiles[1]) {
			t.Fatalf("spawn tile %+v is a flag tile", tile)
		}
	}

	// Teams alternate placements until both squads are full.
	for i := 0; i < cfg.Teams*cfg.SquadSize; i++ {
		wantTeam := i % cfg.Teams
		if s.CurrentTeam != wantTeam {
			t.Fatalf("placement %d: team = %d, want %d", i, s.CurrentTeam, wantTeam)
		}
		mustAction(t, s, PlaceCharacterAction{Tile: s.LegalTiles[0], Class: ClassSoldier})
	}

	if s.Phase != PhaseCombat || s.Turn != 1 || s.CurrentTeam != 0 {
		t.Fatalf("after placement: %s turn %d team %d, want combat turn 1 team 0", s.Phase, s.Turn, s.CurrentTeam)
	}
	if len(s.Characters) != cfg.Teams*cfg.SquadSize {
		t.Fatalf("characters = %d, want %d", len(s.Characters), cfg.Teams*cfg.SquadSize)
	}
}

func TestPlacementRejectsIllegalTile(t *testing.T) {
	s, err := NewGameState(DefaultConfig(), DefaultLevel())
	if err != nil {
		t.Fatalf("new game state: %v", err)
	}
	wantIllegal(t, s.OnAction(PlaceCharacterAction{Tile: T(13, 9), Class: ClassScout}))
	if len(s.Characters) != 0 {
		t.Fatal("rejected placement mutated the arena")
	}
	// Combat actions are meaningless during placement.
	wantIllegal(t, s.OnAction(SelectCharacterAction{Index: 0}))
	wantIllegal(t, s.OnAction(EndTurnAction{}))
}

func TestMovementBudget(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State
	c := s.Characters[0]

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	for _, tile := range s.LegalTiles {
		if d := tile.Manhattan(T(0, 0)); d > c.Stats.MovesPerTurn {
			t.Fatalf("legal tile %+v is %d steps away, budget %d", tile, d, c.Stats.MovesPerTurn)
		}
	}

	// Five steps on a four-step budget: rejected, nothing changes.
	wantIllegal(t, s.OnAction(SelectTileAction{Tile: T(3, 2)}))
	if c.HasMoved || !c.Tile.Equal(T(0, 0)) {
		t.Fatal("rejected move mutated the character")
	}
	if s.SubState != SubStateMoving {
		t.Fatalf("sub-state = %s after rejection, want moving", s.SubState)
	}

	// Exactly the budget works, and the authoritative position updates
	// immediately even though the walk animation is still playing.
	mustAction(t, s, SelectTileAction{Tile: T(2, 2)})
	if !c.HasMoved || !c.Tile.Equal(T(2, 2)) {
		t.Fatalf("move not applied: hasMoved=%v tile=%+v", c.HasMoved, c.Tile)
	}
	if !s.IsAnimating() {
		t.Fatal("expected a movement animation in flight")
	}
	wantIllegal(t, s.OnAction(EndTurnAction{}))

	m.RunUntilIdle()
	if c.TurnOver {
		t.Fatal("soldier can still fire after moving; turn must not auto-complete")
	}
}

func TestSelectValidation(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(0, ClassSoldier, 1, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State

	wantIllegal(t, s.OnAction(SelectCharacterAction{Index: 2})) // enemy team
	wantIllegal(t, s.OnAction(SelectCharacterAction{Index: 7})) // out of range

	s.Characters[0].Health = 0
	wantIllegal(t, s.OnAction(SelectCharacterAction{Index: 0})) // dead

	s.Characters[1].TurnOver = true
	wantIllegal(t, s.OnAction(SelectCharacterAction{Index: 1})) // finished
}

func TestAutoTurnOverAfterOptionsExhaust(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassDemolition, 0, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State
	c := s.Characters[0]

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	mustAction(t, s, SelectTileAction{Tile: T(1, 0)})
	m.RunUntilIdle()

	// Demolition cannot fire after moving, but its free heal is still
	// unspent, so the turn stays open.
	if c.TurnOver {
		t.Fatal("turn completed while a free ability was still available")
	}
	mustAction(t, s, HealAction{})

	if !c.TurnOver {
		t.Fatal("turn should auto-complete once no options remain")
	}
	if s.CurrentTeam != 1 {
		t.Fatalf("current team = %d, want 1 after team 0 finished", s.CurrentTeam)
	}
}

func TestTurnCycleResetsFlags(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State
	c := s.Characters[0]

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateAiming})
	mustAction(t, s, AimAction{Angle: 1.5708}) // straight down, into the border
	mustAction(t, s, ShootAction{})
	m.RunUntilIdle()
	if !c.HasShot {
		t.Fatal("shooter not marked as having shot")
	}

	mustAction(t, s, EndTurnAction{}) // finishes the selected character
	if s.CurrentTeam != 1 || s.Turn != 2 {
		t.Fatalf("turn = %d team %d, want turn 2 team 1", s.Turn, s.CurrentTeam)
	}
	mustAction(t, s, EndTurnAction{}) // nothing selected: whole team done
	if s.CurrentTeam != 0 || s.Turn != 3 {
		t.Fatalf("turn = %d team %d, want turn 3 team 0", s.Turn, s.CurrentTeam)
	}

	if c.HasShot || c.HasMoved || c.TurnOver {
		t.Fatalf("per-turn flags not reset: %+v", c)
	}
}

func TestGrenadeThrow(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(1, ClassSoldier, 2, 0),
	)
	s := m.State
	c := s.Characters[0]

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateThrowingGrenade})
	mustAction(t, s, SelectTileAction{Tile: T(2, 0)})

	if got := s.Characters[1].Health; got != 4 {
		t.Fatalf("enemy hp = %d, want 4 after a 6-damage grenade", got)
	}
	if !c.HasShot {
		t.Fatal("grenade throw must consume the attack")
	}
	gi := c.AbilityIndex(AbilityGrenade)
	if c.Abilities[gi].UsesLeft != 0 {
		t.Fatalf("grenade uses left = %d, want 0", c.Abilities[gi].UsesLeft)
	}
	// Spent: the sub-state is no longer enterable.
	wantIllegal(t, s.OnAction(SelectCharacterStateAction{State: SubStateThrowingGrenade}))
}

func TestHealAbility(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassScout, 0, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State
	c := s.Characters[0]
	c.Health = 4

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, HealAction{})
	if c.Health != 7 {
		t.Fatalf("hp = %d, want 7 after +3 heal", c.Health)
	}

	hi := c.AbilityIndex(AbilityHeal)
	if c.Abilities[hi].CooldownLeft != 2 {
		t.Fatalf("cooldown = %d, want 2", c.Abilities[hi].CooldownLeft)
	}
	wantIllegal(t, s.OnAction(HealAction{})) // still cooling down
}

func TestFlagCaptureWinsMatch(t *testing.T) {
	level := LevelData{
		Cols:      8,
		Rows:      3,
		FlagTiles: []TileCoord{T(0, 1), T(6, 1)},
	}
	m := mustMatch(t,
		WithLevel(level),
		WithCharacter(0, ClassScout, 5, 1),
		WithCharacter(1, ClassSoldier, 0, 0),
	)
	s := m.State

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	mustAction(t, s, SelectTileAction{Tile: T(6, 1)})
	m.RunUntilIdle()
	if !s.Characters[0].HasFlag {
		t.Fatal("runner did not pick up the enemy flag")
	}

	mustAction(t, s, EndTurnAction{}) // runner done
	mustAction(t, s, EndTurnAction{}) // enemy team passes
	m.RunUntilIdle()

	// Six tiles back to the home flag, legal only because the runner
	// carries the enemy flag.
	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	mustAction(t, s, SelectTileAction{Tile: T(0, 1)})
	m.RunUntilIdle()

	if w, ok := s.Winner(); !ok || w != 0 {
		t.Fatalf("winner = %d/%v, want team 0 by capture", w, ok)
	}
	if s.Flags[1].Tile != (T(0, 1)) {
		t.Fatalf("carried flag at %+v, want the capture tile 0,1", s.Flags[1].Tile)
	}
	wantIllegal(t, s.OnAction(EndTurnAction{})) // match is over
}

func TestAutoTurnOverAfterMoveAndShoot(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(1, ClassSoldier, 9, 0),
	)
	s := m.State
	c := s.Characters[0]

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	mustAction(t, s, SelectTileAction{Tile: T(1, 0)})
	m.RunUntilIdle()
	if c.TurnOver {
		t.Fatal("turn completed with the shot still available")
	}

	mustAction(t, s, SelectCharacterStateAction{State: SubStateAiming})
	mustAction(t, s, AimAction{Angle: 0})
	mustAction(t, s, ShootAction{})
	m.RunUntilIdle()

	// Moved, shot resolved, no free ability left: nothing remains for this
	// character, so the turn completes without an explicit EndTurn.
	if !c.HasMoved || !c.HasShot {
		t.Fatalf("flags = moved %v shot %v, want both set", c.HasMoved, c.HasShot)
	}
	if !c.TurnOver {
		t.Fatal("moved and fired character with no free ability stayed selectable")
	}
	if s.SelectedIdx != -1 {
		t.Fatalf("selected = %d, want deselected", s.SelectedIdx)
	}
	if s.CurrentTeam != 1 {
		t.Fatalf("current team = %d, want 1 after team 0 exhausted its options", s.CurrentTeam)
	}
}

func TestSpawnAreaMustFitSquad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SquadSize = 5
	cfg.MaxSpawnDistance = 1
	level := LevelData{
		Cols:      6,
		Rows:      6,
		FlagTiles: []TileCoord{T(0, 0), T(5, 5)},
	}
	// Two spawn tiles around a corner flag cannot hold a squad of five.
	if _, err := NewGameState(cfg, level); err == nil {
		t.Fatal("squad larger than the spawn area accepted")
	}
}

func TestOwnFlagTileBlockedWithoutCarry(t *testing.T) {
	level := LevelData{
		Cols:      8,
		Rows:      3,
		FlagTiles: []TileCoord{T(0, 1), T(6, 1)},
	}
	m := mustMatch(t,
		WithLevel(level),
		WithCharacter(0, ClassScout, 1, 1),
		WithCharacter(1, ClassSoldier, 7, 0),
	)
	s := m.State

	mustAction(t, s, SelectCharacterAction{Index: 0})
	mustAction(t, s, SelectCharacterStateAction{State: SubStateMoving})
	wantIllegal(t, s.OnAction(SelectTileAction{Tile: T(0, 1)}))
}
