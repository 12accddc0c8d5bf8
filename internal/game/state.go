package game

import "fmt"

// Phase is the top-level match phase.
type Phase int

const (
	PhasePlacement Phase = iota // teams spawn their squads
	PhaseCombat                 // alternating team turns
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// CharacterSubState is the selected character's pending-action state.
type CharacterSubState int

const (
	SubStateAwaiting CharacterSubState = iota
	SubStateMoving
	SubStateAiming
	SubStateThrowingGrenade
)

func (s CharacterSubState) String() string {
	switch s {
	case SubStateAwaiting:
		return "awaiting"
	case SubStateMoving:
		return "moving"
	case SubStateAiming:
		return "aiming"
	case SubStateThrowingGrenade:
		return "throwing-grenade"
	default:
		return "unknown"
	}
}

// GameState is the authoritative match snapshot. It owns every mutable
// collection; the targeting engine, pathfinder, and AI planner only ever
// receive read views and return fresh results. All mutation happens
// synchronously inside OnAction and Tick on the single logic thread.
type GameState struct {
	Grid          Grid
	Config        MatchConfig
	Characters    []*Character // arena: dead entries stay, identity is stable
	Obstacles     ObstacleSet
	ObstacleTiles []TileCoord
	Flags         []*Flag
	Stats         []TeamStats

	Phase       Phase
	CurrentTeam int
	Turn        int // team-turn counter, starts at 1 in combat

	SelectedIdx int // -1 when nothing is selected
	SubState    CharacterSubState
	LegalTiles  []TileCoord

	Log      *MatchLog
	Recorder *ReplayRecorder // nil unless replay recording is enabled

	placed   []int // characters placed so far, per team
	legalSet map[int]bool
	flight   *ShotFlight
	winner   int // -1 until decided
}

// NewGameState builds a match from a validated config and level data.
func NewGameState(cfg MatchConfig, level LevelData) (*GameState, error) {
	if err := cfg.Validate(level); err != nil {
		return nil, err
	}
	g := Grid{Cols: level.Cols, Rows: level.Rows}
	s := &GameState{
		Grid:          g,
		Config:        cfg,
		Obstacles:     NewObstacleSet(g, level.Obstacles),
		ObstacleTiles: level.Obstacles,
		Stats:         make([]TeamStats, cfg.Teams),
		Phase:         PhasePlacement,
		SelectedIdx:   -1,
		Log:           NewMatchLog(),
		placed:        make([]int, cfg.Teams),
		winner:        -1,
	}
	for team := 0; team < cfg.Teams; team++ {
		s.Flags = append(s.Flags, &Flag{Team: team, Tile: level.FlagTiles[team], CarrierIdx: -1})
	}
	// No characters exist yet, so each team's placement set is exactly its
	// spawn capacity. A squad that cannot fit would leave placement with no
	// legal tile to offer.
	for team := 0; team < cfg.Teams; team++ {
		if n := len(s.placementTiles(team)); n < cfg.SquadSize {
			return nil, fmt.Errorf("config: team %d spawn area has %d tiles, squad needs %d",
				team, n, cfg.SquadSize)
		}
	}
	s.setLegalTiles(s.placementTiles(0))
	return s, nil
}

// Winner returns the winning team once the match is decided.
func (s *GameState) Winner() (int, bool) { return s.winner, s.winner >= 0 }

// Selected returns the selected character, or nil.
func (s *GameState) Selected() *Character {
	if s.SelectedIdx < 0 {
		return nil
	}
	return s.Characters[s.SelectedIdx]
}

// TeamCharacters returns the live characters of one team.
func (s *GameState) TeamCharacters(team int) []*Character {
	var out []*Character
	for _, c := range s.Characters {
		if c.Team == team && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// CharacterAt returns the arena index of the live character on tile, or -1.
func (s *GameState) CharacterAt(tile TileCoord) int {
	for i, c := range s.Characters {
		if c.Alive() && c.Tile.Equal(tile) {
			return i
		}
	}
	return -1
}

// IsAnimating reports whether any presentation interpolation is in flight.
// The state machine accepts no action, and the planner is not invoked,
// while this holds.
func (s *GameState) IsAnimating() bool {
	if s.flight != nil && !s.flight.Done() {
		return true
	}
	for _, c := range s.Characters {
		if c.IsAnimating() {
			return true
		}
	}
	return false
}

// InFlight returns the active shot flight for rendering, or nil.
func (s *GameState) InFlight() *ShotFlight { return s.flight }

// IsLegalTile reports whether tile belongs to the pending legal-tile set.
func (s *GameState) IsLegalTile(tile TileCoord) bool {
	return s.legalSet[s.Grid.Index(tile)]
}

func (s *GameState) setLegalTiles(tiles []TileCoord) {
	s.LegalTiles = tiles
	s.legalSet = make(map[int]bool, len(tiles))
	for _, t := range tiles {
		s.legalSet[s.Grid.Index(t)] = true
	}
}

// OnAction validates and applies one action. Illegal requests fail fast
// with *IllegalActionError and no partial mutation. Unhandled variants
// panic: the action set is closed.
func (s *GameState) OnAction(a Action) error {
	if s.winner >= 0 {
		return illegalf("match is over")
	}
	if s.IsAnimating() {
		return illegalf("animation in flight")
	}
	switch act := a.(type) {
	case PlaceCharacterAction:
		return s.applyPlace(act)
	case SelectCharacterAction:
		return s.applySelect(act)
	case SelectCharacterStateAction:
		return s.applySelectState(act)
	case SelectTileAction:
		return s.applySelectTile(act)
	case AimAction:
		return s.applyAim(act)
	case ShootAction:
		return s.applyShoot()
	case HealAction:
		return s.applyHeal()
	case EndTurnAction:
		return s.applyEndTurn()
	default:
		panic(fmt.Sprintf("unhandled action variant %T", a))
	}
}

// --- Placement ---

// placementTiles is the legal spawn set: tiles within the configured spawn
// distance of the team flag, unoccupied, and off every flag tile.
func (s *GameState) placementTiles(team int) []TileCoord {
	flag := s.Flags[team]
	isFlagTile := func(t TileCoord) bool {
		for _, f := range s.Flags {
			if f.Tile.Equal(t) {
				return true
			}
		}
		return false
	}
	avail := func(t TileCoord) bool {
		return !s.Obstacles.Has(s.Grid, t) && s.CharacterAt(t) < 0 && !isFlagTile(t)
	}
	through := func(t TileCoord) bool { return !s.Obstacles.Has(s.Grid, t) }
	return s.Grid.BFS(flag.Tile, s.Config.MaxSpawnDistance, avail, through)
}

func (s *GameState) applyPlace(a PlaceCharacterAction) error {
	if s.Phase != PhasePlacement {
		return illegalf("placement is over")
	}
	if !s.IsLegalTile(a.Tile) {
		return illegalf("tile %d,%d is not a legal spawn", a.Tile.Col, a.Tile.Row)
	}
	c := NewCharacter(s.CurrentTeam, a.Tile, a.Class)
	s.Characters = append(s.Characters, c)
	s.placed[s.CurrentTeam]++
	s.Log.Add(s.Turn, len(s.Characters)-1, s.CurrentTeam, "placement", "spawn",
		fmt.Sprintf("%s at %d,%d", a.Class, a.Tile.Col, a.Tile.Row))

	// Alternate teams per placement; combat starts once every squad is full.
	next := s.nextPlacingTeam()
	if next < 0 {
		s.beginCombat()
		return nil
	}
	s.CurrentTeam = next
	s.setLegalTiles(s.placementTiles(next))
	return nil
}

func (s *GameState) nextPlacingTeam() int {
	for off := 1; off <= s.Config.Teams; off++ {
		team := (s.CurrentTeam + off) % s.Config.Teams
		if s.placed[team] < s.Config.SquadSize {
			return team
		}
	}
	return -1
}

func (s *GameState) beginCombat() {
	s.Phase = PhaseCombat
	s.CurrentTeam = 0
	s.Turn = 1
	s.SelectedIdx = -1
	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
	s.Log.Add(s.Turn, -1, -1, "phase", "combat", "placement complete")
	s.snapshot()
}

// --- Selection ---

func (s *GameState) applySelect(a SelectCharacterAction) error {
	if s.Phase != PhaseCombat {
		return illegalf("cannot select during placement")
	}
	if a.Index < 0 || a.Index >= len(s.Characters) {
		return illegalf("no character #%d", a.Index)
	}
	c := s.Characters[a.Index]
	if !c.Alive() {
		return illegalf("character #%d is dead", a.Index)
	}
	if c.Team != s.CurrentTeam {
		return illegalf("character #%d is not on team %d", a.Index, s.CurrentTeam)
	}
	if c.TurnOver {
		return illegalf("character #%d has finished its turn", a.Index)
	}
	s.SelectedIdx = a.Index
	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
	return nil
}

func (s *GameState) applySelectState(a SelectCharacterStateAction) error {
	c := s.Selected()
	if c == nil {
		return illegalf("no character selected")
	}
	switch a.State {
	case SubStateAwaiting:
		s.SubState = SubStateAwaiting
		s.setLegalTiles(nil)
		return nil
	case SubStateMoving:
		if c.HasMoved {
			return illegalf("character has already moved")
		}
		tiles := s.movementTiles(c)
		if len(tiles) == 0 {
			return illegalf("no reachable tiles")
		}
		s.SubState = SubStateMoving
		s.setLegalTiles(tiles)
		return nil
	case SubStateAiming:
		if !c.CanFire() {
			return illegalf("character cannot fire")
		}
		s.SubState = SubStateAiming
		s.setLegalTiles(nil)
		return nil
	case SubStateThrowingGrenade:
		idx := c.AbilityIndex(AbilityGrenade)
		if idx < 0 {
			return illegalf("character has no grenade")
		}
		if !c.Abilities[idx].Ready() {
			return illegalf("grenade is not ready")
		}
		if c.HasShot {
			return illegalf("character has already attacked")
		}
		s.SubState = SubStateThrowingGrenade
		s.setLegalTiles(s.grenadeTiles(c, c.Abilities[idx]))
		return nil
	default:
		return illegalf("unknown sub-state")
	}
}

// movementTiles is the legal destination set for one character: within the
// per-turn budget, passing through allies but never enemies or obstacles,
// stopping only on empty tiles. The own-flag tile is a legal stop only for
// a character carrying the enemy flag (that is the winning move).
func (s *GameState) movementTiles(c *Character) []TileCoord {
	ownFlag := s.Flags[c.Team]
	avail := func(t TileCoord) bool {
		if s.Obstacles.Has(s.Grid, t) || s.CharacterAt(t) >= 0 {
			return false
		}
		if t.Equal(ownFlag.Tile) && !c.HasFlag {
			return false
		}
		return true
	}
	through := func(t TileCoord) bool {
		if s.Obstacles.Has(s.Grid, t) {
			return false
		}
		if i := s.CharacterAt(t); i >= 0 && s.Characters[i].Team != c.Team {
			return false
		}
		return true
	}
	return s.Grid.BFS(c.Tile, c.Stats.MovesPerTurn, avail, through)
}

// grenadeTiles is the legal grenade target set: throws arc over obstacles
// and characters but cannot land on an obstacle.
func (s *GameState) grenadeTiles(c *Character, ab Ability) []TileCoord {
	avail := func(t TileCoord) bool { return !s.Obstacles.Has(s.Grid, t) }
	through := func(TileCoord) bool { return true }
	return s.Grid.BFS(c.Tile, ab.MaxRange, avail, through)
}

// --- Tile commit (move / grenade) ---

func (s *GameState) applySelectTile(a SelectTileAction) error {
	c := s.Selected()
	if c == nil {
		return illegalf("no character selected")
	}
	switch s.SubState {
	case SubStateMoving:
		if !s.IsLegalTile(a.Tile) {
			return illegalf("tile %d,%d is out of movement range", a.Tile.Col, a.Tile.Row)
		}
		s.moveCharacter(s.SelectedIdx, a.Tile)
		return nil
	case SubStateThrowingGrenade:
		if !s.IsLegalTile(a.Tile) {
			return illegalf("tile %d,%d is out of throw range", a.Tile.Col, a.Tile.Row)
		}
		s.throwGrenade(s.SelectedIdx, a.Tile)
		return nil
	default:
		return illegalf("no pending tile action")
	}
}

func (s *GameState) moveCharacter(idx int, dest TileCoord) {
	c := s.Characters[idx]
	through := func(t TileCoord) bool {
		if s.Obstacles.Has(s.Grid, t) {
			return false
		}
		if i := s.CharacterAt(t); i >= 0 && s.Characters[i].Team != c.Team {
			return false
		}
		return true
	}
	path := s.Grid.PathTo(c.Tile, dest, through)

	waypoints := make([]Vec, 0, len(path)+1)
	waypoints = append(waypoints, s.Grid.TileCenter(c.Tile))
	for _, t := range path {
		waypoints = append(waypoints, s.Grid.TileCenter(t))
	}

	c.Tile = dest // authoritative position updates immediately
	c.HasMoved = true
	c.anim.Start(waypoints, moveAnimSpeed)
	for _, f := range s.Flags {
		if f.CarrierIdx == idx {
			f.Tile = dest // carried flags travel with the carrier
		}
	}
	s.Log.Add(s.Turn, idx, c.Team, "move", "to", fmt.Sprintf("%d,%d", dest.Col, dest.Row))

	s.pickUpFlag(idx)
	s.checkFlagWin(idx)
	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
	s.maybeFinishCharacter(idx)
}

func (s *GameState) throwGrenade(idx int, target TileCoord) {
	c := s.Characters[idx]
	abIdx := c.AbilityIndex(AbilityGrenade)
	ab := &c.Abilities[abIdx]
	ab.UsesLeft--
	ab.CooldownLeft = ab.Cooldown
	c.HasShot = true

	s.Log.Add(s.Turn, idx, c.Team, "ability", "grenade", fmt.Sprintf("at %d,%d", target.Col, target.Row))
	s.Stats[c.Team].ShotsFired++
	s.applySplash(target, ab.Grenade, c.Team)

	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
	s.maybeFinishCharacter(idx)
}

// --- Aim / shoot / heal ---

func (s *GameState) applyAim(a AimAction) error {
	c := s.Selected()
	if c == nil {
		return illegalf("no character selected")
	}
	if s.SubState != SubStateAiming {
		return illegalf("character is not aiming")
	}
	c.AimAngle = a.Angle
	return nil
}

func (s *GameState) applyShoot() error {
	c := s.Selected()
	if c == nil {
		return illegalf("no character selected")
	}
	if s.SubState != SubStateAiming {
		return illegalf("character is not aiming")
	}
	if !c.CanFire() {
		return illegalf("character cannot fire")
	}
	origin := NewRay(s.Grid.TileCenter(c.Tile), c.AimAngle)
	path := ResolveShot(s.Grid, origin, c.Team, c.Stats.Weapon, s.Characters, s.Obstacles)
	c.HasShot = true
	s.Stats[c.Team].ShotsFired++
	s.Log.Add(s.Turn, s.SelectedIdx, c.Team, "shot", "fired",
		fmt.Sprintf("angle=%.3f targets=%d", c.AimAngle, len(path)))

	s.flight = NewShotFlight(origin.Origin, path, c.Stats.Weapon, s.SelectedIdx, c.Team)
	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
	return nil
}

func (s *GameState) applyHeal() error {
	c := s.Selected()
	if c == nil {
		return illegalf("no character selected")
	}
	idx := c.AbilityIndex(AbilityHeal)
	if idx < 0 {
		return illegalf("character has no heal")
	}
	ab := &c.Abilities[idx]
	if !ab.Ready() {
		return illegalf("heal is not ready")
	}
	ab.UsesLeft--
	ab.CooldownLeft = ab.Cooldown
	c.ApplyHeal(ab.HealAmount)
	s.Log.Add(s.Turn, s.SelectedIdx, c.Team, "ability", "heal",
		fmt.Sprintf("+%d -> %d", ab.HealAmount, c.Health))
	s.maybeFinishCharacter(s.SelectedIdx)
	return nil
}

// --- Turn flow ---

func (s *GameState) applyEndTurn() error {
	if s.Phase != PhaseCombat {
		return illegalf("no turn to end during placement")
	}
	if s.SelectedIdx >= 0 {
		c := s.Characters[s.SelectedIdx]
		c.TurnOver = true
		s.Log.Add(s.Turn, s.SelectedIdx, c.Team, "turn", "character-done", "")
		s.deselect()
	} else {
		for _, c := range s.Characters {
			if c.Team == s.CurrentTeam && c.Alive() {
				c.TurnOver = true
			}
		}
		s.Log.Add(s.Turn, -1, s.CurrentTeam, "turn", "team-done", "")
	}
	s.checkTeamDone()
	return nil
}

func (s *GameState) deselect() {
	s.SelectedIdx = -1
	s.SubState = SubStateAwaiting
	s.setLegalTiles(nil)
}

// maybeFinishCharacter auto-completes a character that has moved, can no
// longer fire, and holds no free ability.
func (s *GameState) maybeFinishCharacter(idx int) {
	c := s.Characters[idx]
	if !c.Alive() {
		return
	}
	if c.HasMoved && !c.CanFire() && !c.FreeAbilityReady() {
		c.TurnOver = true
		if s.SelectedIdx == idx {
			s.deselect()
		}
		s.Log.Add(s.Turn, idx, c.Team, "turn", "auto-done", "")
		s.checkTeamDone()
	}
}

// checkTeamDone advances the active team once every live member is done.
func (s *GameState) checkTeamDone() {
	if s.winner >= 0 {
		return
	}
	for _, c := range s.Characters {
		if c.Team == s.CurrentTeam && c.Alive() && !c.TurnOver {
			return
		}
	}
	s.advanceTeam()
}

// advanceTeam cycles the active team modulo team count, skipping wiped-out
// teams, and resets the incoming team's per-turn flags.
func (s *GameState) advanceTeam() {
	s.deselect()
	for off := 1; off <= s.Config.Teams; off++ {
		team := (s.CurrentTeam + off) % s.Config.Teams
		if len(s.TeamCharacters(team)) == 0 {
			continue
		}
		s.CurrentTeam = team
		s.Turn++
		for _, c := range s.Characters {
			if c.Team == team && c.Alive() {
				c.ResetTurn()
			}
		}
		s.Log.Add(s.Turn, -1, team, "turn", "begin", "")
		s.snapshot()
		return
	}
}

// --- Flags & win conditions ---

// pickUpFlag attaches a grounded enemy flag under the character.
func (s *GameState) pickUpFlag(idx int) {
	c := s.Characters[idx]
	for _, f := range s.Flags {
		if f.Team == c.Team || f.Carried() {
			continue
		}
		if f.Tile.Equal(c.Tile) {
			f.CarrierIdx = idx
			c.HasFlag = true
			s.Log.Add(s.Turn, idx, c.Team, "flag", "pickup", fmt.Sprintf("team %d flag", f.Team))
		}
	}
}

// checkFlagWin ends the match when a carrier reaches their own flag tile.
func (s *GameState) checkFlagWin(idx int) {
	c := s.Characters[idx]
	if c.HasFlag && c.Tile.Equal(s.Flags[c.Team].Tile) {
		s.setWinner(c.Team, "flag captured")
	}
}

// checkLastTeamStanding ends the match when one team remains.
func (s *GameState) checkLastTeamStanding() {
	alive := -1
	for team := 0; team < s.Config.Teams; team++ {
		if len(s.TeamCharacters(team)) > 0 {
			if alive >= 0 {
				return // two or more teams still standing
			}
			alive = team
		}
	}
	if alive >= 0 {
		s.setWinner(alive, "last team standing")
	}
}

func (s *GameState) setWinner(team int, how string) {
	if s.winner >= 0 {
		return
	}
	s.winner = team
	s.Log.Add(s.Turn, -1, team, "match", "winner", how)
	s.snapshot()
}

func (s *GameState) snapshot() {
	if s.Recorder != nil {
		s.Recorder.Snapshot(s)
	}
}

// --- Frame tick ---

// Tick advances presentation interpolation by one frame and resolves shot
// impacts as the projectile reaches them. Called once per host frame.
func (s *GameState) Tick() {
	for _, c := range s.Characters {
		c.anim.Advance()
	}
	if s.flight == nil {
		return
	}
	budget := shotAnimSpeed
	for {
		tgt, rest := s.flight.Advance(budget)
		if tgt == nil {
			break
		}
		s.resolveImpact(s.flight, tgt)
		budget = rest
	}
	if s.flight.Done() {
		idx := s.flight.shooterIdx
		s.flight = nil
		// The shot is spent only once it resolves; a moved shooter with
		// nothing left may be done now.
		s.maybeFinishCharacter(idx)
	}
}
