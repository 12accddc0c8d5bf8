package game

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// borderWidth is the pixel gap between the window edge and the grid.
const borderWidth = 24

// hudHeight is the pixel strip below the grid reserved for HUD text.
const hudHeight = 72

// Game is the Ebiten wrapper: it translates raw pointer clicks and key
// presses into Actions and submits them to the state machine, which may
// reject them. It never mutates game state directly.
type Game struct {
	match *Match

	placeClass CharacterClass // class used for the next human placement
	lastReject string         // last rejected action, shown on the HUD

	prevMouse bool
	prevKeys  map[ebiten.Key]bool
}

// New creates the default skirmish: human team 0 against an AI team 1.
func New() *Game {
	g, err := NewWithConfig(DefaultConfig(), DefaultLevel())
	if err != nil {
		log.Fatal(err)
	}
	return g
}

// NewWithConfig creates a frontend game for the given setup. Every team
// except team 0 is AI-driven at the configured difficulty.
func NewWithConfig(cfg MatchConfig, level LevelData) (*Game, error) {
	diff, err := ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return nil, err
	}
	opts := []MatchOption{WithConfig(cfg), WithLevel(level)}
	for team := 1; team < cfg.Teams; team++ {
		opts = append(opts, WithAI(team, diff))
	}
	m, err := NewMatch(opts...)
	if err != nil {
		return nil, err
	}
	return &Game{
		match:      m,
		placeClass: ClassSoldier,
		prevKeys:   make(map[ebiten.Key]bool),
	}, nil
}

// Update runs one frame. AI turns run through the harness step; human
// turns poll input. The state machine accepts nothing mid-animation.
func (g *Game) Update() error {
	s := g.match.State
	if _, ok := g.match.Planners[s.CurrentTeam]; ok {
		g.match.Step()
		return nil
	}
	s.Tick()
	if !s.IsAnimating() {
		g.handleInput()
	}
	return nil
}

// Layout implements ebiten.Game.
func (g *Game) Layout(int, int) (int, int) {
	grid := g.match.State.Grid
	return int(grid.Width()) + 2*borderWidth, int(grid.Height()) + 2*borderWidth + hudHeight
}

func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) mouseClicked() (int, int, bool) {
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	was := g.prevMouse
	g.prevMouse = down
	if down && !was {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// submit routes an action into the state machine and keeps the rejection
// text for the HUD.
func (g *Game) submit(a Action) {
	if err := g.match.State.OnAction(a); err != nil {
		g.lastReject = err.Error()
		return
	}
	g.lastReject = ""
}

func (g *Game) handleInput() {
	s := g.match.State

	switch {
	case g.keyPressed(ebiten.Key1):
		g.placeClass = ClassScout
	case g.keyPressed(ebiten.Key2):
		g.placeClass = ClassSoldier
	case g.keyPressed(ebiten.Key3):
		g.placeClass = ClassDemolition
	case g.keyPressed(ebiten.KeyM):
		g.submit(SelectCharacterStateAction{State: SubStateMoving})
	case g.keyPressed(ebiten.KeyA):
		g.submit(SelectCharacterStateAction{State: SubStateAiming})
	case g.keyPressed(ebiten.KeyG):
		g.submit(SelectCharacterStateAction{State: SubStateThrowingGrenade})
	case g.keyPressed(ebiten.KeyH):
		g.submit(HealAction{})
	case g.keyPressed(ebiten.KeySpace):
		g.submit(ShootAction{})
	case g.keyPressed(ebiten.KeyE):
		g.submit(EndTurnAction{})
	case g.keyPressed(ebiten.KeyR):
		if err := CopyReportToClipboard(s); err != nil {
			g.lastReject = "clipboard: " + err.Error()
		}
	}

	// Continuous aim: while aiming, the cursor drives the firing angle.
	if s.SubState == SubStateAiming && s.Selected() != nil {
		mx, my := ebiten.CursorPosition()
		origin := s.Grid.TileCenter(s.Selected().Tile)
		cursor := Vec{X: float64(mx - borderWidth), Y: float64(my - borderWidth)}
		if d := cursor.Sub(origin); d.Len() > geomEps {
			g.submit(AimAction{Angle: math.Atan2(d.Y, d.X)})
		}
	}

	mx, my, clicked := g.mouseClicked()
	if !clicked {
		return
	}
	p := Vec{X: float64(mx - borderWidth), Y: float64(my - borderWidth)}
	if !s.Grid.Contains(p) {
		return
	}
	tile := s.Grid.TileAt(p)

	switch {
	case s.Phase == PhasePlacement:
		g.submit(PlaceCharacterAction{Tile: tile, Class: g.placeClass})
	case s.SubState == SubStateMoving || s.SubState == SubStateThrowingGrenade:
		g.submit(SelectTileAction{Tile: tile})
	default:
		if idx := s.CharacterAt(tile); idx >= 0 {
			g.submit(SelectCharacterAction{Index: idx})
		}
	}
}
