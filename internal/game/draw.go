package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var teamColors = []color.RGBA{
	{R: 220, G: 60, B: 40, A: 255},  // team 0: red
	{R: 40, G: 110, B: 220, A: 255}, // team 1: blue
	{R: 60, G: 180, B: 80, A: 255},  // team 2: green
	{R: 200, G: 170, B: 40, A: 255}, // team 3: gold
}

func teamColor(team int) color.RGBA {
	if team >= 0 && team < len(teamColors) {
		return teamColors[team]
	}
	return color.RGBA{R: 160, G: 160, B: 160, A: 255}
}

// Draw renders the read-only state snapshot: grid, obstacles, legal tiles,
// flags, characters, the live shot, the aim preview, and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 20, B: 24, A: 255})
	s := g.match.State
	ox, oy := float32(borderWidth), float32(borderWidth)

	g.drawGrid(screen, ox, oy)
	g.drawLegalTiles(screen, ox, oy)
	g.drawObstacles(screen, ox, oy)
	g.drawFlags(screen, ox, oy)
	g.drawAimPreview(screen, ox, oy)
	g.drawCharacters(screen, ox, oy)
	g.drawFlight(screen, ox, oy)
	g.drawHUD(screen, s)
}

func (g *Game) drawGrid(screen *ebiten.Image, ox, oy float32) {
	grid := g.match.State.Grid
	w := float32(grid.Width())
	h := float32(grid.Height())
	line := color.RGBA{R: 48, G: 52, B: 58, A: 255}
	for c := 0; c <= grid.Cols; c++ {
		x := ox + float32(c)*TileSize
		vector.StrokeLine(screen, x, oy, x, oy+h, 1, line, false)
	}
	for r := 0; r <= grid.Rows; r++ {
		y := oy + float32(r)*TileSize
		vector.StrokeLine(screen, ox, y, ox+w, y, 1, line, false)
	}
}

func (g *Game) drawLegalTiles(screen *ebiten.Image, ox, oy float32) {
	s := g.match.State
	fill := color.RGBA{R: 90, G: 140, B: 90, A: 90}
	if s.SubState == SubStateThrowingGrenade {
		fill = color.RGBA{R: 170, G: 120, B: 40, A: 90}
	}
	for _, t := range s.LegalTiles {
		vector.DrawFilledRect(screen,
			ox+float32(t.Col)*TileSize, oy+float32(t.Row)*TileSize,
			TileSize, TileSize, fill, false)
	}
}

func (g *Game) drawObstacles(screen *ebiten.Image, ox, oy float32) {
	for _, t := range g.match.State.ObstacleTiles {
		vector.DrawFilledRect(screen,
			ox+float32(t.Col)*TileSize, oy+float32(t.Row)*TileSize,
			TileSize, TileSize, color.RGBA{R: 82, G: 86, B: 94, A: 255}, false)
	}
}

func (g *Game) drawFlags(screen *ebiten.Image, ox, oy float32) {
	for _, f := range g.match.State.Flags {
		c := teamColor(f.Team)
		x := ox + float32(f.Tile.Col)*TileSize + TileSize/2
		y := oy + float32(f.Tile.Row)*TileSize + TileSize/2
		vector.StrokeLine(screen, x, y-12, x, y+12, 2, c, false)
		vector.DrawFilledRect(screen, x, y-12, 10, 8, c, false)
		if f.Carried() {
			vector.StrokeCircle(screen, x, y, 14, 1,
				color.RGBA{R: 255, G: 255, B: 255, A: 140}, false)
		}
	}
}

func (g *Game) drawCharacters(screen *ebiten.Image, ox, oy float32) {
	s := g.match.State
	for i, c := range s.Characters {
		if !c.Alive() {
			// Grey cross where they fell.
			grey := color.RGBA{R: 100, G: 100, B: 100, A: 180}
			p := s.Grid.TileCenter(c.Tile)
			x, y := ox+float32(p.X), oy+float32(p.Y)
			vector.StrokeLine(screen, x-5, y-5, x+5, y+5, 1, grey, false)
			vector.StrokeLine(screen, x+5, y-5, x-5, y+5, 1, grey, false)
			continue
		}
		p := c.Center(s.Grid)
		x, y := ox+float32(p.X), oy+float32(p.Y)
		col := teamColor(c.Team)
		if c.TurnOver {
			col.A = 120
		}
		vector.DrawFilledCircle(screen, x, y, 11, col, true)
		if i == s.SelectedIdx {
			vector.StrokeCircle(screen, x, y, 14, 1.5,
				color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
		}
		if c.HasFlag {
			vector.StrokeCircle(screen, x, y, 16, 1,
				color.RGBA{R: 255, G: 220, B: 80, A: 200}, true)
		}

		// Health bar above the head.
		frac := float32(c.Health) / float32(c.Stats.MaxHealth)
		vector.DrawFilledRect(screen, x-12, y-19, 24, 3,
			color.RGBA{R: 40, G: 40, B: 40, A: 200}, false)
		vector.DrawFilledRect(screen, x-12, y-19, 24*frac, 3,
			color.RGBA{R: 90, G: 200, B: 90, A: 220}, false)
	}
}

// drawAimPreview traces the selected character's current shot path,
// ricochets included, while aiming.
func (g *Game) drawAimPreview(screen *ebiten.Image, ox, oy float32) {
	s := g.match.State
	c := s.Selected()
	if c == nil || s.SubState != SubStateAiming {
		return
	}
	origin := NewRay(s.Grid.TileCenter(c.Tile), c.AimAngle)
	path := ResolveShot(s.Grid, origin, c.Team, c.Stats.Weapon, s.Characters, s.Obstacles)
	from := origin.Origin
	col := color.RGBA{R: 255, G: 230, B: 120, A: 150}
	for _, tgt := range path {
		vector.StrokeLine(screen,
			ox+float32(from.X), oy+float32(from.Y),
			ox+float32(tgt.Impact.X), oy+float32(tgt.Impact.Y),
			1, col, true)
		from = tgt.Impact
	}
}

func (g *Game) drawFlight(screen *ebiten.Image, ox, oy float32) {
	f := g.match.State.InFlight()
	if f == nil || f.Done() {
		return
	}
	p := f.Pos()
	vector.DrawFilledCircle(screen, ox+float32(p.X), oy+float32(p.Y), 3,
		color.RGBA{R: 255, G: 240, B: 180, A: 255}, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, s *GameState) {
	face := basicfont.Face7x13
	y := int(s.Grid.Height()) + 2*borderWidth + 16
	white := color.RGBA{R: 230, G: 230, B: 230, A: 255}

	status := fmt.Sprintf("phase: %s  team: %d  sub-state: %s", s.Phase, s.CurrentTeam, s.SubState)
	if w, ok := s.Winner(); ok {
		status = fmt.Sprintf("match over: team %d wins", w)
	}
	text.Draw(screen, status, face, borderWidth, y, white)

	help := "click: place/select/commit  1-3: class  M move  A aim  G grenade  H heal  Space shoot  E end turn  R report"
	if s.Phase == PhasePlacement {
		help = fmt.Sprintf("placing %s: click a highlighted tile (1-3 to change class)", g.placeClass)
	}
	text.Draw(screen, help, face, borderWidth, y+18, color.RGBA{R: 150, G: 155, B: 160, A: 255})

	if g.lastReject != "" {
		text.Draw(screen, g.lastReject, face, borderWidth, y+36,
			color.RGBA{R: 230, G: 120, B: 100, A: 255})
	}
}
