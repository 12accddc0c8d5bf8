package game

// TileSize is the width of one grid tile in canvas units.
const TileSize = 40.0

// TileCoord identifies one cell of the grid. Col increases rightward,
// Row increases downward.
type TileCoord struct {
	Col, Row int
}

// T is a convenience constructor for TileCoord.
func T(col, row int) TileCoord { return TileCoord{Col: col, Row: row} }

// Add returns the tile offset by (dc, dr).
func (t TileCoord) Add(dc, dr int) TileCoord {
	return TileCoord{Col: t.Col + dc, Row: t.Row + dr}
}

// Equal reports whether two tiles are the same cell.
func (t TileCoord) Equal(o TileCoord) bool { return t.Col == o.Col && t.Row == o.Row }

// Manhattan returns the Manhattan distance to another tile.
func (t TileCoord) Manhattan(o TileCoord) int {
	dc := t.Col - o.Col
	dr := t.Row - o.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}

// Grid maps between tile coordinates and continuous canvas coordinates.
type Grid struct {
	Cols, Rows int
}

// InBounds reports whether t lies on the grid.
func (g Grid) InBounds(t TileCoord) bool {
	return t.Col >= 0 && t.Col < g.Cols && t.Row >= 0 && t.Row < g.Rows
}

// Index returns the row-major index of t. Used for stable occupant
// bookkeeping and deterministic tie-breaking.
func (g Grid) Index(t TileCoord) int { return t.Row*g.Cols + t.Col }

// TileCenter returns the canvas-space center of t.
func (g Grid) TileCenter(t TileCoord) Vec {
	return Vec{
		X: float64(t.Col)*TileSize + TileSize/2,
		Y: float64(t.Row)*TileSize + TileSize/2,
	}
}

// TileAt returns the tile containing canvas point p. The result may be out
// of bounds; callers check InBounds.
func (g Grid) TileAt(p Vec) TileCoord {
	c := int(p.X / TileSize)
	r := int(p.Y / TileSize)
	if p.X < 0 {
		c--
	}
	if p.Y < 0 {
		r--
	}
	return TileCoord{Col: c, Row: r}
}

// Width returns the canvas width of the play area.
func (g Grid) Width() float64 { return float64(g.Cols) * TileSize }

// Height returns the canvas height of the play area.
func (g Grid) Height() float64 { return float64(g.Rows) * TileSize }

// Contains reports whether canvas point p lies inside the play area.
func (g Grid) Contains(p Vec) bool {
	return p.X >= 0 && p.X <= g.Width() && p.Y >= 0 && p.Y <= g.Height()
}

// neighborOffsets are the four orthogonal steps, in row-major scan order.
var neighborOffsets = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Neighbors returns the in-bounds orthogonal neighbors of t.
func (g Grid) Neighbors(t TileCoord) []TileCoord {
	out := make([]TileCoord, 0, 4)
	for _, d := range neighborOffsets {
		n := t.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// TileEdges returns the four bounding edges of t with outward normals.
// Characters and obstacles share this bounding-box shape for hit testing.
func TileEdges(t TileCoord) [4]LineSegment {
	x0 := float64(t.Col) * TileSize
	y0 := float64(t.Row) * TileSize
	x1 := x0 + TileSize
	y1 := y0 + TileSize
	return [4]LineSegment{
		{A: Vec{x0, y0}, B: Vec{x1, y0}, Normal: Vec{0, -1}}, // top
		{A: Vec{x0, y1}, B: Vec{x1, y1}, Normal: Vec{0, 1}},  // bottom
		{A: Vec{x0, y0}, B: Vec{x0, y1}, Normal: Vec{-1, 0}}, // left
		{A: Vec{x1, y0}, B: Vec{x1, y1}, Normal: Vec{1, 0}},  // right
	}
}

// BorderSegments returns the four edges of the play area with inward
// normals. Used to locate the exit point of a shot that leaves the grid.
func (g Grid) BorderSegments() [4]LineSegment {
	w := g.Width()
	h := g.Height()
	return [4]LineSegment{
		{A: Vec{0, 0}, B: Vec{w, 0}, Normal: Vec{0, 1}},  // top
		{A: Vec{0, h}, B: Vec{w, h}, Normal: Vec{0, -1}}, // bottom
		{A: Vec{0, 0}, B: Vec{0, h}, Normal: Vec{1, 0}},  // left
		{A: Vec{w, 0}, B: Vec{w, h}, Normal: Vec{-1, 0}}, // right
	}
}
