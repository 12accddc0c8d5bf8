package game

import "testing"

func TestTileMapping(t *testing.T) {
	g := Grid{Cols: 4, Rows: 3}

	if c := g.TileCenter(T(0, 0)); c != (Vec{20, 20}) {
		t.Fatalf("center of 0,0 = %+v, want (20,20)", c)
	}
	if c := g.TileCenter(T(3, 2)); c != (Vec{140, 100}) {
		t.Fatalf("center of 3,2 = %+v, want (140,100)", c)
	}
	if tile := g.TileAt(Vec{45, 75}); !tile.Equal(T(1, 1)) {
		t.Fatalf("tile at (45,75) = %+v, want 1,1", tile)
	}

	// Negative coordinates resolve to out-of-bounds tiles, not tile 0.
	tile := g.TileAt(Vec{-1, 5})
	if g.InBounds(tile) {
		t.Fatalf("tile at (-1,5) = %+v should be out of bounds", tile)
	}
}

func TestIndexRowMajor(t *testing.T) {
	g := Grid{Cols: 4, Rows: 3}
	if got := g.Index(T(1, 2)); got != 9 {
		t.Fatalf("index of 1,2 = %d, want 9", got)
	}
	if got := g.Index(T(0, 0)); got != 0 {
		t.Fatalf("index of 0,0 = %d, want 0", got)
	}
}

func TestManhattan(t *testing.T) {
	if d := T(1, 1).Manhattan(T(3, 0)); d != 3 {
		t.Fatalf("distance = %d, want 3", d)
	}
	if d := T(3, 0).Manhattan(T(1, 1)); d != 3 {
		t.Fatalf("distance not symmetric: %d", d)
	}
	if d := T(2, 2).Manhattan(T(2, 2)); d != 0 {
		t.Fatalf("self distance = %d, want 0", d)
	}
}

func TestNeighborsAtCorner(t *testing.T) {
	g := Grid{Cols: 4, Rows: 3}
	if n := g.Neighbors(T(0, 0)); len(n) != 2 {
		t.Fatalf("corner neighbors = %v, want 2", n)
	}
	if n := g.Neighbors(T(1, 1)); len(n) != 4 {
		t.Fatalf("interior neighbors = %v, want 4", n)
	}
}

func TestContains(t *testing.T) {
	g := Grid{Cols: 4, Rows: 3}
	if !g.Contains(Vec{160, 120}) {
		t.Fatal("boundary point should be contained")
	}
	if g.Contains(Vec{160.5, 60}) {
		t.Fatal("point past the right border should not be contained")
	}
	if g.Contains(Vec{-0.5, 60}) {
		t.Fatal("point past the left border should not be contained")
	}
}

func TestTileEdgeNormals(t *testing.T) {
	edges := TileEdges(T(1, 1))
	want := map[Vec]bool{{0, -1}: true, {0, 1}: true, {-1, 0}: true, {1, 0}: true}
	for _, e := range edges {
		if !want[e.Normal] {
			t.Fatalf("unexpected or duplicate edge normal %+v", e.Normal)
		}
		delete(want, e.Normal)
	}

	// Left edge of tile 1,1 runs along x=40.
	left := edges[2]
	if left.A != (Vec{40, 40}) || left.B != (Vec{40, 80}) {
		t.Fatalf("left edge = %+v..%+v, want (40,40)..(40,80)", left.A, left.B)
	}
}
