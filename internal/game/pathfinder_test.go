package game

import "testing"

func allTiles(TileCoord) bool { return true }

func TestBFSDepthBound(t *testing.T) {
	g := Grid{Cols: 10, Rows: 10}
	start := T(5, 5)
	tiles := g.BFS(start, 2, allTiles, allTiles)
	if len(tiles) != 12 {
		t.Fatalf("reachable tiles = %d, want 12", len(tiles))
	}
	for _, tile := range tiles {
		if tile.Equal(start) {
			t.Fatal("start tile must not be in the result")
		}
		if d := tile.Manhattan(start); d > 2 {
			t.Fatalf("tile %+v at distance %d exceeds depth 2", tile, d)
		}
	}
}

func TestBFSBlockedThrough(t *testing.T) {
	// A tile that cannot be passed through is still a legal stop, but
	// nothing beyond it is reachable.
	g := Grid{Cols: 6, Rows: 1}
	through := func(tile TileCoord) bool { return !tile.Equal(T(2, 0)) }
	tiles := g.BFS(T(0, 0), 5, allTiles, through)
	if len(tiles) != 2 {
		t.Fatalf("reachable tiles = %v, want [1,0 2,0]", tiles)
	}
	for _, tile := range tiles {
		if tile.Col > 2 {
			t.Fatalf("tile %+v reached past the blocked tile", tile)
		}
	}
}

func TestBFSUnavailableButPassable(t *testing.T) {
	// An occupied tile can be crossed without being a stopping point.
	g := Grid{Cols: 6, Rows: 1}
	avail := func(tile TileCoord) bool { return !tile.Equal(T(1, 0)) }
	tiles := g.BFS(T(0, 0), 5, avail, allTiles)
	if len(tiles) != 4 {
		t.Fatalf("reachable tiles = %v, want 4", tiles)
	}
	for _, tile := range tiles {
		if tile.Equal(T(1, 0)) {
			t.Fatal("unavailable tile appeared in the result")
		}
	}
}

func TestBFSZeroDepth(t *testing.T) {
	g := Grid{Cols: 6, Rows: 6}
	if tiles := g.BFS(T(0, 0), 0, allTiles, allTiles); tiles != nil {
		t.Fatalf("zero depth returned %v", tiles)
	}
}

func TestPathToDetour(t *testing.T) {
	g := Grid{Cols: 3, Rows: 3}
	through := func(tile TileCoord) bool { return !tile.Equal(T(1, 0)) }
	path := g.PathTo(T(0, 0), T(2, 0), through)
	if len(path) != 4 {
		t.Fatalf("path = %v, want 4 steps around the blocked tile", path)
	}
	if !path[len(path)-1].Equal(T(2, 0)) {
		t.Fatalf("path ends at %+v, want 2,0", path[len(path)-1])
	}
	for _, tile := range path {
		if tile.Equal(T(1, 0)) {
			t.Fatal("path crosses the blocked tile")
		}
	}
}

func TestPathToEndExempt(t *testing.T) {
	// The destination itself never needs to satisfy the predicate.
	g := Grid{Cols: 3, Rows: 1}
	through := func(tile TileCoord) bool { return !tile.Equal(T(2, 0)) }
	path := g.PathTo(T(0, 0), T(2, 0), through)
	if len(path) != 2 || !path[1].Equal(T(2, 0)) {
		t.Fatalf("path = %v, want [1,0 2,0]", path)
	}
}

func TestPathToUnreachable(t *testing.T) {
	g := Grid{Cols: 3, Rows: 1}
	through := func(tile TileCoord) bool { return !tile.Equal(T(1, 0)) }
	if path := g.PathTo(T(0, 0), T(2, 0), through); path != nil {
		t.Fatalf("expected nil path, got %v", path)
	}
}

func TestBlastTiles(t *testing.T) {
	g := Grid{Cols: 10, Rows: 10}
	tiles := g.BlastTiles(T(5, 5), 1)
	if len(tiles) != 5 {
		t.Fatalf("blast tiles = %v, want 5", tiles)
	}
	if !tiles[0].Equal(T(5, 5)) {
		t.Fatalf("blast must include its center, got %v", tiles)
	}

	// Clipped at the grid corner.
	if tiles := g.BlastTiles(T(0, 0), 1); len(tiles) != 3 {
		t.Fatalf("corner blast tiles = %v, want 3", tiles)
	}
}
