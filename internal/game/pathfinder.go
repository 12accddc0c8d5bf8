package game

// TilePredicate answers a yes/no question about one tile.
type TilePredicate func(TileCoord) bool

// BFS returns every tile reachable from start within maxDepth orthogonal
// steps. A tile is expanded through only where canGoThrough holds on the
// tile being left; it appears in the result only where isAvailable holds.
// The two predicates are independent: a tile can be passed through without
// being a legal stopping point and vice versa. The start tile itself is
// never part of the result.
func (g Grid) BFS(start TileCoord, maxDepth int, isAvailable, canGoThrough TilePredicate) []TileCoord {
	if maxDepth <= 0 {
		return nil
	}

	type node struct {
		tile  TileCoord
		depth int
	}

	visited := make(map[int]bool, maxDepth*maxDepth*2)
	visited[g.Index(start)] = true

	var result []TileCoord
	queue := []node{{tile: start, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Passing through the parent requires canGoThrough, except for the
		// start tile, which the mover already occupies.
		if cur.depth > 0 && !canGoThrough(cur.tile) {
			continue
		}
		if cur.depth == maxDepth {
			continue
		}
		for _, n := range g.Neighbors(cur.tile) {
			idx := g.Index(n)
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if isAvailable(n) {
				result = append(result, n)
			}
			queue = append(queue, node{tile: n, depth: cur.depth + 1})
		}
	}
	return result
}

// PathTo returns the shortest orthogonal tile sequence from start to end,
// excluding start and including end, passing only through tiles where
// canGoThrough holds. The end tile itself is exempt from the predicate.
// Returns nil when end is unreachable.
func (g Grid) PathTo(start, end TileCoord, canGoThrough TilePredicate) []TileCoord {
	if start.Equal(end) {
		return nil
	}
	parent := make(map[int]TileCoord)
	visited := make(map[int]bool)
	visited[g.Index(start)] = true

	queue := []TileCoord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			idx := g.Index(n)
			if visited[idx] {
				continue
			}
			visited[idx] = true
			parent[idx] = cur
			if n.Equal(end) {
				return g.rebuildPath(start, end, parent)
			}
			if canGoThrough(n) {
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// rebuildPath walks the parent map backwards from end and reverses.
func (g Grid) rebuildPath(start, end TileCoord, parent map[int]TileCoord) []TileCoord {
	var rev []TileCoord
	for cur := end; !cur.Equal(start); cur = parent[g.Index(cur)] {
		rev = append(rev, cur)
	}
	path := make([]TileCoord, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// BlastTiles returns the impact tile plus every tile within radius steps of
// it, ignoring occupancy entirely (splash crosses obstacles).
func (g Grid) BlastTiles(center TileCoord, radius int) []TileCoord {
	all := func(TileCoord) bool { return true }
	tiles := []TileCoord{center}
	return append(tiles, g.BFS(center, radius, all, all)...)
}
