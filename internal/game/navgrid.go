package game

// NavGrid answers route queries over a maze Grid. Walls are impassable and
// every other tile costs one step.
type NavGrid struct {
	grid *Grid

	// Scratch buffers reused between searches; sized to the grid.
	parent []int
	queue  []int
}

// NewNavGrid builds a pathfinder over g.
func NewNavGrid(g *Grid) *NavGrid {
	n := g.cols * g.rows
	return &NavGrid{
		grid:   g,
		parent: make([]int, n),
		queue:  make([]int, 0, n),
	}
}

// IsBlocked returns true if the cell at (cx, cy) is not walkable.
func (ng *NavGrid) IsBlocked(cx, cy int) bool {
	return ng.grid.TileAt(cx, cy) == TileWall
}

// dirs is the neighbour expansion order. Fixed so equal-length routes tie
// the same way on every call.
var dirs = [4][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// FindPath runs a breadth-first search from one cell to another and returns
// the cell sequence including both endpoints. Returns nil when either end
// is a wall or no route exists.
func (ng *NavGrid) FindPath(from, to Cell) []Cell {
	return ng.FindPathFunc(from, to, nil)
}

// FindPathFunc is FindPath with extra cells excluded by avoid. The
// endpoints are never excluded.
func (ng *NavGrid) FindPathFunc(from, to Cell, avoid func(Cell) bool) []Cell {
	if ng.IsBlocked(from.X, from.Y) || ng.IsBlocked(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []Cell{from}
	}

	cols := ng.grid.cols
	for i := range ng.parent {
		ng.parent[i] = -1
	}
	start := from.Y*cols + from.X
	goal := to.Y*cols + to.X
	ng.parent[start] = start
	ng.queue = append(ng.queue[:0], start)

	for head := 0; head < len(ng.queue); head++ {
		cur := ng.queue[head]
		if cur == goal {
			return ng.buildPath(start, goal)
		}
		cx, cy := cur%cols, cur/cols
		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if ng.IsBlocked(nx, ny) {
				continue
			}
			nk := ny*cols + nx
			if nk != goal && avoid != nil && avoid(Cell{X: nx, Y: ny}) {
				continue
			}
			if ng.parent[nk] != -1 {
				continue
			}
			ng.parent[nk] = cur
			ng.queue = append(ng.queue, nk)
		}
	}
	return nil
}

// Distance returns the number of steps on the shortest route, or -1.
func (ng *NavGrid) Distance(from, to Cell) int {
	p := ng.FindPath(from, to)
	if p == nil {
		return -1
	}
	return len(p) - 1
}

// OpenNeighbours returns the walkable 4-neighbours of c in expansion order.
func (ng *NavGrid) OpenNeighbours(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range dirs {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if !ng.IsBlocked(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

func (ng *NavGrid) buildPath(start, goal int) []Cell {
	cols := ng.grid.cols
	n := 1
	for k := goal; k != start; k = ng.parent[k] {
		n++
	}
	path := make([]Cell, n)
	k := goal
	for i := n - 1; i >= 0; i-- {
		path[i] = Cell{X: k % cols, Y: k / cols}
		k = ng.parent[k]
	}
	return path
}
