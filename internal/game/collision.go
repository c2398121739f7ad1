package game

// IsWallAt reports whether the world point (wx, wy) lies in a wall cell.
func (g *Grid) IsWallAt(wx, wy float64) bool {
	cx, cy := WorldToCell(wx, wy)
	return g.TileAt(cx, cy) == TileWall
}

// IsBlocked tests the box with top-left (x, y) and edge size against the
// grid. Each corner is pulled inward by padding so cornering is forgiving;
// the box is blocked when any inset corner lands on a wall. A point sample
// is IsBlocked(x, y, 0, 0).
func (g *Grid) IsBlocked(x, y, size, padding float64) bool {
	x0, y0 := x+padding, y+padding
	x1, y1 := x+size-padding, y+size-padding
	return g.IsWallAt(x0, y0) ||
		g.IsWallAt(x1, y0) ||
		g.IsWallAt(x0, y1) ||
		g.IsWallAt(x1, y1)
}
