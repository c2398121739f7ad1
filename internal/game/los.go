package game

import "math"

// HasLineOfSight returns true if the straight segment from (ax,ay) to
// (bx,by) crosses no wall cell. Only the cells inside the segment's
// bounding box are tested, each with a ray-vs-AABB slab test.
func (g *Grid) HasLineOfSight(ax, ay, bx, by float64) bool {
	c0x, c0y := WorldToCell(math.Min(ax, bx), math.Min(ay, by))
	c1x, c1y := WorldToCell(math.Max(ax, bx), math.Max(ay, by))
	for cy := c0y; cy <= c1y; cy++ {
		for cx := c0x; cx <= c1x; cx++ {
			if g.TileAt(cx, cy) != TileWall {
				continue
			}
			minX, minY := float64(cx*TileSize), float64(cy*TileSize)
			if rayIntersectsAABB(ax, ay, bx, by, minX, minY, minX+TileSize, minY+TileSize) {
				return false
			}
		}
	}
	return true
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox >= maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy >= maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return math.Max(tMin, 0), true
}

// rayIntersectsAABB checks if the segment from (ox,oy)->(ex,ey) intersects
// the box (minX,minY)-(maxX,maxY).
func rayIntersectsAABB(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}
