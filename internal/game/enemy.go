package game

import (
	"fmt"
	"math"
)

// SteeringMode selects how enemies choose where to go.
type SteeringMode string

const (
	SteerPursue SteeringMode = "pursue" // follow BFS routes to the player
	SteerDirect SteeringMode = "direct" // home straight on the player centre
	SteerWander SteeringMode = "wander" // random walk, no reversing except at dead ends
)

// Enemy is a pursuing hostile. X, Y is the centre of its box.
type Enemy struct {
	ID     int
	X, Y   float64
	VX, VY float64

	Destroyed    bool
	RespawnTimer float64

	RecomputeTimer float64
	ThinkTimer     float64
	CurrentPath    []Cell
	PathIndex      int

	// Visual only.
	Rotation float64
	Frame    float64

	spawn      Cell
	heading    float64
	hasHeading bool
	prevCell   Cell
	wanderTo   Cell
	wandering  bool
}

func newEnemy(id int, c Cell) *Enemy {
	x, y := CellCenter(c.X, c.Y)
	return &Enemy{ID: id, X: x, Y: y, spawn: c, prevCell: c}
}

// Label is the entity name used in the SimLog.
func (e *Enemy) Label() string { return fmt.Sprintf("E%d", e.ID) }

// Cell returns the cell under the enemy centre.
func (e *Enemy) Cell() Cell {
	cx, cy := WorldToCell(e.X, e.Y)
	return Cell{X: cx, Y: cy}
}

func (e *Enemy) respawn() {
	e.X, e.Y = CellCenter(e.spawn.X, e.spawn.Y)
	e.VX, e.VY = 0, 0
	e.Destroyed = false
	e.RespawnTimer = 0
	e.RecomputeTimer = 0
	e.ThinkTimer = 0
	e.CurrentPath = nil
	e.PathIndex = 0
	e.hasHeading = false
	e.wandering = false
	e.prevCell = e.spawn
}

// setPath installs a fresh route. The cursor skips the enemy's own cell
// when it is already travelling along the first segment.
func (e *Enemy) setPath(path []Cell, radius float64) {
	e.CurrentPath = path
	e.PathIndex = 0
	if len(path) < 2 {
		return
	}
	x0, y0 := CellCenter(path[0].X, path[0].Y)
	if path[1].X != path[0].X {
		if math.Abs(e.Y-y0) < radius {
			e.PathIndex = 1
		}
	} else if math.Abs(e.X-x0) < radius {
		e.PathIndex = 1
	}
}

// pathTarget returns the next waypoint centre, advancing the cursor past
// waypoints already reached. ok is false once the path is consumed.
func (e *Enemy) pathTarget(radius float64) (float64, float64, bool) {
	for e.PathIndex < len(e.CurrentPath) {
		c := e.CurrentPath[e.PathIndex]
		tx, ty := CellCenter(c.X, c.Y)
		if math.Hypot(tx-e.X, ty-e.Y) >= radius {
			return tx, ty, true
		}
		e.PathIndex++
	}
	return 0, 0, false
}

// updateEnemies runs contact, pathing and steering for every enemy.
func (eng *Engine) updateEnemies(dt float64) {
	st := &eng.state
	t := eng.tuning
	frozen := eng.frozen()

	for _, e := range st.Enemies {
		if e.Destroyed {
			if frozen || t.EnemyRespawn <= 0 {
				continue
			}
			e.RespawnTimer -= dt
			if e.RespawnTimer <= 0 {
				e.respawn()
				eng.log.Add(st.Tick, e.Label(), "enemy", "respawn",
					fmt.Sprintf("at (%d,%d)", e.spawn.X, e.spawn.Y), 0)
			}
			continue
		}
		if frozen {
			e.VX, e.VY = 0, 0
			continue
		}

		e.Frame += 6 * dt
		e.Rotation += 3 * dt

		px, py := st.Player.Center()
		if st.Player.Vulnerable() && math.Hypot(px-e.X, py-e.Y) < t.ContactRadius {
			eng.killPlayer(e)
			return
		}

		dx, dy, ok := eng.desiredDirection(e, dt)
		if !ok {
			e.VX, e.VY = 0, 0
			continue
		}

		heading := math.Atan2(dy, dx)
		if e.hasHeading && math.Abs(normalizeAngle(heading-e.heading)) > 0.5 && t.ThinkDelay > 0 {
			e.heading = heading
			e.ThinkTimer = t.ThinkDelay
			e.VX, e.VY = 0, 0
			continue
		}
		e.heading = heading
		e.hasHeading = true
		if e.ThinkTimer > 0 {
			e.ThinkTimer -= dt
			e.VX, e.VY = 0, 0
			continue
		}

		sx, sy := eng.separation(e)
		e.VX = dx*t.EnemySpeed + sx
		e.VY = dy*t.EnemySpeed + sy
		eng.moveEnemy(e, dt)
	}
}

// desiredDirection returns the unit steering direction for e under the
// configured mode. ok is false when the enemy has nowhere to go.
func (eng *Engine) desiredDirection(e *Enemy, dt float64) (float64, float64, bool) {
	t := eng.tuning
	px, py := eng.state.Player.Center()

	switch t.Steering {
	case SteerDirect:
		return unitToward(e.X, e.Y, px, py)

	case SteerWander:
		return eng.wanderDirection(e)
	}

	e.RecomputeTimer -= dt
	if e.RecomputeTimer <= 0 {
		e.RecomputeTimer = t.PathRecompute
		eng.recomputePath(e)
	}
	if tx, ty, ok := e.pathTarget(t.WaypointRadius); ok {
		return unitToward(e.X, e.Y, tx, ty)
	}
	return unitToward(e.X, e.Y, px, py)
}

func (eng *Engine) recomputePath(e *Enemy) {
	from := e.Cell()
	to := eng.state.Player.Cell()
	path := eng.nav.FindPath(from, to)
	if path == nil {
		eng.log.Add(eng.state.Tick, e.Label(), "enemy", "no_path",
			fmt.Sprintf("(%d,%d)->(%d,%d) keeping %d cells", from.X, from.Y, to.X, to.Y, len(e.CurrentPath)), 0)
		return
	}
	e.setPath(path, eng.tuning.WaypointRadius)
	eng.log.Add(eng.state.Tick, e.Label(), "enemy", "path",
		fmt.Sprintf("len=%d", len(path)), float64(len(path)))
}

func (eng *Engine) wanderDirection(e *Enemy) (float64, float64, bool) {
	r := eng.tuning.WaypointRadius
	if e.wandering {
		tx, ty := CellCenter(e.wanderTo.X, e.wanderTo.Y)
		if math.Hypot(tx-e.X, ty-e.Y) >= r {
			return unitToward(e.X, e.Y, tx, ty)
		}
		e.wandering = false
	}

	cur := e.Cell()
	opts := eng.nav.OpenNeighbours(cur)
	if len(opts) == 0 {
		return 0, 0, false
	}
	choices := opts[:0:0]
	for _, c := range opts {
		if c != e.prevCell {
			choices = append(choices, c)
		}
	}
	if len(choices) == 0 {
		choices = opts
	}
	e.prevCell = cur
	e.wanderTo = choices[eng.rng.Intn(len(choices))]
	e.wandering = true
	tx, ty := CellCenter(e.wanderTo.X, e.wanderTo.Y)
	return unitToward(e.X, e.Y, tx, ty)
}

// separation sums the repulsion from other live enemies within range.
func (eng *Engine) separation(e *Enemy) (float64, float64) {
	t := eng.tuning
	var fx, fy float64
	for _, o := range eng.state.Enemies {
		if o == e || o.Destroyed {
			continue
		}
		dx, dy := e.X-o.X, e.Y-o.Y
		d := math.Hypot(dx, dy)
		if d >= t.SeparationRadius {
			continue
		}
		if d == 0 {
			// Stacked exactly: split along X by ID.
			dx, dy, d = 1, 0, 1
			if e.ID < o.ID {
				dx = -1
			}
		}
		f := (t.SeparationRadius - d) / t.SeparationRadius * t.SeparationForce
		fx += dx / d * f
		fy += dy / d * f
	}
	return fx, fy
}

// moveEnemy applies velocity one axis at a time against the grid.
func (eng *Engine) moveEnemy(e *Enemy, dt float64) {
	g := eng.level.grid
	const half = enemySize / 2
	if nx := e.X + e.VX*dt; !g.IsBlocked(nx-half, e.Y-half, enemySize, enemyPadding) {
		e.X = nx
	}
	if ny := e.Y + e.VY*dt; !g.IsBlocked(e.X-half, ny-half, enemySize, enemyPadding) {
		e.Y = ny
	}
	eng.log.AddVerbose(eng.state.Tick, e.Label(), "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", e.X, e.Y), 0)
}

func unitToward(x, y, tx, ty float64) (float64, float64, bool) {
	dx, dy := tx-x, ty-y
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		return 0, 0, false
	}
	return dx / d, dy / d, true
}
