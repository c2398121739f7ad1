package game

import "math"

// Autopilot tuning.
const (
	autoReplanEvery   = 0.5  // s between route refreshes
	autoAlignTol      = 4.0  // px, waypoint reached when both axes are within this
	autoDetourSteps   = 6    // max BFS steps worth detouring for a power-up
	autoFireRange     = 6.0  // tiles
	autoFireLaneWidth = 20.0 // px, perpendicular slack for a lined-up shot
	autoFireCooldown  = 0.3  // s between shots
)

// Autopilot produces Input that walks the player to the correct answer,
// avoiding wrong answer tiles, picking up nearby power-ups and shooting
// enemies lined up ahead. It reads engine state but never mutates it.
type Autopilot struct {
	eng *Engine

	route  []Cell
	idx    int
	goal   Cell
	replan float64
	fireCD float64
}

// NewAutopilot binds an autopilot to eng.
func NewAutopilot(eng *Engine) *Autopilot {
	return &Autopilot{eng: eng}
}

// Reset forgets the current route, e.g. after a level change.
func (a *Autopilot) Reset() {
	a.route = nil
	a.idx = 0
	a.replan = 0
	a.fireCD = 0
}

// Next returns the input for the coming tick of length dt.
func (a *Autopilot) Next(dt float64) Input {
	st := a.eng.State()
	if a.eng.Frozen() {
		a.route = nil
		return Input{}
	}
	a.fireCD -= dt
	a.replan -= dt
	if a.replan <= 0 || a.idx >= len(a.route) {
		a.plan()
		a.replan = autoReplanEvery
	}

	in := Input{Move: a.steer(&st.Player)}
	if a.fireCD <= 0 && a.shouldFire(&st.Player) {
		in.Fire = true
		a.fireCD = autoFireCooldown
	}
	return in
}

// plan picks a goal (a close power-up worth having, else the correct
// answer) and routes to it around wrong answer tiles.
func (a *Autopilot) plan() {
	eng := a.eng
	st := eng.State()
	from := st.Player.Cell()
	avoid := func(c Cell) bool {
		o, ok := eng.level.options[c]
		return ok && !o.IsCorrect
	}

	goal, ok := eng.level.desc.CorrectCell()
	if !ok {
		a.route = nil
		return
	}
	best := -1
	for _, pu := range st.PowerUps {
		if pu.Picked || !a.wants(pu.Kind, &st.Player) {
			continue
		}
		p := eng.nav.FindPathFunc(from, pu.Cell, avoid)
		if p == nil || len(p)-1 > autoDetourSteps {
			continue
		}
		if best < 0 || len(p)-1 < best {
			best = len(p) - 1
			goal = pu.Cell
		}
	}

	a.goal = goal
	a.route = eng.nav.FindPathFunc(from, goal, avoid)
	a.idx = 0
	if len(a.route) >= 2 && a.headingAlong(&st.Player, a.route[0], a.route[1]) {
		a.idx = 1
	}
}

// headingAlong reports whether p is already on the segment from cell a
// toward cell b, so walking back to a's centre would be wasted.
func (a *Autopilot) headingAlong(p *Player, from, to Cell) bool {
	ax, ay := alignedTopLeft(from.X, from.Y)
	bx, by := alignedTopLeft(to.X, to.Y)
	dx, dy := p.X-ax, p.Y-ay
	if bx != ax {
		return math.Abs(dy) <= autoAlignTol && dx*(bx-ax) > 0
	}
	return math.Abs(dx) <= autoAlignTol && dy*(by-ay) > 0
}

func (a *Autopilot) wants(k PowerUpKind, p *Player) bool {
	switch k {
	case PowerUpShield:
		return !p.Shielded
	case PowerUpWeapon:
		return p.Ammo == 0
	}
	return false
}

// steer returns an axis intent toward the next route cell.
func (a *Autopilot) steer(p *Player) Vec2 {
	for a.idx < len(a.route) {
		c := a.route[a.idx]
		tx, ty := alignedTopLeft(c.X, c.Y)
		ex, ey := tx-p.X, ty-p.Y
		if math.Abs(ex) <= autoAlignTol && math.Abs(ey) <= autoAlignTol {
			a.idx++
			continue
		}
		if math.Abs(ex) > math.Abs(ey) {
			return Vec2{X: math.Copysign(1, ex)}
		}
		return Vec2{Y: math.Copysign(1, ey)}
	}
	return Vec2{}
}

// shouldFire reports whether a live enemy sits in the firing lane ahead of
// the player with no wall in between.
func (a *Autopilot) shouldFire(p *Player) bool {
	if p.Ammo <= 0 {
		return false
	}
	u := p.Facing.Unit()
	cx, cy := p.Center()
	g := a.eng.Grid()
	for _, e := range a.eng.State().Enemies {
		if e.Destroyed {
			continue
		}
		dx, dy := e.X-cx, e.Y-cy
		along := dx*u.X + dy*u.Y
		perp := math.Abs(dx*u.Y - dy*u.X)
		if along <= 0 || along > autoFireRange*TileSize || perp > autoFireLaneWidth {
			continue
		}
		if g.HasLineOfSight(cx, cy, e.X, e.Y) {
			return true
		}
	}
	return false
}
