package game

import "math"

// Player is the controlled craft. X, Y is the top-left of its box.
type Player struct {
	X, Y   float64
	VX, VY float64
	Facing Direction

	Dead         bool
	RespawnGrace float64
	Shielded     bool
	ShieldTime   float64
	Ammo         int

	// Visual only.
	Angle         float64
	MoveIntensity float64
}

func newPlayer(start Cell, t Tuning) Player {
	x, y := alignedTopLeft(start.X, start.Y)
	return Player{
		X:            x,
		Y:            y,
		Facing:       DirUp,
		RespawnGrace: t.RespawnGrace,
	}
}

// alignedTopLeft returns the top-left of a player box centred in a cell.
func alignedTopLeft(cx, cy int) (float64, float64) {
	off := (TileSize - playerSize) / 2
	return float64(cx*TileSize) + off, float64(cy*TileSize) + off
}

// Center returns the world centre of the player box.
func (p *Player) Center() (float64, float64) {
	return p.X + playerHalf, p.Y + playerHalf
}

// Cell returns the cell under the player centre.
func (p *Player) Cell() Cell {
	cx, cy := WorldToCell(p.Center())
	return Cell{X: cx, Y: cy}
}

// Vulnerable reports whether enemy contact would kill the player now.
func (p *Player) Vulnerable() bool {
	return !p.Dead && !p.Shielded && p.RespawnGrace <= 0
}

func (p *Player) tickTimers(dt float64) {
	if p.RespawnGrace > 0 {
		p.RespawnGrace = math.Max(0, p.RespawnGrace-dt)
	}
	if p.Shielded {
		p.ShieldTime -= dt
		if p.ShieldTime <= 0 {
			p.ShieldTime = 0
			p.Shielded = false
		}
	}
}

// move applies one tick of movement for the given intent and reports
// whether the box actually changed position.
func (p *Player) move(g *Grid, intent Vec2, dt float64, t Tuning) bool {
	l := intent.Len()
	if l == 0 {
		p.VX, p.VY = 0, 0
		p.MoveIntensity = math.Max(0, p.MoveIntensity-t.IntensityRate*dt)
		return false
	}
	dx, dy := intent.X/l, intent.Y/l
	step := t.PlayerSpeed * dt
	p.VX, p.VY = dx*t.PlayerSpeed, dy*t.PlayerSpeed

	p.cornerAssist(g, dx, dy, step, dt, t)

	ox, oy := p.X, p.Y
	if nx := p.X + dx*step; !g.IsBlocked(nx, p.Y, playerSize, playerPadding) {
		p.X = nx
	}
	if ny := p.Y + dy*step; !g.IsBlocked(p.X, ny, playerSize, playerPadding) {
		p.Y = ny
	}
	moved := p.X != ox || p.Y != oy
	if !moved {
		p.MoveIntensity = math.Max(0, p.MoveIntensity-t.IntensityRate*dt)
		return false
	}
	p.Facing = dominantDirection(Vec2{dx, dy})
	target := math.Atan2(p.VY, p.VX) + math.Pi/2
	p.Angle = normalizeAngle(lerpAngle(p.Angle, target, math.Min(1, t.TurnRate*dt)))
	p.MoveIntensity = math.Min(1, p.MoveIntensity+t.IntensityRate*dt)
	return true
}

// cornerAssist nudges the perpendicular coordinate toward the corridor
// centre when a pure-axis step is blocked but the player is only slightly
// off-line with an opening.
func (p *Player) cornerAssist(g *Grid, dx, dy, step, dt float64, t Tuning) {
	if dx != 0 && dy != 0 {
		return
	}
	c := p.Cell()
	ax, ay := alignedTopLeft(c.X, c.Y)
	rate := math.Min(1, t.SnapRate*dt)

	if dx == 0 {
		off := math.Abs(p.X - ax)
		if off == 0 || off >= t.SnapThreshold {
			return
		}
		if !g.IsBlocked(p.X, p.Y+dy*step, playerSize, playerPadding) {
			return
		}
		if nx := lerp(p.X, ax, rate); !g.IsBlocked(nx, p.Y, playerSize, playerPadding) {
			p.X = nx
		}
		return
	}
	off := math.Abs(p.Y - ay)
	if off == 0 || off >= t.SnapThreshold {
		return
	}
	if !g.IsBlocked(p.X+dx*step, p.Y, playerSize, playerPadding) {
		return
	}
	if ny := lerp(p.Y, ay, rate); !g.IsBlocked(p.X, ny, playerSize, playerPadding) {
		p.Y = ny
	}
}
