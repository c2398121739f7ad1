package game

import (
	"fmt"
	"math"
)

// --- Combat constants ---

const (
	explosionDecay   = 2.5 // life lost per second, 1 -> 0 in 0.4s
	explosionMaxLive = 32  // oldest explosions are dropped beyond this
)

// Projectile is one shot in flight.
type Projectile struct {
	ID     int
	X, Y   float64
	VX, VY float64
	Age    float64
}

// Explosion is a visual burst left where a projectile hit an enemy.
type Explosion struct {
	X, Y float64
	Life float64 // 1 at spawn, removed at 0
}

// Fire launches a projectile along the player's facing. It is a no-op when
// the engine is frozen, the player is dead or out of ammo.
func (eng *Engine) Fire() bool {
	st := &eng.state
	if eng.frozen() || st.Player.Dead || st.Player.Ammo <= 0 {
		return false
	}
	t := eng.tuning
	u := st.Player.Facing.Unit()
	cx, cy := st.Player.Center()
	st.nextProjectileID++
	p := Projectile{
		ID: st.nextProjectileID,
		X:  cx,
		Y:  cy,
		VX: u.X * t.ProjectileSpeed,
		VY: u.Y * t.ProjectileSpeed,
	}
	st.Projectiles = append(st.Projectiles, p)
	st.Player.Ammo--
	eng.log.Add(st.Tick, "P", "combat", "fire",
		fmt.Sprintf("#%d %s ammo=%d", p.ID, st.Player.Facing, st.Player.Ammo), float64(st.Player.Ammo))
	eng.listener.OnAmmoChanged(st.Player.Ammo)
	return true
}

// updateProjectiles advances shots and resolves walls, hits and expiry.
func (eng *Engine) updateProjectiles(dt float64) {
	st := &eng.state
	t := eng.tuning
	g := eng.level.grid

	kept := st.Projectiles[:0]
	for _, p := range st.Projectiles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Age += dt

		if g.IsWallAt(p.X, p.Y) {
			eng.log.Add(st.Tick, "P", "combat", "wall", fmt.Sprintf("#%d", p.ID), 0)
			continue
		}
		if target := eng.projectileTarget(p); target != nil {
			target.Destroyed = true
			target.RespawnTimer = t.EnemyRespawn
			target.VX, target.VY = 0, 0
			eng.spawnExplosion(target.X, target.Y)
			eng.log.Add(st.Tick, target.Label(), "combat", "hit", fmt.Sprintf("#%d", p.ID), 0)
			continue
		}
		if p.Age >= t.ProjectileLifetime {
			eng.log.Add(st.Tick, "P", "combat", "expire", fmt.Sprintf("#%d", p.ID), p.Age)
			continue
		}
		kept = append(kept, p)
	}
	st.Projectiles = kept
}

// projectileTarget returns the first live enemy within hit range of p.
func (eng *Engine) projectileTarget(p Projectile) *Enemy {
	for _, e := range eng.state.Enemies {
		if e.Destroyed {
			continue
		}
		if math.Hypot(e.X-p.X, e.Y-p.Y) < eng.tuning.HitRadius {
			return e
		}
	}
	return nil
}

func (eng *Engine) spawnExplosion(x, y float64) {
	st := &eng.state
	if len(st.Explosions) >= explosionMaxLive {
		st.Explosions = append(st.Explosions[:0], st.Explosions[1:]...)
	}
	st.Explosions = append(st.Explosions, Explosion{X: x, Y: y, Life: 1})
}

// updateExplosions ages bursts. It runs even while frozen so a hit that
// lands on the clearing tick still fades out.
func (eng *Engine) updateExplosions(dt float64) {
	st := &eng.state
	kept := st.Explosions[:0]
	for _, ex := range st.Explosions {
		ex.Life -= explosionDecay * dt
		if ex.Life > 0 {
			kept = append(kept, ex)
		}
	}
	st.Explosions = kept
}
