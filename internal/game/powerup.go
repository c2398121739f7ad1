package game

import (
	"fmt"
	"math"
)

// PowerUp is a pickup placed at a cell centre.
type PowerUp struct {
	Kind   PowerUpKind
	Cell   Cell
	X, Y   float64
	Picked bool
}

func newPowerUp(spec PowerUpSpec) PowerUp {
	x, y := CellCenter(spec.Cell.X, spec.Cell.Y)
	return PowerUp{Kind: spec.Kind, Cell: spec.Cell, X: x, Y: y}
}

// updatePowerUps applies every unpicked power-up in pickup range. Each one
// applies at most once per level.
func (eng *Engine) updatePowerUps() {
	st := &eng.state
	t := eng.tuning
	px, py := st.Player.Center()
	for i := range st.PowerUps {
		pu := &st.PowerUps[i]
		if pu.Picked || math.Hypot(pu.X-px, pu.Y-py) >= t.PickupRadius {
			continue
		}
		pu.Picked = true
		switch pu.Kind {
		case PowerUpShield:
			st.Player.Shielded = true
			st.Player.ShieldTime = t.ShieldDuration
			eng.log.Add(st.Tick, "P", "powerup", "pickup", "shield", t.ShieldDuration)
		case PowerUpWeapon:
			st.Player.Ammo += t.WeaponAmmo
			eng.log.Add(st.Tick, "P", "powerup", "pickup",
				fmt.Sprintf("weapon ammo=%d", st.Player.Ammo), float64(st.Player.Ammo))
			eng.listener.OnAmmoChanged(st.Player.Ammo)
		}
	}
}
