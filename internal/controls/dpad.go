package controls

import (
	"math"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// DPad is a four-button cross. A press latches its direction until another
// button is pressed or Clear is called.
type DPad struct {
	X, Y float64 // centre
	Size float64 // full width of the cross

	latched game.Vec2
}

// ButtonAt returns the button under (x, y). Each arm covers one third of
// the cross; the centre square is dead.
func (d *DPad) ButtonAt(x, y float64) (game.Direction, bool) {
	h := d.Size / 2
	dx, dy := x-d.X, y-d.Y
	if math.Abs(dx) > h || math.Abs(dy) > h {
		return 0, false
	}
	third := d.Size / 6
	switch {
	case dy < -third && math.Abs(dx) <= third:
		return game.DirUp, true
	case dy > third && math.Abs(dx) <= third:
		return game.DirDown, true
	case dx < -third && math.Abs(dy) <= third:
		return game.DirLeft, true
	case dx > third && math.Abs(dy) <= third:
		return game.DirRight, true
	}
	return 0, false
}

// Press latches the direction under (x, y), if any.
func (d *DPad) Press(x, y float64) bool {
	dir, ok := d.ButtonAt(x, y)
	if ok {
		d.latched = game.Intent(dir)
	}
	return ok
}

// Clear drops the latched direction.
func (d *DPad) Clear() { d.latched = game.Vec2{} }

// Vector returns the latched intent.
func (d *DPad) Vector() game.Vec2 { return d.latched }

// Button is a round tap target.
type Button struct {
	X, Y, R float64
}

// Hit reports whether (x, y) is inside the button.
func (b Button) Hit(x, y float64) bool {
	return math.Hypot(x-b.X, y-b.Y) <= b.R
}
