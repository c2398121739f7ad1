// Package controls turns touch points into movement intents. It has no
// ebiten dependency so the geometry is testable headless.
package controls

import (
	"math"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// JoystickRadius is the knob travel in screen pixels.
const JoystickRadius = 60.0

// StickVector clamps the offset (dx, dy) to radius and returns both the
// clamped knob offset and the intent scaled to unit length at the rim.
func StickVector(dx, dy, radius float64) (knob, intent game.Vec2) {
	if radius <= 0 {
		return game.Vec2{}, game.Vec2{}
	}
	d := math.Hypot(dx, dy)
	if d > radius {
		dx = dx / d * radius
		dy = dy / d * radius
	}
	return game.Vec2{X: dx, Y: dy}, game.Vec2{X: dx / radius, Y: dy / radius}
}

// Joystick is a fixed-base virtual stick that follows one touch.
type Joystick struct {
	X, Y   float64 // base centre
	Radius float64

	active  bool
	pointer int
	knob    game.Vec2
	intent  game.Vec2
}

// NewJoystick places a stick with the default radius at (x, y).
func NewJoystick(x, y float64) *Joystick {
	return &Joystick{X: x, Y: y, Radius: JoystickRadius}
}

// Contains reports whether (x, y) is on the stick base.
func (j *Joystick) Contains(x, y float64) bool {
	return math.Hypot(x-j.X, y-j.Y) <= j.Radius
}

// Press captures pointer id if it lands on the base and no other pointer
// holds the stick.
func (j *Joystick) Press(id int, x, y float64) bool {
	if j.active || !j.Contains(x, y) {
		return false
	}
	j.active = true
	j.pointer = id
	j.update(x, y)
	return true
}

// Move updates the knob for the captured pointer. Other pointers are
// ignored, even when they leave the base.
func (j *Joystick) Move(id int, x, y float64) {
	if !j.active || id != j.pointer {
		return
	}
	j.update(x, y)
}

// Release recentres the stick when the captured pointer lifts.
func (j *Joystick) Release(id int) {
	if !j.active || id != j.pointer {
		return
	}
	j.active = false
	j.knob = game.Vec2{}
	j.intent = game.Vec2{}
}

func (j *Joystick) update(x, y float64) {
	j.knob, j.intent = StickVector(x-j.X, y-j.Y, j.Radius)
}

// Active reports whether a pointer holds the stick.
func (j *Joystick) Active() bool { return j.active }

// Pointer returns the captured pointer id, valid while Active.
func (j *Joystick) Pointer() int { return j.pointer }

// Knob returns the knob offset from the base centre in pixels.
func (j *Joystick) Knob() game.Vec2 { return j.knob }

// Vector returns the movement intent, zero when released.
func (j *Joystick) Vector() game.Vec2 { return j.intent }
