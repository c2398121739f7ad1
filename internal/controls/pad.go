package controls

import "github.com/Garsondee/Quiz-Pursuit/internal/game"

// Pad groups the on-screen controls: a joystick and a D-pad sharing the
// bottom-left corner, and a fire button bottom-right.
type Pad struct {
	Stick *Joystick
	DPad  DPad
	Fire  Button

	UseDPad bool // D-pad instead of the stick
	fired   bool
}

// NewPad lays out controls for a w x h screen.
func NewPad(w, h float64) *Pad {
	p := &Pad{Stick: NewJoystick(0, 0)}
	p.Layout(w, h)
	return p
}

// Layout repositions the controls after a resize.
func (p *Pad) Layout(w, h float64) {
	margin := 40.0
	p.Stick.X = margin + p.Stick.Radius
	p.Stick.Y = h - margin - p.Stick.Radius
	p.DPad.Size = 144
	p.DPad.X = margin + p.DPad.Size/2
	p.DPad.Y = h - margin - p.DPad.Size/2
	p.Fire = Button{X: w - margin - 48, Y: h - margin - 48, R: 48}
}

// TouchBegan routes a new touch. It returns true when a control used it.
func (p *Pad) TouchBegan(id int, x, y float64) bool {
	if p.Fire.Hit(x, y) {
		p.fired = true
		return true
	}
	if p.UseDPad {
		return p.DPad.Press(x, y)
	}
	return p.Stick.Press(id, x, y)
}

// TouchMoved forwards a drag.
func (p *Pad) TouchMoved(id int, x, y float64) {
	if !p.UseDPad {
		p.Stick.Move(id, x, y)
	}
}

// TouchEnded forwards a lift.
func (p *Pad) TouchEnded(id int) {
	p.Stick.Release(id)
}

// Intent merges the touch controls with a keyboard intent. A held stick
// wins over the keyboard; a keyboard intent clears a latched D-pad.
func (p *Pad) Intent(keys game.Vec2) game.Vec2 {
	if p.UseDPad {
		if v := p.DPad.Vector(); !v.IsZero() && keys.IsZero() {
			return v
		}
		if !keys.IsZero() {
			p.DPad.Clear()
		}
		return keys
	}
	if p.Stick.Active() {
		return p.Stick.Vector()
	}
	return keys
}

// TakeFire reports and clears a pending fire tap.
func (p *Pad) TakeFire() bool {
	f := p.fired
	p.fired = false
	return f
}
