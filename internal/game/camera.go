package game

import (
	"fmt"
	"math"
)

// CameraMode selects the framing strategy.
type CameraMode string

const (
	CameraChase  CameraMode = "chase"  // follow the player, 1:1 on desktop
	CameraField  CameraMode = "field"  // whole maze fitted, fixed on its centre
	CameraMobile CameraMode = "mobile" // follow the player with a minimum zoom
)

// ParseCameraMode accepts the lower-case mode names.
func ParseCameraMode(s string) (CameraMode, error) {
	switch m := CameraMode(s); m {
	case CameraChase, CameraField, CameraMobile:
		return m, nil
	}
	return CameraChase, fmt.Errorf("unknown camera mode %q", s)
}

// Zoom returns the world-to-screen scale for a mode and viewport.
func Zoom(mode CameraMode, viewW, viewH, worldW, worldH float64) float64 {
	if viewW <= 0 || viewH <= 0 || worldW <= 0 || worldH <= 0 {
		return 1
	}
	fit := math.Min(viewW*0.95/worldW, viewH*0.85/worldH)
	switch mode {
	case CameraField:
		return fit
	case CameraMobile:
		return math.Max(fit, 0.6)
	default:
		if viewW < 1024 {
			return math.Max(fit, 0.7)
		}
		return 1
	}
}

// Camera is the world point drawn at the viewport centre.
type Camera struct {
	X, Y float64
}

// Follow moves the camera toward its target for this mode, then clamps it
// when clamp is set.
func (c *Camera) Follow(mode CameraMode, px, py, worldW, worldH, viewW, viewH, zoom, rate, dt float64, clamp bool) {
	tx, ty := px, py
	if mode == CameraField {
		tx, ty = worldW/2, worldH/2
	}
	k := math.Min(1, rate*dt)
	c.X = lerp(c.X, tx, k)
	c.Y = lerp(c.Y, ty, k)
	if clamp && mode != CameraField {
		c.Clamp(worldW, worldH, viewW, viewH, zoom)
	}
}

// Clamp keeps the viewport inside the maze on each axis where the maze is
// larger than the viewport. Smaller axes are left alone.
func (c *Camera) Clamp(worldW, worldH, viewW, viewH, zoom float64) {
	if zoom <= 0 {
		return
	}
	halfW := viewW / zoom / 2
	halfH := viewH / zoom / 2
	if worldW > 2*halfW {
		c.X = clamp(c.X, halfW, worldW-halfW)
	}
	if worldH > 2*halfH {
		c.Y = clamp(c.Y, halfH, worldH-halfH)
	}
}

// Snap jumps the camera straight to its target.
func (c *Camera) Snap(mode CameraMode, px, py, worldW, worldH float64) {
	if mode == CameraField {
		c.X, c.Y = worldW/2, worldH/2
		return
	}
	c.X, c.Y = px, py
}
