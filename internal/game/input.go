package game

import "math"

// Vec2 is a 2-D vector in world units (or a unitless direction).
type Vec2 struct {
	X, Y float64
}

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Input is the per-tick control state. Move is a direction intent; any
// non-zero length is normalised by the movement controller. Fire is an edge
// event: set it on the tick the fire action happened.
type Input struct {
	Move Vec2
	Fire bool
}

// Direction is a cardinal facing.
type Direction uint8

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Unit returns the unit vector for d (screen coordinates, +Y down).
func (d Direction) Unit() Vec2 {
	switch d {
	case DirUp:
		return Vec2{0, -1}
	case DirRight:
		return Vec2{1, 0}
	case DirDown:
		return Vec2{0, 1}
	default:
		return Vec2{-1, 0}
	}
}

// Intent returns the movement intent for a single held direction.
func Intent(d Direction) Vec2 { return d.Unit() }

// dominantDirection returns the facing for the dominant axis of v.
// Ties go to the vertical axis.
func dominantDirection(v Vec2) Direction {
	if math.Abs(v.X) > math.Abs(v.Y) {
		if v.X > 0 {
			return DirRight
		}
		return DirLeft
	}
	if v.Y > 0 {
		return DirDown
	}
	return DirUp
}
