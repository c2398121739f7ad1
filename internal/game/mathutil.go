package game

import "math"

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// lerpAngle moves current toward target by step along the shortest arc.
func lerpAngle(current, target, step float64) float64 {
	return current + normalizeAngle(target-current)*step
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
