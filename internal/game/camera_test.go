package game

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestZoom_Modes(t *testing.T) {
	const ww, wh = 960, 704
	cases := []struct {
		name         string
		mode         CameraMode
		viewW, viewH float64
		want         float64
	}{
		{"desktop chase", CameraChase, 1280, 720, 1.0},
		{"desktop field", CameraField, 1280, 720, 0.8693},
		{"desktop mobile", CameraMobile, 1280, 720, 0.8693},
		{"tablet chase", CameraChase, 800, 600, 0.7244},
		{"phone chase", CameraChase, 400, 300, 0.7},
		{"phone mobile", CameraMobile, 400, 300, 0.6},
		{"phone field", CameraField, 400, 300, 0.3622},
		{"zero viewport", CameraField, 0, 0, 1.0},
	}
	for _, tc := range cases {
		got := Zoom(tc.mode, tc.viewW, tc.viewH, ww, wh)
		if !approx(got, tc.want) {
			t.Errorf("%s: Zoom = %.4f, want %.4f", tc.name, got, tc.want)
		}
	}
}

func TestCamera_ClampOnlyWhenMazeIsLarger(t *testing.T) {
	c := Camera{X: 10, Y: 10}
	c.Clamp(960, 704, 800, 600, 1)
	if c.X != 400 || c.Y != 300 {
		t.Fatalf("expected clamp to (400,300), got (%v,%v)", c.X, c.Y)
	}

	c = Camera{X: 10, Y: 10}
	c.Clamp(960, 704, 1280, 720, 1)
	if c.X != 10 || c.Y != 10 {
		t.Fatalf("maze smaller than the viewport must not clamp, got (%v,%v)", c.X, c.Y)
	}

	c = Camera{X: 950, Y: 700}
	c.Clamp(960, 704, 800, 600, 1)
	if c.X != 560 || c.Y != 404 {
		t.Fatalf("expected clamp to (560,404), got (%v,%v)", c.X, c.Y)
	}
}

func TestCamera_FollowLerps(t *testing.T) {
	var c Camera
	c.Follow(CameraChase, 100, 200, 960, 704, 1280, 720, 1, 10, 0.05, false)
	if !approx(c.X, 50) || !approx(c.Y, 100) {
		t.Fatalf("expected half-way lerp to (50,100), got (%v,%v)", c.X, c.Y)
	}
	c.Follow(CameraChase, 100, 200, 960, 704, 1280, 720, 1, 10, 1, false)
	if c.X != 100 || c.Y != 200 {
		t.Fatalf("rate*dt >= 1 should land on target, got (%v,%v)", c.X, c.Y)
	}
}

func TestCamera_FieldCentresMaze(t *testing.T) {
	ts := newSim(t, SimViewport(400, 300, CameraField))
	f := ts.RunTicks(5, moveLeft)
	if !approx(f.Camera.X, 480) || !approx(f.Camera.Y, 352) {
		t.Fatalf("field camera should sit on the maze centre, got (%v,%v)", f.Camera.X, f.Camera.Y)
	}
	if !approx(f.Camera.Zoom, 0.3622) {
		t.Fatalf("field zoom = %v", f.Camera.Zoom)
	}
}

func TestCamera_ChaseStaysInsideMaze(t *testing.T) {
	// At 400x300 chase zooms to 0.7, so the maze is wider than the view.
	ts := newSim(t, SimViewport(400, 300, CameraChase), SimStart(1, 9))
	for i := 0; i < 120; i++ {
		f := ts.Step(moveLeft)
		halfW := 400 / f.Camera.Zoom / 2
		if f.Camera.X < halfW-1e-9 {
			t.Fatalf("tick %d: camera X %.2f shows past the left edge (half width %.2f)", i, f.Camera.X, halfW)
		}
	}
}

func TestParseCameraMode(t *testing.T) {
	for _, s := range []string{"chase", "field", "mobile"} {
		if _, err := ParseCameraMode(s); err != nil {
			t.Errorf("ParseCameraMode(%q): %v", s, err)
		}
	}
	if _, err := ParseCameraMode("orbit"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
