package game

import (
	"math"
	"testing"
)

// --- Invariant helpers ---

// checkNeverInWall fails if the player's inset box overlaps a wall.
func checkNeverInWall(t *testing.T, ts *TestSim, tick int) {
	t.Helper()
	p := ts.Player()
	if ts.Engine.Grid().IsBlocked(p.X, p.Y, playerSize, playerPadding) {
		t.Fatalf("tick %d: player box at (%.1f,%.1f) overlaps a wall", tick, p.X, p.Y)
	}
}

// checkCellStep fails if the player moved more than one cell in a tick.
func checkCellStep(t *testing.T, prev, cur Cell, tick int) {
	t.Helper()
	dx, dy := cur.X-prev.X, cur.Y-prev.Y
	if dx*dx+dy*dy > 1 {
		t.Fatalf("tick %d: player jumped from %v to %v", tick, prev, cur)
	}
}

func TestInvariant_NoTunnellingWithHugeDelta(t *testing.T) {
	ts := newSim(t, SimStart(7, 5))
	inputs := []Input{moveUp, moveLeft, moveRight, {Move: Vec2{X: 0.7, Y: -0.7}}, {Move: Intent(DirDown)}}

	prev := ts.Player().Cell()
	tick := 0
	for _, in := range inputs {
		for i := 0; i < 40; i++ {
			ts.Engine.Tick(10, in) // clamped to MaxTickDelta
			tick++
			checkNeverInWall(t, ts, tick)
			cur := ts.Player().Cell()
			checkCellStep(t, prev, cur, tick)
			prev = cur
		}
	}
}

func TestInvariant_DeltaClamped(t *testing.T) {
	ts := newSim(t)
	st := ts.Engine.State()

	ts.Engine.Tick(-1, idle)
	if st.Time != 0 {
		t.Fatalf("negative dt must clamp to 0, time=%v", st.Time)
	}
	ts.Engine.Tick(math.NaN(), idle)
	if st.Time != 0 {
		t.Fatalf("NaN dt must clamp to 0, time=%v", st.Time)
	}
	ts.Engine.Tick(5, idle)
	if math.Abs(st.Time-DefaultTuning().MaxTickDelta) > 1e-12 {
		t.Fatalf("large dt must clamp to MaxTickDelta, time=%v", st.Time)
	}
	if st.Tick != 3 {
		t.Fatalf("every call is a tick, got %d", st.Tick)
	}
}

func TestInvariant_ProjectilesNeverSkipWalls(t *testing.T) {
	ts := newSim(t, SimStart(7, 5), SimPlayer(func(p *Player) { p.Ammo = 1 }))
	// Facing up at (7,5) puts a one-cell wall directly ahead.
	ts.Engine.Tick(10, Input{Fire: true})
	ts.Engine.Tick(10, idle)
	if n := len(ts.Engine.State().Projectiles); n != 0 {
		t.Fatalf("projectile should have been stopped by the wall, %d in flight", n)
	}
	if !ts.SimLog.HasEntry("combat", "wall", "") {
		t.Fatal("expected a combat/wall entry")
	}
}

func TestInvariant_PickupsAreSingleUse(t *testing.T) {
	ts := newSim(t, SimStart(7, 5), SimPowerUp(PowerUpWeapon, 7, 5))
	ts.RunTicks(120, idle)
	if ts.Player().Ammo != 3 {
		t.Fatalf("expected ammo 3 after standing on the pickup, got %d", ts.Player().Ammo)
	}
	if len(ts.Rec.Ammo) != 2 || ts.Rec.Ammo[1] != 3 {
		t.Fatalf("expected exactly one pickup notification, got %v", ts.Rec.Ammo)
	}
	if !ts.Engine.State().PowerUps[0].Picked {
		t.Fatal("power-up should be marked picked")
	}
	if n := ts.SimLog.CountCategory("powerup", "pickup"); n != 1 {
		t.Fatalf("expected one pickup log entry, got %d", n)
	}
}

func TestInvariant_ResolverIdempotent(t *testing.T) {
	opts := map[Cell]AnswerOption{
		{1, 1}: {Text: "yes", IsCorrect: true, Cell: Cell{1, 1}},
		{2, 1}: {Text: "no", Cell: Cell{2, 1}},
	}
	var r AnswerResolver
	if v := r.Step(0.1, Cell{1, 1}, opts, 3.5); v != VerdictCorrect {
		t.Fatalf("first step on the correct tile = %v, want correct", v)
	}
	for i := 0; i < 1000; i++ {
		if v := r.Step(0.1, Cell{1, 1}, opts, 3.5); v != VerdictNone {
			t.Fatalf("step %d after correct = %v, want none", i, v)
		}
	}
	if !r.Held() {
		t.Fatal("resolver should hold after a correct answer")
	}
	r.Reset()
	if r.State != AnswerArmed {
		t.Fatal("Reset should re-arm")
	}

	if v := r.Step(0.1, Cell{2, 1}, opts, 0.25); v != VerdictIncorrect {
		t.Fatalf("wrong tile = %v, want incorrect", v)
	}
	if v := r.Step(0.1, Cell{2, 1}, opts, 0.25); v != VerdictNone {
		t.Fatalf("during cooldown = %v, want none", v)
	}
	if v := r.Step(0.1, Cell{2, 1}, opts, 0.25); v != VerdictNone {
		t.Fatalf("during cooldown = %v, want none", v)
	}
	if v := r.Step(0.1, Cell{2, 1}, opts, 0.25); v != VerdictRearmed {
		t.Fatalf("after cooldown = %v, want rearmed", v)
	}
	if v := r.Step(0.1, Cell{5, 5}, opts, 0.25); v != VerdictNone {
		t.Fatalf("off any tile = %v, want none", v)
	}
}

func TestInvariant_TickMonotonicAcrossResets(t *testing.T) {
	ts := newSim(t,
		SimLayout(CrossLayout...),
		SimStart(7, 5),
		SimEnemy(7, 4),
		SimPlayer(func(p *Player) { p.RespawnGrace = 0 }),
	)
	ts.RunTicks(300, idle)
	last := -1
	for _, e := range ts.SimLog.Entries() {
		if e.Tick < last {
			t.Fatalf("log tick went backwards: %d after %d", e.Tick, last)
		}
		last = e.Tick
	}
	if ts.SimLog.CountCategory("player", "reset") == 0 {
		t.Fatal("expected at least one reset in 5s with an enemy next to the start")
	}
}
