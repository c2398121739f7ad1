package game

import (
	"math"
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func newSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	ts, err := NewTestSim(opts...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts
}

var (
	moveUp    = Input{Move: Intent(DirUp)}
	moveLeft  = Input{Move: Intent(DirLeft)}
	moveRight = Input{Move: Intent(DirRight)}
	idle      = Input{}
)

// --- Scenario: walk up the cross corridor until the wall stops us ---

func TestScenario_WalkUpUntilWall(t *testing.T) {
	ts := newSim(t, SimLayout(CrossLayout...), SimStart(7, 5))

	prevCell := ts.Player().Cell()
	prevY := ts.Player().Y
	for i := 0; i < 200; i++ {
		ts.Step(moveUp)
		c := ts.Player().Cell()
		if c.Y > prevCell.Y {
			t.Fatalf("tick %d: cell y went from %d to %d while moving up", i, prevCell.Y, c.Y)
		}
		if c.X != 7 {
			t.Fatalf("tick %d: drifted out of column 7 to %v", i, c)
		}
		if ts.Player().Y > prevY {
			t.Fatalf("tick %d: Y increased while moving up", i)
		}
		prevCell, prevY = c, ts.Player().Y
	}
	if prevCell.Y != 1 {
		t.Fatalf("expected to stop in row 1 under the border wall, got %v", prevCell)
	}

	stopY := ts.Player().Y
	ts.RunTicks(30, moveUp)
	if ts.Player().Y != stopY {
		t.Fatalf("position should be stable against the wall: %.3f -> %.3f", stopY, ts.Player().Y)
	}
	if ts.Player().Facing != DirUp {
		t.Fatalf("expected facing up, got %s", ts.Player().Facing)
	}
}

// --- Scenario: enemy path matches BFS ---

func TestScenario_EnemyPathMatchesBFS(t *testing.T) {
	ts := newSim(t, SimStart(7, 5), SimEnemy(3, 3))
	ng := ts.Engine.NavGrid()

	ts.Step(idle)
	e := ts.Enemies()[0]
	want := ng.Distance(Cell{3, 3}, Cell{7, 5}) + 1
	if len(e.CurrentPath) != want {
		dumpLog(t, ts)
		t.Fatalf("expected path of %d cells after the first recompute, got %d", want, len(e.CurrentPath))
	}
	if want != 7 {
		t.Fatalf("expected BFS count 7 between (3,3) and (7,5), got %d", want)
	}

	ts.RunTicks(30, idle)
	from := e.CurrentPath[0]
	ref := ng.FindPath(from, ts.Player().Cell())
	if len(ref) != len(e.CurrentPath) {
		t.Fatalf("recomputed path from %v has %d cells, BFS says %d", from, len(e.CurrentPath), len(ref))
	}
	if n := ts.SimLog.CountCategory("enemy", "path"); n < 2 {
		t.Fatalf("expected at least two recomputes in 31 ticks, got %d", n)
	}
}

// --- Scenario: firing with no ammo ---

func TestScenario_EmptyFire(t *testing.T) {
	ts := newSim(t)
	if len(ts.Rec.Ammo) != 1 || ts.Rec.Ammo[0] != 0 {
		t.Fatalf("expected Init to report ammo 0 once, got %v", ts.Rec.Ammo)
	}
	ts.Step(Input{Fire: true})
	if n := len(ts.Engine.State().Projectiles); n != 0 {
		t.Fatalf("expected no projectile, got %d", n)
	}
	if len(ts.Rec.Ammo) != 1 {
		t.Fatalf("OnAmmoChanged must not fire on an empty trigger, got %v", ts.Rec.Ammo)
	}
	if ts.Engine.Fire() {
		t.Fatal("Fire should report false with no ammo")
	}
}

// --- Scenario: one correct notification while standing on the tile ---

func TestScenario_SingleCorrectAnswer(t *testing.T) {
	ts := newSim(t, SimStart(2, 1))

	at := ts.RunUntil(moveLeft, func(ts *TestSim) bool { return ts.Rec.Correct > 0 }, 120)
	if at < 0 {
		dumpLog(t, ts)
		t.Fatal("never reached the correct answer at (1,1)")
	}
	ts.RunTicks(180, moveLeft)
	if ts.Rec.Correct != 1 {
		t.Fatalf("expected exactly one OnCorrectAnswer, got %d", ts.Rec.Correct)
	}
	if !ts.Engine.State().Cleared || !ts.Engine.Frozen() {
		t.Fatal("a correct answer should clear and freeze the level")
	}
	if ts.Engine.State().Answer.State != AnswerLocked {
		t.Fatalf("resolver should stay locked, got %s", ts.Engine.State().Answer.State)
	}
}

func TestScenario_SingleCorrectAnswer_NoFreeze(t *testing.T) {
	ts := newSim(t, SimStart(2, 1), SimTuning(func(tu *Tuning) { tu.FreezeOnCorrect = false }))
	ts.RunTicks(400, moveLeft)
	if ts.Rec.Correct != 1 {
		t.Fatalf("expected exactly one OnCorrectAnswer while parked on the tile, got %d", ts.Rec.Correct)
	}
	if ts.Engine.Frozen() {
		t.Fatal("engine should keep running with FreezeOnCorrect off")
	}
}

// --- Scenario: wrong answer re-arms after the cooldown ---

func TestScenario_IncorrectAnswerRearms(t *testing.T) {
	ts := newSim(t, SimStart(13, 1))

	ts.RunTicks(200, idle)
	if ts.Rec.Incorrect != 1 {
		t.Fatalf("expected one OnIncorrectAnswer during the cooldown, got %d", ts.Rec.Incorrect)
	}
	ts.RunTicks(30, idle)
	if ts.Rec.Incorrect != 2 {
		dumpLog(t, ts)
		t.Fatalf("expected the resolver to re-arm after 3.5s and fire again, got %d", ts.Rec.Incorrect)
	}
	if !ts.SimLog.HasEntry("answer", "rearm", "") {
		t.Fatal("expected an answer/rearm log entry")
	}
	if ts.Rec.Correct != 0 {
		t.Fatal("wrong answer must not report correct")
	}
}

// --- Scenario: enemy contact kills, freezes, then the level resets ---

func TestScenario_DeathAndReset(t *testing.T) {
	ts := newSim(t,
		SimLayout(CrossLayout...),
		SimStart(7, 5),
		SimEnemy(7, 3),
		SimPlayer(func(p *Player) { p.RespawnGrace = 0 }),
	)

	if ts.RunUntil(idle, func(ts *TestSim) bool { return ts.Player().Dead }, 120) < 0 {
		dumpLog(t, ts)
		t.Fatal("enemy never reached the player")
	}
	if ts.Rec.Collisions != 1 {
		t.Fatalf("expected one OnEnemyCollision, got %d", ts.Rec.Collisions)
	}
	e := ts.Enemies()[0]
	ex, ey := e.X, e.Y
	ts.RunTicks(30, moveRight)
	if ts.Rec.Collisions != 1 {
		t.Fatalf("repeat contact while dead must be a no-op, got %d collisions", ts.Rec.Collisions)
	}
	if e.X != ex || e.Y != ey {
		t.Fatal("enemies must not move during the death freeze")
	}

	if ts.RunUntil(idle, func(ts *TestSim) bool { return !ts.Player().Dead }, 120) < 0 {
		t.Fatal("level never reset after death")
	}
	if c := ts.Player().Cell(); c != (Cell{7, 5}) {
		t.Fatalf("player should be back at the start, got %v", c)
	}
	if ts.Player().RespawnGrace <= 0 {
		t.Fatal("respawn should grant grace")
	}
	if c := ts.Enemies()[0].Cell(); c != (Cell{7, 3}) {
		t.Fatalf("enemy should be back at its spawn, got %v", c)
	}
	if !ts.SimLog.HasEntry("player", "reset", "") {
		t.Fatal("expected a player/reset log entry")
	}
}

// --- Scenario: shoot an approaching enemy, then hit a wall ---

func TestScenario_ShootEnemy(t *testing.T) {
	ts := newSim(t,
		SimLayout(CrossLayout...),
		SimStart(7, 5),
		SimEnemy(7, 1),
		SimPowerUp(PowerUpWeapon, 7, 5),
	)

	ts.Step(idle)
	if ts.Player().Ammo != 3 {
		t.Fatalf("expected 3 ammo after pickup, got %d", ts.Player().Ammo)
	}
	ts.Step(Input{Fire: true})
	if n := len(ts.Engine.State().Projectiles); n != 1 {
		t.Fatalf("expected one projectile in flight, got %d", n)
	}

	e := ts.Enemies()[0]
	if ts.RunUntil(idle, func(*TestSim) bool { return e.Destroyed }, 60) < 0 {
		dumpLog(t, ts)
		t.Fatal("projectile never hit the enemy")
	}
	if len(ts.Engine.State().Explosions) == 0 {
		t.Fatal("expected an explosion at the hit")
	}
	want := []int{0, 3, 2}
	if len(ts.Rec.Ammo) != len(want) {
		t.Fatalf("ammo notifications = %v, want %v", ts.Rec.Ammo, want)
	}
	for i := range want {
		if ts.Rec.Ammo[i] != want[i] {
			t.Fatalf("ammo notifications = %v, want %v", ts.Rec.Ammo, want)
		}
	}

	ts.Step(Input{Fire: true})
	if ts.RunUntil(idle, func(ts *TestSim) bool { return ts.SimLog.HasEntry("combat", "wall", "") }, 60) < 0 {
		t.Fatal("second shot should stop at the border wall")
	}
	if n := len(ts.Engine.State().Projectiles); n != 0 {
		t.Fatalf("expected no projectiles after the wall hit, got %d", n)
	}

	if ts.RunUntil(idle, func(*TestSim) bool { return !e.Destroyed }, 7*60) < 0 {
		t.Fatal("enemy should respawn")
	}
	if !ts.SimLog.HasEntry("enemy", "respawn", "") {
		t.Fatal("expected an enemy/respawn entry")
	}
}

// --- Scenario: shield absorbs contact until it runs out ---

func TestScenario_ShieldProtects(t *testing.T) {
	ts := newSim(t,
		SimLayout(CrossLayout...),
		SimStart(7, 5),
		SimEnemy(7, 3),
		SimPowerUp(PowerUpShield, 7, 5),
		SimPlayer(func(p *Player) { p.RespawnGrace = 0 }),
	)

	ts.RunTicks(5*60, idle)
	if ts.Rec.Collisions != 0 {
		t.Fatal("shielded player must not die")
	}
	if !ts.Player().Shielded {
		t.Fatal("shield should still be up after 5s")
	}
	if ts.RunUntil(idle, func(ts *TestSim) bool { return ts.Player().Dead }, 5*60) < 0 {
		t.Fatal("player should die once the shield expires")
	}
	if ts.Player().Shielded {
		t.Fatal("shield should be down")
	}
}

// --- Scenario: direct steering closes distance in open corridors ---

func TestScenario_DirectSteeringCloses(t *testing.T) {
	ts := newSim(t,
		SimLayout(CrossLayout...),
		SimStart(7, 5),
		SimEnemy(1, 5),
		SimTuning(func(tu *Tuning) { tu.Steering = SteerDirect }),
	)
	px, py := ts.Player().Center()
	e := ts.Enemies()[0]
	d0 := math.Hypot(e.X-px, e.Y-py)
	ts.RunTicks(60, idle)
	d1 := math.Hypot(e.X-px, e.Y-py)
	if d1 >= d0-100 {
		t.Fatalf("direct steering should close in along row 5: %.1f -> %.1f", d0, d1)
	}
}

// --- Scenario: corner assist eases an off-line player back to the lane ---

func TestScenario_CornerAssistCentresInCorridor(t *testing.T) {
	ts := newSim(t,
		SimStart(5, 5),
		SimPlayer(func(p *Player) { p.X += 15 }),
	)
	ax, _ := alignedTopLeft(5, 5)
	startOff := ts.Player().X - ax

	prevOff := startOff
	for i := 0; i < 120; i++ {
		ts.Step(moveUp)
		off := ts.Player().X - ax
		if off > prevOff || off < 0 {
			t.Fatalf("tick %d: lane offset went from %.2f to %.2f", i, prevOff, off)
		}
		prevOff = off
	}
	if prevOff >= startOff/2 {
		t.Fatalf("expected X to ease toward the lane: offset %.2f -> %.2f", startOff, prevOff)
	}
	if c := ts.Player().Cell(); c.X != 5 || c.Y > 4 {
		t.Fatalf("expected to climb out of row 5 in column 5, got %v", c)
	}
}

// --- Scenario: a diagonal intent slides along the blocking wall ---

func TestScenario_DiagonalSlidesAlongWall(t *testing.T) {
	// Row 4 above (7,5) is wall; row 5 is open to the right.
	ts := newSim(t, SimStart(7, 5))
	diag := Input{Move: Vec2{X: 1, Y: -1}}
	x0 := ts.Player().X

	ts.RunTicks(20, diag)
	y20 := ts.Player().Y
	ts.RunTicks(5, diag)
	p := ts.Player()

	if p.X-x0 < 40 {
		t.Fatalf("X should keep advancing along the wall: %.1f -> %.1f", x0, p.X)
	}
	if p.Y != y20 {
		t.Fatalf("Y should hold against the wall: %.2f -> %.2f", y20, p.Y)
	}
	if c := p.Cell(); c.Y != 5 {
		t.Fatalf("player went through the wall into %v", c)
	}
}

// --- Scenario: thrust fades while pushing into a wall ---

func TestScenario_IntensityDecaysWhenBlocked(t *testing.T) {
	ts := newSim(t, SimStart(7, 5))

	ts.RunTicks(5, moveUp)
	if ts.Player().MoveIntensity == 0 {
		t.Fatal("intensity should ramp while moving")
	}
	ts.RunTicks(55, moveUp)
	y := ts.Player().Y
	ts.Step(moveUp)
	if ts.Player().Y != y {
		t.Fatal("player should be stationary against the wall")
	}
	if got := ts.Player().MoveIntensity; got != 0 {
		t.Fatalf("intensity should decay to 0 while stationary, got %.2f", got)
	}
}

// --- Scenario: unreachable player keeps the enemy on its last route ---

func TestScenario_NoPathKeepsPreviousRoute(t *testing.T) {
	ts := newSim(t,
		SimLayout(
			"#########",
			"#?..#...#",
			"#########",
		),
		SimStart(2, 1),
		SimEnemy(6, 1),
	)
	e := ts.Enemies()[0]
	e.CurrentPath = []Cell{{6, 1}, {7, 1}}

	ts.RunTicks(60, idle)

	if ts.SimLog.CountCategory("enemy", "no_path") == 0 {
		dumpLog(t, ts)
		t.Fatal("expected an enemy/no_path entry")
	}
	if ts.SimLog.CountCategory("enemy", "path") != 0 {
		t.Fatal("no route exists, so no path should be installed")
	}
	if len(e.CurrentPath) != 2 || e.CurrentPath[1] != (Cell{7, 1}) {
		t.Fatalf("previous route should be kept, got %v", e.CurrentPath)
	}
	if ts.Player().Dead {
		t.Fatal("walled-off enemy must not reach the player")
	}
}

// --- Scenario: a shot that hits nothing expires after its lifetime ---

func TestScenario_ProjectileExpires(t *testing.T) {
	// Slow shot down row 3 from (3,3): the wall at (7,3) is out of reach.
	ts := newSim(t,
		SimStart(3, 3),
		SimTuning(func(tu *Tuning) { tu.ProjectileSpeed = 50 }),
		SimPlayer(func(p *Player) {
			p.Ammo = 1
			p.Facing = DirRight
		}),
	)
	ts.Step(Input{Fire: true})
	if n := len(ts.Engine.State().Projectiles); n != 1 {
		t.Fatalf("expected one projectile in flight, got %d", n)
	}

	lifetime := int(ts.Engine.Tuning().ProjectileLifetime / SimDT)
	ts.RunTicks(lifetime-10, idle)
	if n := len(ts.Engine.State().Projectiles); n != 1 {
		t.Fatalf("projectile should still fly before its lifetime, got %d", n)
	}
	ts.RunTicks(20, idle)

	if n := len(ts.Engine.State().Projectiles); n != 0 {
		t.Fatalf("expected the projectile to expire, %d left", n)
	}
	if ts.SimLog.CountCategory("combat", "expire") != 1 {
		dumpLog(t, ts)
		t.Fatal("expected one combat/expire entry")
	}
	if ts.SimLog.CountCategory("combat", "wall") != 0 {
		t.Fatal("slow shot should not reach a wall")
	}
}
