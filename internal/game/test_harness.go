package game

import (
	"fmt"
)

// SimDT is the fixed tick length used by the headless harness (60 Hz).
const SimDT = 1.0 / 60.0

// StandardLayout is the stock 15x11 maze with three answer tiles.
var StandardLayout = []string{
	"###############",
	"#?...#...#...?#",
	"###.##.#.##.###",
	"#......#......#",
	"#.###.###.###.#",
	"#.#.........#.#",
	"#.#.#######.#.#",
	"#......#......#",
	"###.##.#.##.###",
	"#...#..?..#...#",
	"###############",
}

// CrossLayout has a long vertical corridor through column 7 and a
// horizontal one through row 5.
var CrossLayout = []string{
	"###############",
	"#?...........?#",
	"#.#####.#####.#",
	"#.#####.#####.#",
	"#.#####.#####.#",
	"#.............#",
	"#.#####.#####.#",
	"#.#####.#####.#",
	"#.#####.#####.#",
	"#......?......#",
	"###############",
}

// Recorder is a Listener that counts every notification.
type Recorder struct {
	Correct    int
	Incorrect  int
	Collisions int
	Ammo       []int // every OnAmmoChanged value in order
}

func (r *Recorder) OnCorrectAnswer()       { r.Correct++ }
func (r *Recorder) OnIncorrectAnswer()     { r.Incorrect++ }
func (r *Recorder) OnEnemyCollision()      { r.Collisions++ }
func (r *Recorder) OnAmmoChanged(ammo int) { r.Ammo = append(r.Ammo, ammo) }

// TestSim is a headless simulation harness used by tests and the headless
// report. It wraps an Engine running at a fixed tick with a Recorder and a
// full SimLog attached.
type TestSim struct {
	Engine *Engine
	Rec    *Recorder
	SimLog *SimLog

	desc     LevelDescriptor
	explicit bool // options were given explicitly
	tuning   Tuning
	seed     int64
	verbose  bool
	viewW    float64
	viewH    float64
	camera   CameraMode
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // layout, tuning, seed, verbose; applied first
	simOptPlace                        // start, enemies, power-ups, answers
	simOptTweak                        // adjustments to the finished descriptor
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// SimLayout sets the maze from text rows (see ParseLayout).
func SimLayout(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.desc.Grid = MustParseLayout(rows...)
	}}
}

// SimLevel starts from a complete descriptor instead of the defaults.
func SimLevel(d LevelDescriptor) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.desc = d
		ts.explicit = len(d.Options) > 0
	}}
}

// SimTuning adjusts the default tuning.
func SimTuning(fn func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { fn(&ts.tuning) }}
}

// SimSeed sets the RNG seed for deterministic runs.
func SimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// SimVerbose enables per-tick position logging.
func SimVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// SimViewport sets the viewport size and camera mode.
func SimViewport(w, h float64, mode CameraMode) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.viewW, ts.viewH, ts.camera = w, h, mode
	}}
}

// SimStart sets the player start cell.
func SimStart(x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) { ts.desc.Start = Cell{X: x, Y: y} }}
}

// SimEnemy adds an enemy spawn.
func SimEnemy(x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.desc.Enemies = append(ts.desc.Enemies, Cell{X: x, Y: y})
	}}
}

// SimPowerUp adds a power-up.
func SimPowerUp(kind PowerUpKind, x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.desc.PowerUps = append(ts.desc.PowerUps, PowerUpSpec{Kind: kind, Cell: Cell{X: x, Y: y}})
	}}
}

// SimAnswer binds an answer option. Once any SimAnswer is given, answer
// tiles are no longer auto-bound.
func SimAnswer(text string, correct bool, x, y int) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.explicit = true
		ts.desc.Options = append(ts.desc.Options, AnswerOption{Text: text, IsCorrect: correct, Cell: Cell{X: x, Y: y}})
	}}
}

// SimPlayer edits the player right after construction.
func SimPlayer(fn func(*Player)) SimOption {
	return SimOption{simOptTweak, func(ts *TestSim) { fn(&ts.Engine.State().Player) }}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (layout, tuning, seed, verbose)
//  2. Placements (start, enemies, power-ups, answers)
//  3. Auto-bind remaining answer tiles, build the Engine
//  4. Post-construction tweaks
//
// Without SimAnswer options, answer tiles are bound in row-major order and
// the first one is correct.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		desc: LevelDescriptor{
			Name:     "test",
			Question: "test question",
			Start:    Cell{X: 7, Y: 5},
		},
		tuning: DefaultTuning(),
		seed:   1,
		camera: CameraChase,
	}
	ts.desc.Grid = MustParseLayout(StandardLayout...)

	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptPlace {
			o.fn(ts)
		}
	}
	if !ts.explicit {
		ts.autoBindAnswers()
	}

	ts.Rec = &Recorder{}
	ts.SimLog = NewSimLog(ts.verbose)
	eng, err := NewEngine(ts.desc,
		WithTuning(ts.tuning),
		WithListener(ts.Rec),
		WithSimLog(ts.SimLog),
		WithSeed(ts.seed),
		WithViewport(ts.viewW, ts.viewH),
		WithCameraMode(ts.camera),
	)
	if err != nil {
		return nil, err
	}
	ts.Engine = eng

	for _, o := range opts {
		if o.kind == simOptTweak {
			o.fn(ts)
		}
	}
	return ts, nil
}

func (ts *TestSim) autoBindAnswers() {
	g, err := NewGrid(ts.desc.Grid)
	if err != nil {
		return
	}
	ts.desc.Options = ts.desc.Options[:0]
	for i, c := range g.Cells(TileAnswer) {
		ts.desc.Options = append(ts.desc.Options, AnswerOption{
			Text:      fmt.Sprintf("option %d", i+1),
			IsCorrect: i == 0,
			Cell:      c,
		})
	}
}

// Player returns the live player.
func (ts *TestSim) Player() *Player { return &ts.Engine.State().Player }

// Enemies returns the live enemies.
func (ts *TestSim) Enemies() []*Enemy { return ts.Engine.State().Enemies }

// Step advances one tick with the given input.
func (ts *TestSim) Step(in Input) RenderFrame {
	return ts.Engine.Tick(SimDT, in)
}

// RunTicks advances the simulation n ticks holding the same input. Fire is
// only applied on the first tick.
func (ts *TestSim) RunTicks(n int, in Input) RenderFrame {
	var f RenderFrame
	for i := 0; i < n; i++ {
		f = ts.Step(in)
		in.Fire = false
	}
	return f
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(in Input, predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(in)
		in.Fire = false
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// RunAutopilot drives the player with an Autopilot until the level is
// cleared or maxTicks pass. Returns the clearing tick or -1.
func (ts *TestSim) RunAutopilot(maxTicks int) int {
	ap := NewAutopilot(ts.Engine)
	for i := 0; i < maxTicks; i++ {
		ts.Step(ap.Next(SimDT))
		if ts.Engine.State().Cleared {
			return ts.CurrentTick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Engine.State().Tick
}
