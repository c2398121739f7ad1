package game

import (
	"fmt"
	"math"
	"math/rand"
)

// EngineState is the complete mutable simulation state for one level. It
// is rebuilt from the level descriptor by Init.
type EngineState struct {
	Tick int
	Time float64

	Player      Player
	Enemies     []*Enemy
	Projectiles []Projectile
	PowerUps    []PowerUp
	Explosions  []Explosion
	Camera      Camera
	Answer      AnswerResolver

	Paused     bool
	Cleared    bool
	DeathTimer float64
	Deaths     int

	nextProjectileID int
}

// Engine drives one playable level. It is single-threaded: call every
// method from the goroutine that calls Tick.
type Engine struct {
	tuning   Tuning
	level    *level
	nav      *NavGrid
	listener Listener
	log      *SimLog
	rng      *rand.Rand

	state EngineState
	frame RenderFrame

	cameraMode   CameraMode
	viewW, viewH float64
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithTuning replaces DefaultTuning.
func WithTuning(t Tuning) EngineOption {
	return func(eng *Engine) { eng.tuning = t }
}

// WithListener sets the notification sink.
func WithListener(l Listener) EngineOption {
	return func(eng *Engine) {
		if l != nil {
			eng.listener = l
		}
	}
}

// WithSimLog records engine events into l.
func WithSimLog(l *SimLog) EngineOption {
	return func(eng *Engine) {
		if l != nil {
			eng.log = l
		}
	}
}

// WithSeed seeds the RNG used by wander steering.
func WithSeed(seed int64) EngineOption {
	return func(eng *Engine) {
		eng.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithCameraMode sets the initial camera mode.
func WithCameraMode(m CameraMode) EngineOption {
	return func(eng *Engine) { eng.cameraMode = m }
}

// WithViewport sets the initial viewport size in screen pixels.
func WithViewport(w, h float64) EngineOption {
	return func(eng *Engine) { eng.viewW, eng.viewH = w, h }
}

// NewEngine validates desc, builds the level and runs Init.
func NewEngine(desc LevelDescriptor, opts ...EngineOption) (*Engine, error) {
	eng := &Engine{
		tuning:     DefaultTuning(),
		listener:   NopListener{},
		log:        NewBoundedSimLog(2000, false),
		cameraMode: CameraChase,
	}
	for _, o := range opts {
		o(eng)
	}
	if eng.rng == nil {
		eng.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	if err := eng.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if err := eng.Load(desc); err != nil {
		return nil, err
	}
	return eng, nil
}

// Load swaps in a new level and initialises it. On error the previous
// level stays loaded.
func (eng *Engine) Load(desc LevelDescriptor) error {
	lv, err := compileLevel(desc)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	eng.level = lv
	eng.nav = NewNavGrid(lv.grid)
	eng.Init()
	return nil
}

// Init rebuilds every entity from the loaded level. Tick and Time keep
// counting so log entries stay ordered across resets.
func (eng *Engine) Init() {
	st := &eng.state
	lv := eng.level

	st.Player = newPlayer(lv.desc.Start, eng.tuning)
	st.Enemies = st.Enemies[:0]
	for i, c := range lv.enemies {
		st.Enemies = append(st.Enemies, newEnemy(i, c))
	}
	st.Projectiles = st.Projectiles[:0]
	st.Explosions = st.Explosions[:0]
	st.PowerUps = st.PowerUps[:0]
	for _, p := range lv.powerUps {
		st.PowerUps = append(st.PowerUps, newPowerUp(p))
	}
	st.Answer.Reset()
	st.Cleared = false
	st.DeathTimer = 0

	ww, wh := lv.grid.WorldSize()
	px, py := st.Player.Center()
	st.Camera.Snap(eng.cameraMode, px, py, ww, wh)
	if eng.tuning.CameraClamp && eng.cameraMode != CameraField {
		st.Camera.Clamp(ww, wh, eng.viewW, eng.viewH, Zoom(eng.cameraMode, eng.viewW, eng.viewH, ww, wh))
	}

	eng.log.Add(st.Tick, "--", "level", "init",
		fmt.Sprintf("%s enemies=%d powerups=%d", lv.desc.Name, len(st.Enemies), len(st.PowerUps)),
		float64(len(st.Enemies)))
	eng.listener.OnAmmoChanged(0)
}

// Tick advances the simulation by dt seconds and returns the frame to draw.
// dt is clamped to [0, MaxTickDelta].
func (eng *Engine) Tick(dt float64, in Input) RenderFrame {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	if dt > eng.tuning.MaxTickDelta {
		dt = eng.tuning.MaxTickDelta
	}
	st := &eng.state
	st.Tick++
	st.Time += dt

	if st.Player.Dead && !st.Paused {
		st.DeathTimer -= dt
		if st.DeathTimer <= 0 {
			eng.log.Add(st.Tick, "P", "player", "reset", eng.level.desc.Name, 0)
			eng.Init()
		}
	}

	if !eng.frozen() {
		if in.Fire {
			eng.Fire()
		}
		st.Player.tickTimers(dt)
		if st.Player.move(eng.level.grid, in.Move, dt, eng.tuning) {
			px, py := st.Player.Center()
			eng.log.AddVerbose(st.Tick, "P", "move", "position", fmt.Sprintf("(%.1f,%.1f)", px, py), 0)
		}
	}

	eng.updateEnemies(dt)

	if !eng.frozen() {
		eng.updateProjectiles(dt)
		eng.updatePowerUps()
		eng.updateAnswer(dt)
	}
	eng.updateExplosions(dt)
	eng.updateCamera(dt)
	return eng.buildFrame()
}

func (eng *Engine) frozen() bool {
	st := &eng.state
	return st.Paused || st.Player.Dead || (st.Cleared && eng.tuning.FreezeOnCorrect)
}

// killPlayer handles enemy contact. Repeated calls while dead do nothing.
func (eng *Engine) killPlayer(by *Enemy) {
	st := &eng.state
	if st.Player.Dead {
		return
	}
	st.Player.Dead = true
	st.Player.VX, st.Player.VY = 0, 0
	st.DeathTimer = eng.tuning.DeathResetDelay
	st.Deaths++
	eng.log.Add(st.Tick, "P", "player", "death", "caught by "+by.Label(), float64(st.Deaths))
	eng.listener.OnEnemyCollision()
}

func (eng *Engine) updateAnswer(dt float64) {
	st := &eng.state
	if st.Player.Dead {
		return
	}
	switch st.Answer.Step(dt, st.Player.Cell(), eng.level.options, eng.tuning.AnswerCooldown) {
	case VerdictCorrect:
		st.Cleared = true
		eng.log.Add(st.Tick, "P", "answer", "correct", st.Answer.Option.Text, 1)
		eng.listener.OnCorrectAnswer()
	case VerdictIncorrect:
		eng.log.Add(st.Tick, "P", "answer", "incorrect", st.Answer.Option.Text, 0)
		eng.listener.OnIncorrectAnswer()
	case VerdictRearmed:
		eng.log.Add(st.Tick, "P", "answer", "rearm", "", 0)
	}
}

func (eng *Engine) updateCamera(dt float64) {
	st := &eng.state
	ww, wh := eng.level.grid.WorldSize()
	zoom := Zoom(eng.cameraMode, eng.viewW, eng.viewH, ww, wh)
	px, py := st.Player.Center()
	st.Camera.Follow(eng.cameraMode, px, py, ww, wh, eng.viewW, eng.viewH, zoom,
		eng.tuning.CameraRate, dt, eng.tuning.CameraClamp)
}

// Pause freezes or resumes the simulation. Frames are still produced.
func (eng *Engine) Pause(p bool) { eng.state.Paused = p }

// Paused reports the external pause flag.
func (eng *Engine) Paused() bool { return eng.state.Paused }

// Frozen reports whether entity movement is currently suspended.
func (eng *Engine) Frozen() bool { return eng.frozen() }

// SetViewport updates the screen size used for zoom and clamping.
func (eng *Engine) SetViewport(w, h float64) { eng.viewW, eng.viewH = w, h }

// SetCameraMode switches framing. The camera keeps its position and eases
// to the new target.
func (eng *Engine) SetCameraMode(m CameraMode) { eng.cameraMode = m }

// CameraMode returns the active camera mode.
func (eng *Engine) CameraMode() CameraMode { return eng.cameraMode }

// SetListener replaces the notification sink. nil restores NopListener.
func (eng *Engine) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	eng.listener = l
}

// State exposes the live state. Mutating it from outside Tick is only
// meant for tests and tools.
func (eng *Engine) State() *EngineState { return &eng.state }

// Grid returns the loaded maze.
func (eng *Engine) Grid() *Grid { return eng.level.grid }

// NavGrid returns the pathfinder for the loaded maze.
func (eng *Engine) NavGrid() *NavGrid { return eng.nav }

// Level returns the loaded descriptor.
func (eng *Engine) Level() LevelDescriptor { return eng.level.desc }

// Options returns the answer options in descriptor order.
func (eng *Engine) Options() []AnswerOption { return eng.level.desc.Options }

// Tuning returns the active tuning.
func (eng *Engine) Tuning() Tuning { return eng.tuning }

// Log returns the engine's event log.
func (eng *Engine) Log() *SimLog { return eng.log }
