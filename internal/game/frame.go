package game

// CameraView is the resolved camera for one frame.
type CameraView struct {
	X, Y float64 // world point at the viewport centre
	Zoom float64
	Mode CameraMode
}

// RenderFrame is everything a renderer needs to draw one full frame. The
// slices are reused by the next Tick; renderers must not retain them.
type RenderFrame struct {
	Tick     int
	Time     float64
	Level    string
	Question string

	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	PowerUps    []PowerUp
	Explosions  []Explosion
	Camera      CameraView

	Answer     AnswerState
	LastAnswer AnswerOption

	Frozen  bool
	Paused  bool
	Cleared bool
	Dead    bool
	// DeathProgress runs 0 -> 1 across the death freeze.
	DeathProgress float64
}

// buildFrame snapshots the state into the engine's reusable frame.
func (eng *Engine) buildFrame() RenderFrame {
	st := &eng.state
	f := &eng.frame
	f.Tick = st.Tick
	f.Time = st.Time
	f.Level = eng.level.desc.Name
	f.Question = eng.level.desc.Question
	f.Player = st.Player

	f.Enemies = f.Enemies[:0]
	for _, e := range st.Enemies {
		f.Enemies = append(f.Enemies, *e)
	}
	f.Projectiles = append(f.Projectiles[:0], st.Projectiles...)
	f.PowerUps = append(f.PowerUps[:0], st.PowerUps...)
	f.Explosions = append(f.Explosions[:0], st.Explosions...)

	ww, wh := eng.level.grid.WorldSize()
	f.Camera = CameraView{
		X:    st.Camera.X,
		Y:    st.Camera.Y,
		Zoom: Zoom(eng.cameraMode, eng.viewW, eng.viewH, ww, wh),
		Mode: eng.cameraMode,
	}
	f.Answer = st.Answer.State
	f.LastAnswer = st.Answer.Option

	f.Frozen = eng.frozen()
	f.Paused = st.Paused
	f.Cleared = st.Cleared
	f.Dead = st.Player.Dead
	f.DeathProgress = 0
	if st.Player.Dead && eng.tuning.DeathResetDelay > 0 {
		f.DeathProgress = clamp01(1 - st.DeathTimer/eng.tuning.DeathResetDelay)
	}
	return *f
}
