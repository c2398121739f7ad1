// Package view is the ebiten front end: input adapters, the full-frame
// renderer and the session screens.
package view

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Quiz-Pursuit/internal/controls"
	"github.com/Garsondee/Quiz-Pursuit/internal/game"
	"github.com/Garsondee/Quiz-Pursuit/internal/session"
	"github.com/Garsondee/Quiz-Pursuit/internal/settings"
)

const (
	reportTicks     = 300 // log window copied by F9
	toastTime       = 2.0 // s
	demoEngageDelay = 1.0 // s the demo lingers on each briefing
	demoResultDelay = 4.0 // s before the demo restarts
	shakeAmplitude  = 10.0
	mousePointer    = -1 // pointer id used when the mouse drives the pad
)

// ErrQuit is returned from Update when the player closes the game.
var ErrQuit = errors.New("quit")

// Config wires a Game.
type Config struct {
	Session  *session.Session
	Settings *settings.Manager // nil keeps defaults in memory
	Demo     bool              // autopilot plays
}

// Game implements ebiten.Game around a session.
type Game struct {
	sess  *session.Session
	prefs *settings.Manager
	fonts *fonts
	pad   *controls.Pad

	demo      bool
	autopilot *game.Autopilot
	demoTimer float64
	lastLevel int
	lastPhase session.Phase

	width, height int
	worldBuf      *ebiten.Image
	frame         game.RenderFrame
	rng           *rand.Rand

	toast     string
	toastLeft float64
	tapped    bool
	touchIDs  []ebiten.TouchID
}

// New builds the front end. The session's engine gets the stored camera
// mode.
func New(cfg Config) (*Game, error) {
	if cfg.Session == nil {
		return nil, errors.New("view: nil session")
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	prefs := cfg.Settings
	if prefs == nil {
		prefs = settings.NewManager(nil)
	}
	g := &Game{
		sess:      cfg.Session,
		prefs:     prefs,
		fonts:     f,
		pad:       controls.NewPad(1280, 720),
		demo:      cfg.Demo,
		autopilot: game.NewAutopilot(cfg.Session.Engine()),
		lastLevel: cfg.Session.LevelNumber(),
		lastPhase: cfg.Session.Phase(),
		width:     1280,
		height:    720,
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- screen shake only
	}
	cfg.Session.Engine().SetCameraMode(prefs.Get().CameraMode)
	cfg.Session.Engine().SetViewport(float64(g.width), float64(g.height))
	return g, nil
}

// Update runs one fixed tick.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.tapped = false

	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handleTouches()
	in := g.readInput()

	if g.demo {
		in = g.demoInput(dt)
	}
	switch g.sess.Phase() {
	case session.PhaseBriefing:
		if !g.demo && g.confirmPressed() {
			g.sess.Engage()
			in.Fire = false
		}
	case session.PhaseResult, session.PhaseGameOver:
		if !g.demo && g.confirmPressed() {
			if err := g.sess.Restart(); err != nil {
				return err
			}
		}
	}

	frame, err := g.sess.Update(dt, in)
	if err != nil {
		return fmt.Errorf("session update: %w", err)
	}
	g.frame = frame

	if n, ph := g.sess.LevelNumber(), g.sess.Phase(); n != g.lastLevel || ph != g.lastPhase {
		g.autopilot.Reset()
		g.demoTimer = 0
		g.lastLevel, g.lastPhase = n, ph
	}
	if g.toastLeft > 0 {
		g.toastLeft -= dt
	}
	return nil
}

func (g *Game) handleKeys() error {
	eng := g.sess.Engine()
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		return ErrQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := clipboard.WriteAll(eng.DebugReport(reportTicks)); err != nil {
			log.Printf("[View] failed to copy debug report: %v", err)
			g.showToast("clipboard unavailable")
		} else {
			g.showToast("debug report copied")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.prefs.SetShowDebug(!g.prefs.Get().ShowDebug)
		g.savePrefs()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		mode := g.prefs.CycleCameraMode()
		eng.SetCameraMode(mode)
		g.savePrefs()
		g.showToast("camera: " + string(mode))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.prefs.SetTouchControls(!g.prefs.Get().TouchControls)
		g.savePrefs()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.pad.UseDPad = !g.pad.UseDPad
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && g.sess.Phase() == session.PhasePlaying {
		g.sess.SetPaused(!g.sess.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := g.sess.Restart(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.demo = !g.demo
		g.autopilot.Reset()
	}
	return nil
}

// handleTouches feeds touches, and the mouse, to the pad. Taps the pad
// does not use count as confirm presses.
func (g *Game) handleTouches() {
	touchOn := g.prefs.Get().TouchControls

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		if !touchOn || !g.pad.TouchBegan(int(id), float64(x), float64(y)) {
			g.tapped = true
		}
	}
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.pad.TouchMoved(int(id), float64(x), float64(y))
	}
	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		g.pad.TouchEnded(int(id))
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if !touchOn || !g.pad.TouchBegan(mousePointer, float64(mx), float64(my)) {
			g.tapped = true
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.pad.TouchMoved(mousePointer, float64(mx), float64(my))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pad.TouchEnded(mousePointer)
	}
}

// readInput maps arrows/WASD to a held intent and Space to fire.
func (g *Game) readInput() game.Input {
	var keys game.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		keys.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		keys.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		keys.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		keys.Y++
	}
	move := keys
	if g.prefs.Get().TouchControls {
		move = g.pad.Intent(keys)
	}
	fire := inpututil.IsKeyJustPressed(ebiten.KeySpace) || g.pad.TakeFire()
	return game.Input{Move: move, Fire: fire}
}

func (g *Game) confirmPressed() bool {
	return g.tapped ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// demoInput lets the autopilot play and walks through the screens on
// timers.
func (g *Game) demoInput(dt float64) game.Input {
	switch g.sess.Phase() {
	case session.PhaseBriefing:
		g.demoTimer += dt
		if g.demoTimer >= demoEngageDelay {
			g.sess.Engage()
		}
		return game.Input{}
	case session.PhaseResult, session.PhaseGameOver:
		g.demoTimer += dt
		if g.demoTimer >= demoResultDelay {
			if err := g.sess.Restart(); err != nil {
				log.Printf("[View] demo restart failed: %v", err)
			}
		}
		return game.Input{}
	}
	return g.autopilot.Next(dt)
}

func (g *Game) savePrefs() {
	if err := g.prefs.Save(); err != nil {
		log.Printf("[View] %v", err)
	}
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastLeft = toastTime
}

// shakeOffset jitters the world during the death freeze, fading out as
// the reset approaches.
func (g *Game) shakeOffset() (float64, float64) {
	if !g.frame.Dead {
		return 0, 0
	}
	a := shakeAmplitude * (1 - g.frame.DeathProgress)
	return (g.rng.Float64()*2 - 1) * a, (g.rng.Float64()*2 - 1) * a
}

// Layout follows the window size and keeps the engine viewport in sync.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sess.Engine().SetViewport(float64(g.width), float64(g.height))
		g.pad.Layout(float64(g.width), float64(g.height))
	}
	return g.width, g.height
}
