package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Quiz-Pursuit/internal/session"
)

// Draw redraws the whole screen from the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	switch g.sess.Phase() {
	case session.PhaseResult, session.PhaseGameOver:
		g.drawResult(screen)
		g.drawToast(screen)
		return
	}

	g.drawWorld(screen)
	if g.frame.Dead {
		vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), colGlitch, false)
	}

	if g.sess.Phase() == session.PhaseBriefing {
		g.drawBriefing(screen)
	} else {
		g.drawHUD(screen)
		g.drawFeedback(screen)
		if g.prefs.Get().TouchControls {
			g.drawPad(screen)
		}
		if g.sess.Paused() {
			g.drawCentred(screen, "PAUSED", 40, colAccent)
		}
	}
	if g.prefs.Get().ShowDebug {
		g.drawFeed(screen, g.sess.Engine().Log())
	}
	g.drawToast(screen)
}

// drawWorld renders the maze into worldBuf, then blits it with the camera
// transform and any screen shake.
func (g *Game) drawWorld(screen *ebiten.Image) {
	ww, wh := g.sess.Engine().Grid().WorldSize()
	if g.worldBuf == nil || g.worldBuf.Bounds().Dx() != int(ww) || g.worldBuf.Bounds().Dy() != int(wh) {
		if g.worldBuf != nil {
			g.worldBuf.Deallocate()
		}
		g.worldBuf = ebiten.NewImage(int(ww), int(wh))
	}
	g.worldBuf.Clear()
	g.drawWorldTo(g.worldBuf)

	cam := g.frame.Camera
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	sx, sy := g.shakeOffset()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cam.X, -cam.Y)
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(float64(g.width)/2+sx, float64(g.height)/2+sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.worldBuf, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := float32(g.width)
	vector.FillRect(screen, 0, 0, w, 64, colPanel, false)
	vector.StrokeLine(screen, 0, 64, w, 64, 1, colWallBorder, false)

	s := g.sess
	left := fmt.Sprintf("LEVEL %d/%d", s.LevelNumber(), s.LevelCount())
	drawText(screen, left, g.fonts.bold, 16, 16, 10, colAccent, text.AlignStart)
	drawText(screen, fmt.Sprintf("SCORE %d", s.Score()), g.fonts.bold, 16, 16, 34, colText, text.AlignStart)

	drawText(screen, s.Level().Question, g.fonts.bold, 20, float64(g.width)/2, 20, colText, text.AlignCenter)

	right := float64(g.width) - 16
	hearts := ""
	for i := 0; i < s.Lives(); i++ {
		hearts += "♥ "
	}
	drawText(screen, hearts, g.fonts.bold, 18, right, 8, colFail, text.AlignEnd)
	ammo := fmt.Sprintf("AMMO %d", s.Ammo())
	if s.Ammo() == 0 {
		ammo = "NO AMMO"
	}
	drawText(screen, ammo, g.fonts.bold, 14, right, 36, colWeaponPowerUp, text.AlignEnd)

	p := g.frame.Player
	if p.Shielded {
		drawText(screen, fmt.Sprintf("SHIELD %.0fs", math.Ceil(p.ShieldTime)), g.fonts.bold, 14, right-110, 36, colShieldPowerUp, text.AlignEnd)
	}
	hint := fmt.Sprintf("camera: %s  [C] camera  [P] pause  [T] touch  [F3] log  [M] demo", g.sess.Engine().CameraMode())
	drawText(screen, hint, g.fonts.regular, 11, 16, float64(g.height)-18, colTextDim, text.AlignStart)
}

func (g *Game) drawFeedback(screen *ebiten.Image) {
	fb := g.sess.Feedback()
	if fb == nil {
		return
	}
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 110}, false)
	c := colSuccess
	if fb.Kind == session.FeedbackFail {
		c = colFail
	}
	bounce := 6 * math.Abs(math.Sin(fb.Remaining*6))
	tw, th := measureText(fb.Message, g.fonts.bold, 44)
	bx := float32(float64(g.width)/2 - tw/2 - 40)
	by := float32(float64(g.height)/2 - th/2 - 28 - bounce)
	bw, bh := float32(tw+80), float32(th+56)
	vector.FillRect(screen, bx, by, bw, bh, withAlpha(c, 0.18), false)
	vector.FillRect(screen, bx, by+bh-8, bw, 8, c, false)
	drawText(screen, fb.Message, g.fonts.bold, 44, float64(g.width)/2, float64(by)+28, c, text.AlignCenter)
}

func (g *Game) drawBriefing(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 190}, false)
	cx := float64(g.width) / 2
	cy := float64(g.height) / 2
	drawText(screen, fmt.Sprintf("MISSION %d", g.sess.LevelNumber()), g.fonts.bold, 22, cx, cy-110, colAccent, text.AlignCenter)
	drawText(screen, g.sess.Level().Question, g.fonts.bold, 34, cx, cy-60, colText, text.AlignCenter)
	drawText(screen, "Find the correct answer. Avoid the drones.", g.fonts.regular, 18, cx, cy+10, colTextDim, text.AlignCenter)
	drawText(screen, "ENTER / tap to engage", g.fonts.bold, 20, cx, cy+70, colZoneFrame, text.AlignCenter)
}

func (g *Game) drawResult(screen *ebiten.Image) {
	title, sub, c := "MISSION CLEAR", "FINAL EFFICIENCY RATING", colSuccess
	again := "RE-INITIALIZE"
	if g.sess.Phase() == session.PhaseGameOver {
		title, sub, c = "SYSTEM FAILURE", "ATTEMPTS EXHAUSTED", colFail
		again = "RETRY MISSION"
	}
	cx := float64(g.width) / 2
	cy := float64(g.height) / 2
	drawText(screen, title, g.fonts.bold, 56, cx, cy-130, c, text.AlignCenter)
	drawText(screen, sub, g.fonts.bold, 14, cx, cy-40, colTextDim, text.AlignCenter)
	drawText(screen, fmt.Sprintf("%d", g.sess.Score()), g.fonts.bold, 60, cx, cy-15, colText, text.AlignCenter)
	drawText(screen, again+"  (ENTER / tap)", g.fonts.bold, 20, cx, cy+90, colAccent, text.AlignCenter)
}

func (g *Game) drawPad(screen *ebiten.Image) {
	p := g.pad
	faint := color.RGBA{R: 40, G: 40, B: 48, A: 90}
	edge := color.RGBA{R: 120, G: 200, B: 230, A: 140}
	if p.UseDPad {
		d := p.DPad
		arm := float32(d.Size / 3)
		x0, y0 := float32(d.X-d.Size/2), float32(d.Y-d.Size/2)
		vector.FillRect(screen, x0+arm, y0, arm, float32(d.Size), faint, false)
		vector.FillRect(screen, x0, y0+arm, float32(d.Size), arm, faint, false)
		vector.StrokeRect(screen, x0+arm, y0, arm, float32(d.Size), 1, edge, false)
		vector.StrokeRect(screen, x0, y0+arm, float32(d.Size), arm, 1, edge, false)
	} else {
		st := p.Stick
		vector.FillCircle(screen, float32(st.X), float32(st.Y), float32(st.Radius), faint, true)
		vector.StrokeCircle(screen, float32(st.X), float32(st.Y), float32(st.Radius), 2, edge, true)
		k := st.Knob()
		vector.FillCircle(screen, float32(st.X+k.X), float32(st.Y+k.Y), float32(st.Radius/2), withAlpha(colAccent, 0.7), true)
	}
	f := p.Fire
	vector.FillCircle(screen, float32(f.X), float32(f.Y), float32(f.R), faint, true)
	vector.StrokeCircle(screen, float32(f.X), float32(f.Y), float32(f.R), 2, edge, true)
	drawText(screen, "FIRE", g.fonts.bold, 16, f.X, f.Y-10, colText, text.AlignCenter)
}

func (g *Game) drawCentred(screen *ebiten.Image, s string, size float64, c color.Color) {
	_, h := measureText(s, g.fonts.bold, size)
	drawText(screen, s, g.fonts.bold, size, float64(g.width)/2, float64(g.height)/2-h/2, c, text.AlignCenter)
}

func (g *Game) drawToast(screen *ebiten.Image) {
	if g.toastLeft <= 0 {
		return
	}
	a := math.Min(1, g.toastLeft)
	drawText(screen, g.toast, g.fonts.bold, 16, float64(g.width)/2, float64(g.height)-48, withAlpha(colAccent, a), text.AlignCenter)
}
