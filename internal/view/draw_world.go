package view

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

const ts = float32(game.TileSize)

// drawWorldTo renders the maze and every entity in world coordinates.
func (g *Game) drawWorldTo(dst *ebiten.Image) {
	eng := g.sess.Engine()
	grid := eng.Grid()
	f := &g.frame

	ww, wh := grid.WorldSize()
	vector.FillRect(dst, 0, 0, float32(ww), float32(wh), colFloor, false)
	for x := 0; x <= grid.Cols(); x++ {
		vector.StrokeLine(dst, float32(x)*ts, 0, float32(x)*ts, float32(wh), 1, colFloorGrid, false)
	}
	for y := 0; y <= grid.Rows(); y++ {
		vector.StrokeLine(dst, 0, float32(y)*ts, float32(ww), float32(y)*ts, 1, colFloorGrid, false)
	}

	g.drawAnswerZones(dst, f)
	g.drawWalls(dst, grid)

	for _, pu := range f.PowerUps {
		if !pu.Picked {
			g.drawPowerUp(dst, pu, f.Time)
		}
	}
	for _, p := range f.Projectiles {
		vector.FillCircle(dst, float32(p.X), float32(p.Y), 9, withAlpha(colProjectile, 0.3), true)
		vector.FillCircle(dst, float32(p.X), float32(p.Y), 4, colProjectile, true)
	}
	for i := range f.Enemies {
		if !f.Enemies[i].Destroyed {
			drawEnemy(dst, &f.Enemies[i])
		}
	}
	drawPlayer(dst, &f.Player, f.Time)
	for _, ex := range f.Explosions {
		r := float32(12 + 40*(1-ex.Life))
		vector.FillCircle(dst, float32(ex.X), float32(ex.Y), r, withAlpha(colExplosion, ex.Life*0.6), true)
		vector.StrokeCircle(dst, float32(ex.X), float32(ex.Y), r+4, 2, withAlpha(colWallHighlight, ex.Life), true)
	}
}

func (g *Game) drawWalls(dst *ebiten.Image, grid *game.Grid) {
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if grid.TileAt(x, y) != game.TileWall {
				continue
			}
			x0, y0 := float32(x)*ts, float32(y)*ts
			vector.FillRect(dst, x0+4, y0+6, ts, ts, colWallShadow, false)
			vector.FillRect(dst, x0, y0, ts, ts, colWallBody, false)
			vector.FillRect(dst, x0+4, y0+4, ts-8, ts-14, colWallTop, false)
			vector.StrokeRect(dst, x0+1, y0+1, ts-2, ts-2, 1.5, colWallBorder, false)
			vector.StrokeLine(dst, x0+4, y0+4, x0+ts-4, y0+4, 1, colWallHighlight, false)
			// circuit trace across the cap
			vector.StrokeLine(dst, x0+ts/2, y0+8, x0+ts/2, y0+ts/2, 1, colWallCircuit, false)
			vector.StrokeLine(dst, x0+ts/2, y0+ts/2, x0+ts-10, y0+ts/2, 1, colWallCircuit, false)
		}
	}
}

func (g *Game) drawAnswerZones(dst *ebiten.Image, f *game.RenderFrame) {
	pulse := 0.6 + 0.4*math.Sin(f.Time*3)
	for _, o := range g.sess.Level().Options {
		x0, y0 := float32(o.Cell.X)*ts, float32(o.Cell.Y)*ts
		fill := withAlpha(colZoneGlow, pulse)
		if f.Answer == game.AnswerLocked && f.LastAnswer.Cell == o.Cell {
			if o.IsCorrect {
				fill = colZoneRight
			} else {
				fill = colZoneWrong
			}
		}
		vector.FillRect(dst, x0+3, y0+3, ts-6, ts-6, fill, false)
		vector.StrokeRect(dst, x0+3, y0+3, ts-6, ts-6, 2, colZoneFrame, false)

		cx, cy := float64(x0+ts/2), float64(y0+ts/2)
		size := 13.0
		if w, _ := measureText(o.Text, g.fonts.bold, size); w > float64(ts)-6 {
			size *= (float64(ts) - 6) / w
		}
		drawText(dst, o.Text, g.fonts.bold, size, cx, cy-size*0.6, colText, text.AlignCenter)
	}
}

func (g *Game) drawPowerUp(dst *ebiten.Image, pu game.PowerUp, t float64) {
	c := colWeaponPowerUp
	if pu.Kind == game.PowerUpShield {
		c = colShieldPowerUp
	}
	bob := float32(3 * math.Sin(t*4))
	x, y := float32(pu.X), float32(pu.Y)+bob
	vector.FillCircle(dst, x, y, 18, withAlpha(c, 0.25), true)
	vector.StrokeCircle(dst, x, y, 14, 2, c, true)
	label := "W"
	if pu.Kind == game.PowerUpShield {
		label = "S"
	}
	drawText(dst, label, g.fonts.bold, 14, float64(x), float64(y)-9, c, text.AlignCenter)
}

func drawEnemy(dst *ebiten.Image, e *game.Enemy) {
	x, y := float32(e.X), float32(e.Y)
	r := float32(game.EnemySize / 2)
	vector.FillCircle(dst, x, y, r, colEnemyBody, true)

	// spinning segmented ring
	for i := 0; i < 6; i++ {
		a0 := e.Rotation + float64(i)*math.Pi/3
		a1 := a0 + math.Pi/6
		vector.StrokeLine(dst,
			x+r*float32(math.Cos(a0)), y+r*float32(math.Sin(a0)),
			x+r*float32(math.Cos(a1)), y+r*float32(math.Sin(a1)),
			2, colEnemyRing, true)
	}
	blink := float32(0.75 + 0.25*math.Sin(e.Frame))
	vector.FillCircle(dst, x, y, 7*blink, colEnemyEye, true)
}

func drawPlayer(dst *ebiten.Image, p *game.Player, t float64) {
	if p.RespawnGrace > 0 && math.Mod(t*10, 2) < 1 {
		return
	}
	cx, cy := p.Center()
	x, y := float32(cx), float32(cy)
	r := float32(game.PlayerSize / 2)
	if p.Shielded {
		vector.StrokeCircle(dst, x, y, r+8, 3, colShield, true)
	}
	lean := float32(2 * p.MoveIntensity)
	vector.FillCircle(dst, x, y, r-2, colPlayerBody, true)

	// visor wedge on the facing side
	fx, fy := float32(math.Sin(p.Angle)), float32(-math.Cos(p.Angle))
	px, py := -fy, fx
	tip := r - 4 + lean
	var path vector.Path
	path.MoveTo(x+fx*tip, y+fy*tip)
	path.LineTo(x+fx*6+px*12, y+fy*6+py*12)
	path.LineTo(x+fx*6-px*12, y+fy*6-py*12)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(colPlayerVisor)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}
