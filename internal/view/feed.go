package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

const (
	feedPanelWidth = 340
	feedLineHeight = 14
	feedFontSize   = 11
	feedHighlight  = 3 // newest entries drawn on a lit row
)

// categoryColors tints the marker next to each log line.
var categoryColors = map[string]color.RGBA{
	"player":  {R: 255, G: 255, B: 255, A: 255},
	"answer":  {R: 74, G: 144, B: 226, A: 255},
	"combat":  {R: 0, G: 242, B: 255, A: 255},
	"powerup": {R: 255, G: 159, B: 67, A: 255},
	"enemy":   {R: 255, G: 77, B: 77, A: 255},
	"level":   {R: 162, G: 155, B: 254, A: 255},
}

// drawFeed renders the tail of the engine log in a panel on the right edge.
func (g *Game) drawFeed(screen *ebiten.Image, log *game.SimLog) {
	panelX := float32(g.width - feedPanelWidth)
	panelH := float32(g.height)

	vector.FillRect(screen, panelX, 0, feedPanelWidth, panelH, color.RGBA{R: 5, G: 5, B: 21, A: 230}, false)
	vector.StrokeLine(screen, panelX, 0, panelX, panelH, 1.0, color.RGBA{R: 108, G: 92, B: 231, A: 200}, false)
	vector.FillRect(screen, panelX, 0, feedPanelWidth, 20, color.RGBA{R: 26, G: 0, B: 51, A: 255}, false)
	drawText(screen, "EVENT LOG  (F3 hide, F9 copy report)", g.fonts.bold, feedFontSize, float64(panelX)+8, 3, colText, text.AlignStart)

	maxVisible := (g.height - 28) / feedLineHeight
	if maxVisible <= 0 {
		return
	}
	entries := log.Tail(maxVisible)

	y := 26
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, panelX+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 26, G: 0, B: 51, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 120, G: 120, B: 140, A: 255}
		}
		vector.FillRect(screen, panelX+5, float32(y+4), 3, 6, dot, false)

		line := fmt.Sprintf("%5d [%s] %s/%s %s", e.Tick, e.Entity, e.Category, e.Key, e.Value)
		drawText(screen, line, g.fonts.mono, feedFontSize, float64(panelX)+12, float64(y), colTextDim, text.AlignStart)
		y += feedLineHeight
	}
}
