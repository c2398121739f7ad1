package view

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts holds the embedded Go font sources used for all on-screen text.
type fonts struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	mono    *text.GoTextFaceSource
}

func loadFonts() (*fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load mono font: %w", err)
	}
	log.Printf("[Font] Go Regular, Go Bold, Go Mono (embedded)")
	return &fonts{regular: regular, bold: bold, mono: mono}, nil
}

// drawText draws s with its anchor at (x, y). align applies horizontally;
// the vertical anchor is the top of the first line.
func drawText(dst *ebiten.Image, s string, src *text.GoTextFaceSource, size, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.LineSpacing = size * 1.25
	text.Draw(dst, s, &text.GoTextFace{Source: src, Size: size}, op)
}

// measureText returns the laid-out width and height of s.
func measureText(s string, src *text.GoTextFaceSource, size float64) (float64, float64) {
	return text.Measure(s, &text.GoTextFace{Source: src, Size: size}, size*1.25)
}
