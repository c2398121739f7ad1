package view

import "image/color"

// Deep-space maze palette.
var (
	colBackground    = color.RGBA{R: 5, G: 5, B: 16, A: 255}
	colFloor         = color.RGBA{R: 5, G: 5, B: 21, A: 255}
	colFloorGrid     = color.RGBA{R: 108, G: 92, B: 231, A: 13}
	colWallBody      = color.RGBA{R: 2, G: 0, B: 16, A: 255}
	colWallTop       = color.RGBA{R: 26, G: 0, B: 51, A: 255}
	colWallBorder    = color.RGBA{R: 108, G: 92, B: 231, A: 255}
	colWallHighlight = color.RGBA{R: 162, G: 155, B: 254, A: 255}
	colWallCircuit   = color.RGBA{R: 0, G: 210, B: 255, A: 90}
	colWallShadow    = color.RGBA{R: 0, G: 0, B: 0, A: 204}
	colZoneFrame     = color.RGBA{R: 74, G: 144, B: 226, A: 255}
	colZoneGlow      = color.RGBA{R: 74, G: 144, B: 226, A: 102}
	colZoneWrong     = color.RGBA{R: 255, G: 77, B: 77, A: 120}
	colZoneRight     = color.RGBA{R: 46, G: 213, B: 115, A: 140}
	colPlayerBody    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colPlayerVisor   = color.RGBA{R: 0, G: 210, B: 255, A: 255}
	colShield        = color.RGBA{R: 0, G: 242, B: 255, A: 140}
	colEnemyBody     = color.RGBA{R: 45, G: 52, B: 54, A: 255}
	colEnemyRing     = color.RGBA{R: 255, G: 77, B: 77, A: 160}
	colEnemyEye      = color.RGBA{R: 255, G: 77, B: 77, A: 255}
	colProjectile    = color.RGBA{R: 0, G: 242, B: 255, A: 255}
	colWeaponPowerUp = color.RGBA{R: 255, G: 159, B: 67, A: 255}
	colShieldPowerUp = color.RGBA{R: 0, G: 210, B: 255, A: 255}
	colExplosion     = color.RGBA{R: 255, G: 159, B: 67, A: 255}

	colText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colTextDim = color.RGBA{R: 190, G: 190, B: 210, A: 255}
	colAccent  = color.RGBA{R: 0, G: 210, B: 255, A: 255}
	colSuccess = color.RGBA{R: 74, G: 222, B: 128, A: 255}
	colFail    = color.RGBA{R: 248, G: 113, B: 113, A: 255}
	colPanel   = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	colGlitch  = color.RGBA{R: 255, G: 0, B: 0, A: 26}
)

// withAlpha returns c with its alpha scaled by a in [0,1]. The palette is
// straight alpha; vector draws expect premultiplied colours.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	f := float64(c.A) / 255 * a
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(255 * f),
	}
}
