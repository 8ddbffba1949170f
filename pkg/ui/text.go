package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// baseFontSize is the pixel height of the bitmap font at scale 1
const baseFontSize = 16.0

var face = text.NewGoXFace(bitmapfont.Face)

// DrawText draws str with its baseline at y, scaled to size pixels.
// With center set, x is the horizontal center of the string, otherwise its left edge.
func DrawText(screen *ebiten.Image, str string, x, y, size float64, center bool, clr color.Color) {
	scale := size / baseFontSize
	ascent := face.Metrics().HAscent

	op := &text.DrawOptions{}
	if center {
		op.PrimaryAlign = text.AlignCenter
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y-ascent*scale)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
