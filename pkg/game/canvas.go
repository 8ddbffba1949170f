package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/roadrush/pkg/render"
	"github.com/golangdaddy/roadrush/pkg/ui"
)

// Canvas draws render calls onto an ebiten image
type Canvas struct {
	dst *ebiten.Image
}

// NewCanvas wraps a destination image
func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{dst: dst}
}

// FillRect draws a solid rectangle. Empty rectangles are skipped.
func (c *Canvas) FillRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// Text draws a string with its baseline at y
func (c *Canvas) Text(s string, x, y, size float64, align render.Align, clr color.Color) {
	ui.DrawText(c.dst, s, x, y, size, align == render.AlignCenter, clr)
}
