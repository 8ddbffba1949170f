package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golangdaddy/roadrush/pkg/world"
)

// Align controls how Text positions a string relative to its x coordinate
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Canvas is the drawing surface the renderer paints onto.
// Text y is the baseline of the string.
type Canvas interface {
	FillRect(x, y, w, h float64, c color.Color)
	Text(s string, x, y, size float64, align Align, c color.Color)
}

// Palette holds the colors used for a frame
type Palette struct {
	Background color.RGBA
	Road       color.RGBA
	Line       color.RGBA
	Vehicle    color.RGBA
	Wheel      color.RGBA
	Text       color.RGBA
	Overlay    color.RGBA
}

// DefaultPalette is the classic grey road with a red car
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{0x33, 0x33, 0x33, 0xff},
		Road:       color.RGBA{0x55, 0x55, 0x55, 0xff},
		Line:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		Vehicle:    color.RGBA{0xff, 0x00, 0x00, 0xff},
		Wheel:      color.RGBA{0x00, 0x00, 0x00, 0xff},
		Text:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		Overlay:    color.RGBA{0x00, 0x00, 0x00, 178}, // 70% black
	}
}

const (
	wheelWidth  = 3.0
	wheelHeight = 10.0

	hudSize   = 20.0
	titleSize = 40.0
)

// Renderer turns a world snapshot into draw calls. It never mutates the world.
type Renderer struct {
	Palette Palette
}

// New creates a renderer with the default palette
func New() *Renderer {
	return &Renderer{Palette: DefaultPalette()}
}

// Draw paints one full frame
func (r *Renderer) Draw(c Canvas, w *world.World) {
	cfg := w.Config()

	c.FillRect(0, 0, cfg.Width, cfg.Height, r.Palette.Background)
	r.drawRoad(c, cfg, w.ScrollOffset)

	for _, o := range w.Obstacles {
		c.FillRect(o.X, o.Y, o.Width, o.Height, o.Color)
	}

	r.drawVehicle(c, w.Vehicle)

	score := Score(w.Score)
	c.Text(fmt.Sprintf("Score: %d", score), 20, 30, hudSize, AlignLeft, r.Palette.Text)

	if w.Phase == world.GameOver {
		r.drawGameOver(c, cfg, score)
	}
}

// Score is the integer score shown to the player
func Score(s float64) int {
	return int(math.Floor(s))
}

func (r *Renderer) drawRoad(c Canvas, cfg world.Config, offset float64) {
	c.FillRect(cfg.RoadLeft(), 0, cfg.RoadWidth, cfg.Height, r.Palette.Road)

	if cfg.LineHeight <= 0 {
		return
	}
	x := cfg.Width/2 - cfg.LineWidth/2
	dashes := int(cfg.Height/cfg.LineHeight) + 1
	for i := -1; i < dashes; i++ {
		y := float64(i)*cfg.LineHeight*2 - offset
		c.FillRect(x, y, cfg.LineWidth, cfg.LineHeight, r.Palette.Line)
	}
}

func (r *Renderer) drawVehicle(c Canvas, v world.Vehicle) {
	c.FillRect(v.X, v.Y, v.Width, v.Height, r.Palette.Vehicle)

	// Wheels stick out on both sides, front and rear
	front := v.Y + 5
	rear := v.Y + v.Height - 15
	left := v.X - wheelWidth
	right := v.X + v.Width
	c.FillRect(left, front, wheelWidth, wheelHeight, r.Palette.Wheel)
	c.FillRect(left, rear, wheelWidth, wheelHeight, r.Palette.Wheel)
	c.FillRect(right, front, wheelWidth, wheelHeight, r.Palette.Wheel)
	c.FillRect(right, rear, wheelWidth, wheelHeight, r.Palette.Wheel)
}

func (r *Renderer) drawGameOver(c Canvas, cfg world.Config, score int) {
	c.FillRect(0, 0, cfg.Width, cfg.Height, r.Palette.Overlay)

	cx, cy := cfg.Width/2, cfg.Height/2
	c.Text("GAME OVER", cx, cy-40, titleSize, AlignCenter, r.Palette.Text)
	c.Text(fmt.Sprintf("Final Score: %d", score), cx, cy, hudSize, AlignCenter, r.Palette.Text)
	c.Text("Click or tap to play again", cx, cy+40, hudSize, AlignCenter, r.Palette.Text)
}

// Discard is a canvas that drops every draw call
type Discard struct{}

func (Discard) FillRect(x, y, w, h float64, c color.Color)                    {}
func (Discard) Text(s string, x, y, size float64, align Align, c color.Color) {}
