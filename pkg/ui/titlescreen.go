package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen is shown before the first run
type TitleScreen struct {
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
	touchIDs       []ebiten.TouchID
}

// NewTitleScreen creates a new title screen
func NewTitleScreen(onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	ts.touchIDs = inpututil.AppendJustPressedTouchIDs(ts.touchIDs[:0])
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(ts.touchIDs) > 0 {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{0x33, 0x33, 0x33, 0xff})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	drawRoadStripe(screen, width, height, elapsed)

	// Pulsing title
	pulse := 1.0 + 0.1*sinWave(elapsed*2.0)
	brightness := math.Min(1.0, 1.0+0.2*sinWave(elapsed*1.5))
	titleColor := color.RGBA{
		uint8(255 * brightness),
		uint8(60 * brightness),
		uint8(40 * brightness),
		255,
	}
	DrawText(screen, "ROADRUSH", centerX, centerY, 96*pulse, true, titleColor)
	DrawText(screen, "Dodge the traffic", centerX, centerY+70, 28, true, color.RGBA{200, 200, 210, 255})

	controls := []string{
		"Arrow keys or WASD to steer and change speed",
		"On touch screens, drag to steer",
	}
	for i, line := range controls {
		DrawText(screen, line, centerX, centerY+150+float64(i)*28, 18, true, color.RGBA{170, 170, 180, 255})
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		DrawText(screen, "Press ENTER, SPACE or tap to start", centerX, float64(height)-80, 24, true, color.RGBA{150, 200, 255, 255})
	}
}

// sinWave returns a sine wave value between -1 and 1
func sinWave(t float64) float64 {
	return math.Sin(t)
}

// drawRoadStripe draws a slowly scrolling centerline behind the title
func drawRoadStripe(screen *ebiten.Image, width, height int, elapsed float64) {
	const roadWidth, dash, gap = 300.0, 50.0, 50.0
	left := (float64(width) - roadWidth) / 2
	vector.DrawFilledRect(screen, float32(left), 0, roadWidth, float32(height), color.RGBA{0x55, 0x55, 0x55, 0xff}, false)

	offset := math.Mod(elapsed*120, dash+gap)
	x := float32(float64(width)/2 - 5)
	for y := -dash + offset; y < float64(height); y += dash + gap {
		vector.DrawFilledRect(screen, x, float32(y), 10, dash, color.RGBA{255, 255, 255, 90}, false)
	}
}
