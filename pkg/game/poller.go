package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/roadrush/pkg/input"
)

// tapSlop is the largest drag, in logical pixels, still treated as a tap
const tapSlop = 10.0

// Poller translates ebiten input into intents and restart clicks.
// Only the first active touch is tracked.
type Poller struct {
	keys    []ebiten.Key
	touches []ebiten.TouchID

	touching     bool
	touchID      ebiten.TouchID
	originX      float64
	originY      float64
	travel       float64 // Furthest distance from the touch origin
	lastX, lastY float64
}

// NewPoller creates an input poller
func NewPoller() *Poller {
	return &Poller{}
}

// Poll feeds this frame's input edges into the intent state.
// It reports whether the player clicked or tapped.
func (p *Poller) Poll(in *input.State) bool {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		in.KeyDown(k.String())
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		in.KeyUp(k.String())
	}

	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if p.pollTouch(in) {
		clicked = true
	}
	return clicked
}

// pollTouch tracks the first touch and reports a tap on release
func (p *Poller) pollTouch(in *input.State) bool {
	if !p.touching {
		p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
		if len(p.touches) == 0 {
			return false
		}
		p.touching = true
		p.touchID = p.touches[0]
		x, y := ebiten.TouchPosition(p.touchID)
		p.originX, p.originY = float64(x), float64(y)
		p.lastX, p.lastY = p.originX, p.originY
		p.travel = 0
		in.TouchStart(p.originX, p.originY)
		return false
	}

	if inpututil.IsTouchJustReleased(p.touchID) {
		p.touching = false
		in.TouchEnd()
		return p.travel <= tapSlop
	}

	x, y := ebiten.TouchPosition(p.touchID)
	fx, fy := float64(x), float64(y)
	if fx == p.lastX && fy == p.lastY {
		return false
	}
	p.travel = math.Max(p.travel, math.Hypot(fx-p.originX, fy-p.originY))
	p.lastX, p.lastY = fx, fy
	in.TouchMove(fx, fy)
	return false
}
