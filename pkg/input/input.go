package input

import (
	"math"
	"strings"
)

// Intent is a normalized directional signal derived from raw input
type Intent uint8

const (
	Left Intent = 1 << iota
	Right
	Accelerate
	Brake
)

// Set is the collection of currently active intents
type Set uint8

// Has reports whether the intent is active
func (s Set) Has(i Intent) bool {
	return s&Set(i) != 0
}

func (s Set) with(i Intent) Set {
	return s | Set(i)
}

func (s Set) without(i Intent) Set {
	return s &^ Set(i)
}

// String lists the active intents, e.g. "left+brake"
func (s Set) String() string {
	if s == 0 {
		return "none"
	}
	names := make([]string, 0, 4)
	for _, n := range []struct {
		i    Intent
		name string
	}{{Left, "left"}, {Right, "right"}, {Accelerate, "accelerate"}, {Brake, "brake"}} {
		if s.Has(n.i) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "+")
}

// keyIntents maps symbolic key names to intents. Arrow keys and WASD share intents.
var keyIntents = map[string]Intent{
	"arrowleft":  Left,
	"arrowright": Right,
	"arrowup":    Accelerate,
	"arrowdown":  Brake,
	"a":          Left,
	"d":          Right,
	"w":          Accelerate,
	"s":          Brake,
}

// KeyIntent resolves a key name to its intent
func KeyIntent(name string) (Intent, bool) {
	i, ok := keyIntents[strings.ToLower(name)]
	return i, ok
}

// State holds the intent set and the touch-drag anchor.
// Producers write to it between frames; the update step only reads it.
type State struct {
	set Set

	touching         bool
	anchorX, anchorY float64
}

// NewState creates an empty input state
func NewState() *State {
	return &State{}
}

// Intents returns the current intent set
func (s *State) Intents() Set {
	return s.set
}

// KeyDown activates the intent bound to the key. Unknown keys are ignored.
func (s *State) KeyDown(name string) {
	if i, ok := KeyIntent(name); ok {
		s.set = s.set.with(i)
	}
}

// KeyUp clears the intent bound to the key. Unknown keys are ignored.
func (s *State) KeyUp(name string) {
	if i, ok := KeyIntent(name); ok {
		s.set = s.set.without(i)
	}
}

// TouchStart records the anchor for subsequent drag samples
func (s *State) TouchStart(x, y float64) {
	if !finite(x, y) {
		return
	}
	s.touching = true
	s.anchorX, s.anchorY = x, y
}

// TouchMove classifies the delta from the previous sample and re-anchors.
// The dominant axis sets one intent of its pair and clears the opposite one.
func (s *State) TouchMove(x, y float64) {
	if !finite(x, y) {
		return
	}
	if !s.touching {
		s.TouchStart(x, y)
		return
	}

	dx := x - s.anchorX
	dy := y - s.anchorY
	s.anchorX, s.anchorY = x, y

	if dx == 0 && dy == 0 {
		return
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			s.set = s.set.with(Right).without(Left)
		} else {
			s.set = s.set.with(Left).without(Right)
		}
		return
	}

	if dy > 0 {
		s.set = s.set.with(Brake).without(Accelerate)
	} else {
		s.set = s.set.with(Accelerate).without(Brake)
	}
}

// TouchEnd clears every intent
func (s *State) TouchEnd() {
	s.touching = false
	s.set = 0
}

// Reset clears intents and any active touch
func (s *State) Reset() {
	s.TouchEnd()
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
