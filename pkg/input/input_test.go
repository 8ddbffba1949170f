package input

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEdgesSetAndClearIntents(t *testing.T) {
	s := NewState()

	s.KeyDown("ArrowLeft")
	s.KeyDown("w")
	assert.True(t, s.Intents().Has(Left))
	assert.True(t, s.Intents().Has(Accelerate))
	assert.False(t, s.Intents().Has(Right))

	s.KeyUp("ArrowLeft")
	assert.False(t, s.Intents().Has(Left))
	assert.True(t, s.Intents().Has(Accelerate))
}

func TestWASDMatchesArrowKeys(t *testing.T) {
	pairs := map[string]string{"a": "ArrowLeft", "d": "ArrowRight", "w": "ArrowUp", "s": "ArrowDown"}
	for letter, arrow := range pairs {
		li, ok := KeyIntent(letter)
		assert.True(t, ok, letter)
		ai, ok := KeyIntent(arrow)
		assert.True(t, ok, arrow)
		assert.Equal(t, ai, li, letter)

		upper, ok := KeyIntent(strings.ToUpper(letter))
		assert.True(t, ok)
		assert.Equal(t, li, upper)
	}
}

func TestUnknownKeysAreIgnored(t *testing.T) {
	s := NewState()
	s.KeyDown("ArrowRight")
	s.KeyDown("Escape")
	s.KeyUp("q")
	assert.Equal(t, Set(0).with(Right), s.Intents())
}

func TestTouchMoveHorizontal(t *testing.T) {
	s := NewState()
	s.TouchStart(100, 100)
	s.TouchMove(120, 105)
	assert.True(t, s.Intents().Has(Right))
	assert.False(t, s.Intents().Has(Left))

	s.TouchMove(110, 106)
	assert.True(t, s.Intents().Has(Left))
	assert.False(t, s.Intents().Has(Right))
}

func TestTouchMoveUsesPreviousSampleNotOrigin(t *testing.T) {
	s := NewState()
	s.TouchStart(0, 0)
	s.TouchMove(50, 0)
	// still right of the origin, but left of the previous sample
	s.TouchMove(40, 0)
	assert.True(t, s.Intents().Has(Left))
	assert.False(t, s.Intents().Has(Right))
}

func TestTouchMoveVerticalLeavesHorizontalAxis(t *testing.T) {
	s := NewState()
	s.TouchStart(0, 0)
	s.TouchMove(10, 0)
	s.TouchMove(10, -20)
	assert.True(t, s.Intents().Has(Accelerate))
	assert.True(t, s.Intents().Has(Right))

	s.TouchMove(11, 10)
	assert.True(t, s.Intents().Has(Brake))
	assert.False(t, s.Intents().Has(Accelerate))
}

func TestTouchEndClearsAll(t *testing.T) {
	s := NewState()
	s.KeyDown("ArrowLeft")
	s.TouchStart(0, 0)
	s.TouchMove(0, -5)
	s.TouchEnd()
	assert.Equal(t, Set(0), s.Intents())
}

func TestTouchAnomaliesIgnored(t *testing.T) {
	s := NewState()
	s.TouchStart(0, 0)
	s.TouchMove(math.NaN(), 10)
	s.TouchMove(math.Inf(1), 0)
	s.TouchMove(0, 0)
	assert.Equal(t, Set(0), s.Intents())

	// a move without an active touch only anchors
	s.TouchEnd()
	s.TouchMove(30, 30)
	assert.Equal(t, Set(0), s.Intents())
	s.TouchMove(30, 10)
	assert.True(t, s.Intents().Has(Accelerate))
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "none", Set(0).String())
	assert.Equal(t, "left+brake", Set(0).with(Left).with(Brake).String())
}
