package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/render"
	"github.com/golangdaddy/roadrush/pkg/world"
)

func TestAutopilotSteersAwayFromObstacle(t *testing.T) {
	d, _ := newDriver(t)
	d.SetPilot(Autopilot())
	w := d.World()

	// obstacle just left of the car's column, with more room on the right
	w.Obstacles = append(w.Obstacles, world.Obstacle{X: 360, Y: 300, Width: 60, Height: 40})
	d.Frame(render.Discard{})

	assert.True(t, d.Input().Intents().Has(input.Right))
	assert.True(t, d.Input().Intents().Has(input.Brake))
	assert.Equal(t, 390.0, w.Vehicle.X)
}

func TestAutopilotAcceleratesOnClearRoad(t *testing.T) {
	d, _ := newDriver(t)
	d.SetPilot(Autopilot())
	d.Frame(render.Discard{})

	assert.True(t, d.Input().Intents().Has(input.Accelerate))
	assert.Equal(t, 8.0, d.World().ScrollSpeed)
}

func TestAutopilotRestartsAfterCrash(t *testing.T) {
	d, _ := newDriver(t)
	crash(d)
	d.Frame(render.Discard{})
	require.Equal(t, world.GameOver, d.Phase())

	d.SetPilot(Autopilot())
	d.Frame(render.Discard{})
	assert.Equal(t, 1, d.Restarts())
	assert.Equal(t, 1, d.World().Ticks, "restart happens before the step of the same frame")
}
