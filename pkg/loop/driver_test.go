package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/render"
	"github.com/golangdaddy/roadrush/pkg/world"
)

func newDriver(t *testing.T) (*Driver, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	w := world.New(world.DefaultConfig(), nil)
	return New(w, input.NewState(), zap.New(core).Sugar()), logs
}

// crash places an obstacle on top of the vehicle so the next step collides
func crash(d *Driver) {
	w := d.World()
	w.Obstacles = append(w.Obstacles, world.Obstacle{X: w.Vehicle.X, Y: w.Vehicle.Y, Width: 60, Height: 40})
}

func TestInitialState(t *testing.T) {
	d, _ := newDriver(t)
	assert.Equal(t, world.Running, d.Phase())
	assert.False(t, d.Armed())
}

func TestClickWhileRunningIsIgnored(t *testing.T) {
	d, _ := newDriver(t)
	d.Frame(render.Discard{})
	d.Frame(render.Discard{})
	score := d.World().Score

	assert.False(t, d.Click())
	assert.Equal(t, world.Running, d.Phase())
	assert.Equal(t, score, d.World().Score)
	assert.Equal(t, 2, d.World().Ticks)
}

func TestCollisionArmsRestart(t *testing.T) {
	d, logs := newDriver(t)
	crash(d)
	d.Frame(render.Discard{})

	require.Equal(t, world.GameOver, d.Phase())
	assert.True(t, d.Armed())
	assert.Equal(t, 1, logs.FilterMessage("Run ended").Len())

	// frames keep rendering but nothing moves
	ticks := d.World().Ticks
	for range 10 {
		d.Frame(render.Discard{})
	}
	assert.Equal(t, ticks, d.World().Ticks)
	assert.Equal(t, 11, d.Frames())
}

func TestClickRestartsAfterGameOver(t *testing.T) {
	d, _ := newDriver(t)
	d.Input().KeyDown("ArrowRight")
	for range 20 {
		d.Frame(render.Discard{})
	}
	crash(d)
	d.Frame(render.Discard{})
	require.Equal(t, world.GameOver, d.Phase())

	require.True(t, d.Click())
	assert.Equal(t, world.Running, d.Phase())
	assert.False(t, d.Armed())
	assert.Equal(t, 1, d.Restarts())

	fresh := world.New(world.DefaultConfig(), nil)
	assert.Equal(t, fresh.Vehicle, d.World().Vehicle)
	assert.Empty(t, d.World().Obstacles)
	assert.Zero(t, d.World().Score)

	// a second click does nothing once disarmed
	assert.False(t, d.Click())
}

func TestRunStopsWithScheduler(t *testing.T) {
	d, _ := newDriver(t)
	sched := NewManualScheduler(25)

	err := d.Run(context.Background(), sched, render.Discard{})
	require.NoError(t, err)
	assert.Equal(t, 25, d.Frames())
	assert.Equal(t, 25, d.World().Ticks)
	assert.Equal(t, 25, sched.Waited())
}

func TestRunReturnsContextError(t *testing.T) {
	d, _ := newDriver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, NewManualScheduler(10), render.Discard{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, d.Frames())
}

func TestPilotRunsEveryFrame(t *testing.T) {
	d, _ := newDriver(t)
	calls := 0
	d.SetPilot(func(d *Driver) {
		calls++
		if d.Frames() == 1 {
			d.Input().KeyDown("a")
		}
	})

	require.NoError(t, d.Run(context.Background(), NewManualScheduler(5), render.Discard{}))
	assert.Equal(t, 5, calls)
	assert.Less(t, d.World().Vehicle.X, 385.0)
}

func TestTickerSchedulerWithLimit(t *testing.T) {
	d, _ := newDriver(t)
	sched := NewTickerScheduler(1000)
	defer sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, d.Run(ctx, Limit(sched, 3), render.Discard{}))
	assert.Equal(t, 3, d.Frames())
}

func TestTickerSchedulerStop(t *testing.T) {
	sched := NewTickerScheduler(1)
	sched.Stop()
	sched.Stop()
	assert.ErrorIs(t, sched.Wait(context.Background()), ErrStopped)
}
