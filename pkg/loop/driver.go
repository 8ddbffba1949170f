package loop

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/render"
	"github.com/golangdaddy/roadrush/pkg/world"
)

// Pilot is called at the top of every frame before the world steps.
// Headless runs use it to script intents and restarts.
type Pilot func(d *Driver)

// Driver owns the world, the phase state machine and the restart trigger.
// It is not safe for concurrent use; the host calls it from one goroutine.
type Driver struct {
	world    *world.World
	input    *input.State
	renderer *render.Renderer
	log      *zap.SugaredLogger
	pilot    Pilot

	armed    bool // Restart trigger, armed on game over
	frames   int
	restarts int
}

// New creates a driver around a freshly constructed world.
// A nil logger disables logging.
func New(w *world.World, in *input.State, log *zap.SugaredLogger) *Driver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if in == nil {
		in = input.NewState()
	}
	return &Driver{
		world:    w,
		input:    in,
		renderer: render.New(),
		log:      log,
	}
}

// SetPilot installs a per-frame hook; nil removes it
func (d *Driver) SetPilot(p Pilot) {
	d.pilot = p
}

// World returns the simulated world. Callers must treat it as read-only.
func (d *Driver) World() *world.World {
	return d.world
}

// Input returns the intent state that producers write to
func (d *Driver) Input() *input.State {
	return d.input
}

// Phase returns the current lifecycle phase
func (d *Driver) Phase() world.Phase {
	return d.world.Phase
}

// Armed reports whether a click would restart the run
func (d *Driver) Armed() bool {
	return d.armed
}

// Frames returns the number of updates driven so far
func (d *Driver) Frames() int {
	return d.frames
}

// Restarts returns how many times the run was restarted
func (d *Driver) Restarts() int {
	return d.restarts
}

// Update advances the simulation by one tick while running
func (d *Driver) Update() {
	d.frames++
	if d.pilot != nil {
		d.pilot(d)
	}
	if d.world.Phase != world.Running {
		return
	}
	if d.world.Step(d.input.Intents()) {
		d.armed = true
		d.log.Infow("Run ended",
			"score", render.Score(d.world.Score),
			"ticks", d.world.Ticks,
			"obstacles", d.world.Spawned,
		)
	}
}

// Draw renders the current world
func (d *Driver) Draw(c render.Canvas) {
	d.renderer.Draw(c, d.world)
}

// Frame runs one full frame: an update while running, then always a render
func (d *Driver) Frame(c render.Canvas) {
	d.Update()
	d.Draw(c)
}

// Click handles a click or tap. It restarts the run only when the trigger is armed.
func (d *Driver) Click() bool {
	if !d.armed || d.world.Phase != world.GameOver {
		return false
	}
	d.world.Reset()
	d.armed = false
	d.restarts++
	d.log.Debugw("Run restarted", "restarts", d.restarts)
	return true
}

// Run drives frames from the scheduler until it stops or ctx is cancelled.
// A stopped scheduler ends the run cleanly; cancellation returns ctx.Err().
func (d *Driver) Run(ctx context.Context, sched Scheduler, c render.Canvas) error {
	for {
		if err := sched.Wait(ctx); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
		d.Frame(c)
	}
}
