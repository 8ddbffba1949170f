package loop

import "github.com/golangdaddy/roadrush/pkg/world"

// lookahead is how far above the vehicle the autopilot watches for traffic
const lookahead = 250.0

var pilotKeys = []string{"ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown"}

// Autopilot steers around the nearest obstacle ahead and restarts after a crash.
// It drives through the same key names a player would.
func Autopilot() Pilot {
	return func(d *Driver) {
		if d.Phase() == world.GameOver {
			d.Click()
			return
		}

		in := d.Input()
		for _, k := range pilotKeys {
			in.KeyUp(k)
		}

		w := d.World()
		o, ok := threat(w)
		if !ok {
			in.KeyDown("ArrowUp")
			return
		}

		cfg := w.Config()
		leftRoom := o.X - cfg.RoadLeft()
		rightRoom := cfg.RoadRight() - (o.X + o.Width)
		if rightRoom > leftRoom {
			in.KeyDown("ArrowRight")
		} else {
			in.KeyDown("ArrowLeft")
		}
		in.KeyDown("ArrowDown")
	}
}

// threat returns the closest obstacle ahead that overlaps the vehicle's column
func threat(w *world.World) (world.Obstacle, bool) {
	v := w.Vehicle
	var (
		best  world.Obstacle
		found bool
	)
	for _, o := range w.Obstacles {
		if o.X >= v.X+v.Width+5 || o.X+o.Width <= v.X-5 {
			continue
		}
		if o.Y > v.Y+v.Height || o.Y+o.Height < v.Y-lookahead {
			continue
		}
		if !found || o.Y > best.Y {
			best, found = o, true
		}
	}
	return best, found
}
