package world

import (
	"math"

	"github.com/golangdaddy/roadrush/pkg/input"
)

// Step advances the world by one tick using the given intents.
// It reports whether this tick ended the run. Nothing changes once the run is over.
func (w *World) Step(intents input.Set) bool {
	if w.Phase != Running {
		return false
	}
	w.Ticks++

	w.steer(intents)
	w.throttle(intents)
	w.clampVehicle()

	w.ScrollOffset = wrap(w.ScrollOffset+w.ScrollSpeed, w.cfg.LineHeight)
	w.Score += w.ScrollSpeed / 10

	if o, ok := w.spawner.Tick(); ok {
		w.Obstacles = append(w.Obstacles, o)
		w.Spawned++
	}

	w.advanceObstacles()

	if firstHit(w.Vehicle, w.Obstacles) >= 0 {
		w.Phase = GameOver
		return true
	}
	return false
}

func (w *World) steer(intents input.Set) {
	if intents.Has(input.Left) && w.Vehicle.X > w.cfg.RoadLeft() {
		w.Vehicle.X -= w.cfg.Speed
	}
	if intents.Has(input.Right) && w.Vehicle.X < w.cfg.RoadRight()-w.Vehicle.Width {
		w.Vehicle.X += w.cfg.Speed
	}
}

// throttle moves the vehicle vertically and picks the scroll regime.
// Brake is evaluated last, so holding both pedals brakes.
func (w *World) throttle(intents input.Set) {
	w.ScrollSpeed = w.cfg.CruiseSpeed
	if intents.Has(input.Accelerate) && w.Vehicle.Y > 0 {
		w.Vehicle.Y -= w.cfg.Speed / 2
		w.ScrollSpeed = w.cfg.FastSpeed
	}
	if intents.Has(input.Brake) && w.Vehicle.Y < w.cfg.Height-w.Vehicle.Height {
		w.Vehicle.Y += w.cfg.Speed / 2
		w.ScrollSpeed = w.cfg.SlowSpeed
	}
}

// advanceObstacles scrolls every obstacle and prunes those past the bottom edge
func (w *World) advanceObstacles() {
	kept := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		o.Y += w.ScrollSpeed
		if o.Y > w.cfg.Height {
			continue
		}
		kept = append(kept, o)
	}
	w.Obstacles = kept
}

func wrap(v, m float64) float64 {
	if m <= 0 {
		return 0
	}
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}
