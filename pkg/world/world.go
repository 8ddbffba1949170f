package world

import (
	"image/color"
	"math/rand"
)

// Phase is the coarse lifecycle state of a session
type Phase int

const (
	Running Phase = iota
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	}
	return "unknown"
}

// Rand is the random source used for obstacle placement and color.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Uint32() uint32
}

// Vehicle is the player-controlled car. X, Y is the top-left corner.
type Vehicle struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the vehicle's bounding box
func (v Vehicle) Bounds() Rect {
	return Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
}

// Obstacle is a block scrolling down the road
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Color         color.RGBA // Chosen at spawn time
}

// Bounds returns the obstacle's bounding box
func (o Obstacle) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// World is the authoritative mutable snapshot of a session
type World struct {
	cfg     Config
	spawner *Spawner

	Vehicle   Vehicle
	Obstacles []Obstacle // Spawn order

	Score        float64
	ScrollOffset float64 // Always in [0, LineHeight)
	ScrollSpeed  float64 // Derived each tick from vertical intent
	Phase        Phase

	Ticks   int // Ticks stepped since the last reset
	Spawned int // Obstacles spawned since the last reset
}

// New creates a world in its initial Running state.
// A nil rng falls back to a fixed-seed source.
func New(cfg Config, rng Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w := &World{
		cfg:     cfg,
		spawner: NewSpawner(cfg, rng),
	}
	w.Reset()
	return w
}

// Config returns the geometry the world was built with
func (w *World) Config() Config {
	return w.cfg
}

// SpawnTimer returns the ticks elapsed since the last spawn
func (w *World) SpawnTimer() int {
	return w.spawner.Timer()
}

// StartPosition is where the vehicle is placed on construction and restart
func (w *World) StartPosition() (float64, float64) {
	return w.cfg.Width/2 - w.cfg.VehicleWidth/2, w.cfg.Height - w.cfg.StartOffsetY
}

// Reset restores the world to its construction state
func (w *World) Reset() {
	x, y := w.StartPosition()
	w.Vehicle = Vehicle{
		X:      x,
		Y:      y,
		Width:  w.cfg.VehicleWidth,
		Height: w.cfg.VehicleHeight,
	}
	w.clampVehicle()
	w.Obstacles = w.Obstacles[:0]
	w.Score = 0
	w.ScrollOffset = 0
	w.ScrollSpeed = w.cfg.CruiseSpeed
	w.Phase = Running
	w.Ticks = 0
	w.Spawned = 0
	w.spawner.Reset()
}

// clampVehicle enforces the road band and the vertical screen band
func (w *World) clampVehicle() {
	minX := w.cfg.RoadLeft()
	maxX := w.cfg.RoadRight() - w.Vehicle.Width
	if w.Vehicle.X < minX {
		w.Vehicle.X = minX
	}
	if w.Vehicle.X > maxX {
		w.Vehicle.X = maxX
	}

	maxY := w.cfg.Height - w.Vehicle.Height
	if w.Vehicle.Y < 0 {
		w.Vehicle.Y = 0
	}
	if w.Vehicle.Y > maxY {
		w.Vehicle.Y = maxY
	}
}
