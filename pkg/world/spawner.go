package world

import "image/color"

// Spawner emits one obstacle every SpawnInterval ticks at a random lateral
// position inside the road band.
type Spawner struct {
	interval int
	timer    int // Ticks since the last spawn
	rng      Rand

	minX, maxX    float64
	width, height float64
}

// NewSpawner creates a spawner for the given geometry
func NewSpawner(cfg Config, rng Rand) *Spawner {
	interval := cfg.SpawnInterval
	if interval < 1 {
		interval = 1
	}
	maxX := cfg.RoadRight() - cfg.ObstacleWidth
	if maxX < cfg.RoadLeft() {
		maxX = cfg.RoadLeft()
	}
	return &Spawner{
		interval: interval,
		rng:      rng,
		minX:     cfg.RoadLeft(),
		maxX:     maxX,
		width:    cfg.ObstacleWidth,
		height:   cfg.ObstacleHeight,
	}
}

// Timer returns the ticks since the last spawn
func (s *Spawner) Timer() int {
	return s.timer
}

// Reset restarts the cadence
func (s *Spawner) Reset() {
	s.timer = 0
}

// Tick advances the cadence by one tick and returns a new obstacle when one is due
func (s *Spawner) Tick() (Obstacle, bool) {
	s.timer++
	if s.timer < s.interval {
		return Obstacle{}, false
	}
	s.timer = 0
	return s.spawn(), true
}

func (s *Spawner) spawn() Obstacle {
	rgb := s.rng.Uint32() & 0xFFFFFF
	return Obstacle{
		X:      s.minX + s.rng.Float64()*(s.maxX-s.minX),
		Y:      -s.height,
		Width:  s.width,
		Height: s.height,
		Color: color.RGBA{
			R: uint8(rgb >> 16),
			G: uint8(rgb >> 8),
			B: uint8(rgb),
			A: 255,
		},
	}
}
