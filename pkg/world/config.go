package world

import (
	"errors"
	"fmt"
)

// Config holds the fixed geometry and tuning of a simulation session.
// All distances are in logical pixels, all speeds in pixels per tick.
type Config struct {
	Width  float64 // Logical canvas width
	Height float64 // Logical canvas height

	RoadWidth  float64 // Width of the drivable band, centered horizontally
	LineWidth  float64 // Width of a centerline dash
	LineHeight float64 // Height of a centerline dash; scroll offset wraps at this value

	VehicleWidth  float64
	VehicleHeight float64
	StartOffsetY  float64 // Vehicle starts this far above the bottom edge
	Speed         float64 // Horizontal step per tick; vertical step is half of this

	ObstacleWidth  float64
	ObstacleHeight float64
	SpawnInterval  int // Ticks between obstacle spawns

	CruiseSpeed float64 // Scroll speed with no vertical intent
	FastSpeed   float64 // Scroll speed while accelerating
	SlowSpeed   float64 // Scroll speed while braking
}

// DefaultConfig returns the standard 800x600 arcade layout
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		RoadWidth:      300,
		LineWidth:      10,
		LineHeight:     50,
		VehicleWidth:   30,
		VehicleHeight:  50,
		StartOffsetY:   100,
		Speed:          5,
		ObstacleWidth:  60,
		ObstacleHeight: 40,
		SpawnInterval:  60,
		CruiseSpeed:    5,
		FastSpeed:      8,
		SlowSpeed:      3,
	}
}

// RoadLeft is the x coordinate of the left edge of the road band
func (c Config) RoadLeft() float64 {
	return (c.Width - c.RoadWidth) / 2
}

// RoadRight is the x coordinate of the right edge of the road band
func (c Config) RoadRight() float64 {
	return (c.Width + c.RoadWidth) / 2
}

// Validate rejects geometry that would make the road band or the spawn range empty
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %.0fx%.0f", c.Width, c.Height))
	}
	if c.RoadWidth <= 0 || c.RoadWidth > c.Width {
		errs = append(errs, fmt.Errorf("road width %.0f must be in (0, %.0f]", c.RoadWidth, c.Width))
	}
	if c.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("line height must be positive, got %.0f", c.LineHeight))
	}
	if c.VehicleWidth <= 0 || c.VehicleHeight <= 0 || c.VehicleWidth > c.RoadWidth || c.VehicleHeight > c.Height {
		errs = append(errs, fmt.Errorf("vehicle %.0fx%.0f does not fit the road", c.VehicleWidth, c.VehicleHeight))
	}
	if c.ObstacleWidth <= 0 || c.ObstacleHeight <= 0 || c.ObstacleWidth > c.RoadWidth {
		errs = append(errs, fmt.Errorf("obstacle %.0fx%.0f does not fit the road", c.ObstacleWidth, c.ObstacleHeight))
	}
	if c.SpawnInterval < 1 {
		errs = append(errs, fmt.Errorf("spawn interval must be at least 1 tick, got %d", c.SpawnInterval))
	}
	if c.Speed < 0 || c.CruiseSpeed < 0 || c.FastSpeed < 0 || c.SlowSpeed < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	return errors.Join(errs...)
}
