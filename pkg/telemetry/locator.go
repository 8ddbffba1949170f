package telemetry

import (
	"context"
	"errors"
)

// ErrLocationUnavailable means no position could be obtained
var ErrLocationUnavailable = errors.New("location unavailable")

// Locator produces a position fix
type Locator interface {
	Locate(ctx context.Context) (Location, error)
}

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func(ctx context.Context) (Location, error)

func (f LocatorFunc) Locate(ctx context.Context) (Location, error) {
	return f(ctx)
}

// StaticLocator always reports the same configured position
type StaticLocator struct {
	Fix Location
}

func (s StaticLocator) Locate(ctx context.Context) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	return s.Fix, nil
}
