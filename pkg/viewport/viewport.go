package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidContainer is returned when the host reports an unusable container size
var ErrInvalidContainer = errors.New("invalid container size")

// Size is a width and height in device-independent pixels
type Size struct {
	Width, Height float64
}

// Fit returns the largest size with the given aspect ratio (width / height)
// that fits inside the container.
func Fit(container Size, aspect float64) (Size, error) {
	if !valid(container.Width) || !valid(container.Height) {
		return Size{}, fmt.Errorf("%w: %vx%v", ErrInvalidContainer, container.Width, container.Height)
	}
	if !valid(aspect) {
		return Size{}, fmt.Errorf("invalid aspect ratio %v", aspect)
	}

	if container.Width/container.Height > aspect {
		// Wider than the target: height is the constraint
		return Size{Width: container.Height * aspect, Height: container.Height}, nil
	}
	return Size{Width: container.Width, Height: container.Width / aspect}, nil
}

func valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Adapter keeps the presentation size in step with the host container.
// The logical simulation size never changes.
type Adapter struct {
	logical Size
	display Size
}

// NewAdapter creates an adapter for a fixed logical size
func NewAdapter(logicalWidth, logicalHeight float64) *Adapter {
	logical := Size{Width: logicalWidth, Height: logicalHeight}
	return &Adapter{logical: logical, display: logical}
}

// Aspect is the logical width over height
func (a *Adapter) Aspect() float64 {
	return a.logical.Width / a.logical.Height
}

// Logical returns the fixed simulation size
func (a *Adapter) Logical() Size {
	return a.logical
}

// Display returns the last good presentation size
func (a *Adapter) Display() Size {
	return a.display
}

// Scale is the display width over the logical width
func (a *Adapter) Scale() float64 {
	return a.display.Width / a.logical.Width
}

// Resize recomputes the presentation size for a new container.
// On error the previous size is kept.
func (a *Adapter) Resize(containerWidth, containerHeight float64) (Size, error) {
	s, err := Fit(Size{Width: containerWidth, Height: containerHeight}, a.Aspect())
	if err != nil {
		return a.display, err
	}
	a.display = s
	return s, nil
}
