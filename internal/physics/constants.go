package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physim/internal/dynamo"
)

const (
	DefaultGravity = 9.8
	DefaultLength  = 2.0
	DefaultDrag    = 0.1
	DefaultDt      = 0.01
	// DefaultDuration is how long the pendulum is followed, in seconds.
	DefaultDuration = 60.0
)

// Constants are the process-wide physical parameters shared by both models.
type Constants struct {
	Gravity float64
	Length  float64
	Drag    float64
}

func DefaultConstants() Constants {
	return Constants{
		Gravity: DefaultGravity,
		Length:  DefaultLength,
		Drag:    DefaultDrag,
	}
}

func (c Constants) Validate() error {
	if !(c.Gravity > 0) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be positive, got %g", dynamo.ErrParameterBounds, c.Gravity)
	}
	if !(c.Length > 0) || math.IsInf(c.Length, 0) {
		return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, c.Length)
	}
	if !(c.Drag >= 0) || math.IsInf(c.Drag, 0) {
		return fmt.Errorf("%w: drag must be non-negative, got %g", dynamo.ErrParameterBounds, c.Drag)
	}
	return nil
}
