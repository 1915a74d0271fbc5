// Package trajectory holds the uniform time grid and the index-aligned
// coordinate sequences produced by a simulation run.
package trajectory

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMisaligned = errors.New("trajectory: coordinate sequences are not index-aligned")
	ErrNonUniform = errors.New("trajectory: time samples are not uniformly spaced")
)

// TimeSeries returns n samples t_i = i*dt.
func TimeSeries(n int, dt float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times
}

// MaxSamples caps the length of any sampled run.
const MaxSamples = 10_000_000

// WithinLimit reports whether sampling [0, end) at dt stays under MaxSamples.
// NaN and infinite ratios are outside the limit.
func WithinLimit(end, dt float64) bool {
	return end/dt <= MaxSamples
}

// SampleCount is the number of samples of arange(0, end, dt): ceil(end/dt).
// It is 0 for empty ranges and for ranges outside WithinLimit.
func SampleCount(end, dt float64) int {
	if !(end > 0) || !(dt > 0) || !WithinLimit(end, dt) {
		return 0
	}
	return int(math.Ceil(end / dt))
}

// Trajectory is a sequence of (x, y) points sampled on a uniform time grid.
// For the pendulum X is the angle and Y the angular velocity.
type Trajectory struct {
	Times []float64
	X     []float64
	Y     []float64
}

func (t *Trajectory) Len() int {
	return len(t.Times)
}

func (t *Trajectory) CheckAligned() error {
	if len(t.X) != len(t.Times) || len(t.Y) != len(t.Times) {
		return fmt.Errorf("%w: times=%d x=%d y=%d", ErrMisaligned, len(t.Times), len(t.X), len(t.Y))
	}
	return nil
}

// Validate checks index alignment and uniform, strictly increasing spacing.
func (t *Trajectory) Validate(dt float64) error {
	if err := t.CheckAligned(); err != nil {
		return err
	}
	tol := dt * 1e-6
	for i := 1; i < len(t.Times); i++ {
		gap := t.Times[i] - t.Times[i-1]
		if gap <= 0 || math.Abs(gap-dt) > tol {
			return fmt.Errorf("%w: gap %g at sample %d", ErrNonUniform, gap, i)
		}
	}
	return nil
}

// Last returns the final (x, y) sample.
func (t *Trajectory) Last() (x, y float64, ok bool) {
	n := len(t.X)
	if n == 0 || len(t.Y) != n {
		return 0, 0, false
	}
	return t.X[n-1], t.Y[n-1], true
}
