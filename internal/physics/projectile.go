package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/physim/internal/trajectory"
)

var ErrInvalidLaunch = errors.New("physics: invalid launch parameters")

const deg2rad = math.Pi / 180

// Projectile solves drag-free projectile motion in closed form. The
// projectile always lands at height 0.
type Projectile struct {
	Gravity float64
}

func NewProjectile(c Constants) *Projectile {
	return &Projectile{Gravity: c.Gravity}
}

type ProjectileResult struct {
	Trajectory trajectory.Trajectory
	FlightTime float64
	// Range is the rounded final horizontal displacement, negative for
	// launches past vertical.
	Range     float64
	Apex      float64
	ApexTime  float64
	VelocityX float64
	VelocityY float64
}

func validateLaunch(speed, angleDeg, height, dt float64) error {
	switch {
	case !(speed > 0) || math.IsInf(speed, 0):
		return fmt.Errorf("%w: speed must be positive and non-zero, got %g", ErrInvalidLaunch, speed)
	case !(angleDeg > 0 && angleDeg < 180):
		return fmt.Errorf("%w: launch angle must be between 0 and 180, got %g", ErrInvalidLaunch, angleDeg)
	case !(height >= 0) || math.IsInf(height, 0):
		return fmt.Errorf("%w: height cannot be negative, got %g", ErrInvalidLaunch, height)
	case !(dt > 0) || math.IsInf(dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidLaunch, dt)
	}
	return nil
}

// Simulate samples the flight at fixed steps of dt from 0 up to, but not
// including, the landing time. Horizontal positions are spread evenly over
// [0, range] across the samples so the landing point is hit exactly.
func (p *Projectile) Simulate(speed, angleDeg, height, dt float64) (*ProjectileResult, error) {
	if err := validateLaunch(speed, angleDeg, height, dt); err != nil {
		return nil, err
	}
	if !(p.Gravity > 0) {
		return nil, fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidLaunch, p.Gravity)
	}

	g := p.Gravity
	rad := angleDeg * deg2rad
	v0y := speed * math.Sin(rad)
	flight := p.FlightTime(speed, angleDeg, height)
	if !trajectory.WithinLimit(flight, dt) {
		return nil, fmt.Errorf("%w: flight of %gs at dt %g needs more than %d samples",
			ErrInvalidLaunch, flight, dt, trajectory.MaxSamples)
	}

	v0x := speed * math.Cos(rad)
	xf := roundTo(v0x*flight, 3)

	n := trajectory.SampleCount(flight, dt)
	times := trajectory.TimeSeries(n, dt)

	x := make([]float64, n)
	if n > 1 {
		floats.Span(x, 0, xf)
		x[n-1] = xf
	}

	y := make([]float64, n)
	for i, t := range times {
		y[i] = v0y*t - 0.5*g*(t*t) + height
	}

	return &ProjectileResult{
		Trajectory: trajectory.Trajectory{Times: times, X: x, Y: y},
		FlightTime: flight,
		Range:      xf,
		Apex:       height + v0y*v0y/(2*g),
		ApexTime:   v0y / g,
		VelocityX:  v0x,
		VelocityY:  v0y,
	}, nil
}

// FlightTime is the time until the projectile returns to height 0.
func (p *Projectile) FlightTime(speed, angleDeg, height float64) float64 {
	g := p.Gravity
	v0y := speed * math.Sin(angleDeg*deg2rad)
	vfy := -math.Sqrt(v0y*v0y + 2*g*height)
	return (vfy - v0y) / -g
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
