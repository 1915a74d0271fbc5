package physics

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/trajectory"
)

// DampedPendulum is θ̈ = -μ·θ̇ - (g/L)·sin θ with state (θ, θ̇).
type DampedPendulum struct {
	Gravity float64
	Length  float64
	Drag    float64
}

func NewDampedPendulum(c Constants) *DampedPendulum {
	return &DampedPendulum{
		Gravity: c.Gravity,
		Length:  c.Length,
		Drag:    c.Drag,
	}
}

func (p *DampedPendulum) StateDim() int {
	return 2
}

// Acceleration evaluates the angular acceleration for the given state.
func (p *DampedPendulum) Acceleration(theta, thetaDot float64) float64 {
	return -p.Drag*thetaDot - (p.Gravity/p.Length)*math.Sin(theta)
}

func (p *DampedPendulum) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], p.Acceleration(x[0], x[1])}
}

// Energy is the mechanical energy per unit m·L²: 0.5·θ̇² - (g/L)·cos θ.
func (p *DampedPendulum) Energy(x dynamo.State) float64 {
	return 0.5*x[1]*x[1] - (p.Gravity/p.Length)*math.Cos(x[0])
}

func (p *DampedPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": p.Gravity,
		"length":  p.Length,
		"drag":    p.Drag,
	}
}

func (p *DampedPendulum) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		p.Gravity = value
	case "length":
		p.Length = value
	case "drag":
		p.Drag = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

func (p *DampedPendulum) constants() Constants {
	return Constants{Gravity: p.Gravity, Length: p.Length, Drag: p.Drag}
}

// PendulumResult is the sampled phase trajectory: X holds θ and Y holds θ̇.
type PendulumResult struct {
	Trajectory  trajectory.Trajectory
	Steps       int
	EnergyDrift float64
	Metrics     map[string]float64
}

// Option attaches metrics or observers to a pendulum run.
type Option func(*dynamo.Simulator)

func WithMetrics(ms ...dynamo.Metric) Option {
	return func(s *dynamo.Simulator) {
		for _, m := range ms {
			s.AddMetric(m)
		}
	}
}

func WithObserver(o dynamo.Observer) Option {
	return func(s *dynamo.Simulator) { s.AddObserver(o) }
}

// SimulatePendulum integrates the pendulum from (theta, thetaDot) for
// ceil(duration/dt) steps. The result holds steps+1 samples, the first being
// the initial condition. Metrics and observers see every sample.
func SimulatePendulum(ctx context.Context, p *DampedPendulum, integ dynamo.Integrator, theta, thetaDot, duration, dt float64, opts ...Option) (*PendulumResult, error) {
	if err := p.constants().Validate(); err != nil {
		return nil, err
	}

	sim := dynamo.New(p, integ)
	for _, opt := range opts {
		opt(sim)
	}

	cfg := dynamo.Config{Dt: dt, Duration: duration, ValidateState: true}
	res, err := sim.Run(ctx, dynamo.State{theta, thetaDot}, cfg)
	if err != nil {
		return nil, fmt.Errorf("pendulum: %w", err)
	}

	out := &PendulumResult{
		Trajectory: trajectory.Trajectory{
			Times: res.Times,
			X:     make([]float64, len(res.States)),
			Y:     make([]float64, len(res.States)),
		},
		Steps:       res.StepsTaken,
		EnergyDrift: res.EnergyDrift,
		Metrics:     res.Metrics,
	}
	for i, s := range res.States {
		out.Trajectory.X[i] = s[0]
		out.Trajectory.Y[i] = s[1]
	}
	return out, nil
}
