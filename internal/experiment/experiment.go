package experiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/physim/internal/axis"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/trajectory"
	"github.com/san-kum/physim/internal/viz"
)

type Kind string

const (
	KindProjectile Kind = "projectile"
	KindPendulum   Kind = "pendulum"
)

// phaseMargin pads the pendulum phase portrait on each side.
const phaseMargin = 0.05

type Marker struct {
	X, Y  float64
	Label string
}

// Stat is one line of a run summary.
type Stat struct {
	Name  string
	Value float64
	Unit  string
}

// Run is a finished simulation together with everything needed to plot it.
type Run struct {
	Kind       Kind
	Title      string
	XLabel     string
	YLabel     string
	Trajectory trajectory.Trajectory
	Bounds     axis.Bounds
	Marker     *Marker
	Summary    []Stat
	Integrator string
	Dt         float64
}

func (r *Run) Stat(name string) (float64, bool) {
	for _, s := range r.Summary {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// Figure converts the run into something a renderer can draw. The
// projectile gets a height-over-time panel, the pendulum one panel per state
// component.
func (r *Run) Figure() viz.Figure {
	traj := r.Trajectory
	fig := viz.Figure{
		Title:  r.Title,
		XLabel: r.XLabel,
		YLabel: r.YLabel,
		X:      traj.X,
		Y:      traj.Y,
		Bounds: r.Bounds,
	}
	if r.Marker != nil {
		fig.Marker = &viz.Point{X: r.Marker.X, Y: r.Marker.Y, Label: r.Marker.Label}
	}

	switch r.Kind {
	case KindProjectile:
		fig.Panels = []viz.Series{{Name: "Y (m) over time", Values: traj.Y}}
	case KindPendulum:
		fig.Panels = []viz.Series{
			{Name: "Theta (radians) over time", Values: traj.X},
			{Name: "Velocity (m/s) over time", Values: traj.Y},
		}
	}

	for _, st := range r.Summary {
		fig.Notes = append(fig.Notes, strings.TrimSpace(fmt.Sprintf("%-16s %.4f %s", st.Name, st.Value, st.Unit)))
	}
	return fig
}

type Runner struct {
	registry *Registry
	log      *zap.Logger
}

// NewRunner builds a runner. A nil logger discards all log output.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{registry: NewRegistry(), log: log}
}

func (r *Runner) RunProjectile(cfg *config.Config) (*Run, error) {
	in := cfg.Projectile
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Constants().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidInput, err)
	}

	start := time.Now()
	res, err := physics.NewProjectile(cfg.Constants()).Simulate(in.Speed, in.Angle, in.Height, cfg.Dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidInput, err)
	}
	r.log.Debug("projectile solved",
		zap.Float64("speed", in.Speed),
		zap.Float64("angle", in.Angle),
		zap.Float64("height", in.Height),
		zap.Float64("dt", cfg.Dt),
		zap.Int("samples", res.Trajectory.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	traj := res.Trajectory
	return &Run{
		Kind:       KindProjectile,
		Title:      "Arc of launched projectile",
		XLabel:     "X (m)",
		YLabel:     "Y (m)",
		Trajectory: traj,
		Bounds:     axis.Symmetric(traj.X, traj.Y, axis.DirectionOf(traj.X)),
		Marker:     &Marker{X: 0, Y: in.Height, Label: "launch"},
		Summary: []Stat{
			{Name: "flight time", Value: res.FlightTime, Unit: "s"},
			{Name: "range", Value: res.Range, Unit: "m"},
			{Name: "apex", Value: res.Apex, Unit: "m"},
			{Name: "apex time", Value: res.ApexTime, Unit: "s"},
			{Name: "samples", Value: float64(traj.Len())},
		},
		Dt: cfg.Dt,
	}, nil
}

func (r *Runner) RunPendulum(ctx context.Context, cfg *config.Config) (*Run, error) {
	return r.runPendulum(ctx, cfg, cfg.Integrator)
}

func (r *Runner) runPendulum(ctx context.Context, cfg *config.Config, integName string) (*Run, error) {
	in := cfg.Pendulum
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Constants().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidInput, err)
	}
	integ, err := r.registry.GetIntegrator(integName)
	if err != nil {
		return nil, err
	}

	p := physics.NewDampedPendulum(physics.DefaultConstants())
	if err := applyParams(p, cfg.Physics.Params()); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidInput, err)
	}

	opts := []physics.Option{physics.WithMetrics(r.registry.DefaultMetrics(p)...)}
	if r.log.Core().Enabled(zapcore.DebugLevel) {
		opts = append(opts, physics.WithObserver(&stepLogger{log: r.log, every: progressEvery}))
	}

	start := time.Now()
	res, err := physics.SimulatePendulum(ctx, p, integ, in.Theta, in.Omega, in.Duration, cfg.Dt, opts...)
	if err != nil {
		r.log.Warn("pendulum run failed", zap.String("integrator", integName), zap.Error(err))
		return nil, err
	}
	r.log.Debug("pendulum integrated",
		zap.String("integrator", integName),
		zap.Any("params", p.GetParams()),
		zap.Float64("theta", in.Theta),
		zap.Float64("omega", in.Omega),
		zap.Float64("dt", cfg.Dt),
		zap.Int("steps", res.Steps),
		zap.Float64("energy_drift", res.EnergyDrift),
		zap.Duration("elapsed", time.Since(start)),
	)

	traj := res.Trajectory
	last := traj.Len() - 1
	return &Run{
		Kind:       KindPendulum,
		Title:      "Theta vs Velocity of pendulum with drag force",
		XLabel:     "Theta (radians)",
		YLabel:     "Velocity (m/s)",
		Trajectory: traj,
		Bounds:     axis.Fit(traj.X, traj.Y, phaseMargin),
		Marker:     &Marker{X: in.Theta, Y: in.Omega, Label: "initial state"},
		Summary: []Stat{
			{Name: "steps", Value: float64(res.Steps)},
			{Name: "final theta", Value: traj.X[last], Unit: "rad"},
			{Name: "final omega", Value: traj.Y[last], Unit: "rad/s"},
			{Name: "mean energy", Value: res.Metrics["energy"]},
			{Name: "energy drift", Value: res.Metrics["energy_drift"]},
			{Name: "envelope ratio", Value: res.Metrics["envelope"]},
		},
		Integrator: integName,
		Dt:         cfg.Dt,
	}, nil
}

func applyParams(c dynamo.Configurable, params map[string]float64) error {
	for name, v := range params {
		if err := c.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

// progressEvery is how many samples pass between step log lines.
const progressEvery = 1000

// stepLogger logs the pendulum state every few samples at debug level.
type stepLogger struct {
	log   *zap.Logger
	every int
	seen  int
}

func (l *stepLogger) OnStep(x dynamo.State, t float64) {
	if l.seen%l.every == 0 {
		l.log.Debug("pendulum step",
			zap.Int("sample", l.seen),
			zap.Float64("t", t),
			zap.Float64("theta", x[0]),
			zap.Float64("omega", x[1]),
		)
	}
	l.seen++
}

// Comparison is one row of an integrator comparison.
type Comparison struct {
	Integrator  string
	FinalTheta  float64
	FinalOmega  float64
	EnergyDrift float64
	Elapsed     time.Duration
	Err         error
}

// Compare runs the pendulum from the same configuration with each named
// integrator. A failing integrator is reported in its row and does not stop
// the others; only context cancellation aborts the comparison.
func (r *Runner) Compare(ctx context.Context, cfg *config.Config, names []string) ([]Comparison, error) {
	if len(names) == 0 {
		names = r.registry.ListIntegrators()
	}

	rows := make([]Comparison, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		start := time.Now()
		run, err := r.runPendulum(ctx, cfg, name)
		row := Comparison{Integrator: name, Elapsed: time.Since(start), Err: err}
		if err == nil {
			row.FinalTheta, _ = run.Stat("final theta")
			row.FinalOmega, _ = run.Stat("final omega")
			row.EnergyDrift, _ = run.Stat("energy drift")
		}
		rows = append(rows, row)
	}
	return rows, nil
}
