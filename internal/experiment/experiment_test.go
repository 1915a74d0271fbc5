package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
)

func TestRegistryIntegrators(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"euler", "rk4", "verlet"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("GetIntegrator(%q): %v", name, err)
		}
	}

	if _, err := r.GetIntegrator("rk45"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}

	names := r.ListIntegrators()
	if len(names) != 3 || names[0] != "euler" || names[2] != "verlet" {
		t.Errorf("unexpected integrator list %v", names)
	}
}

func TestRunProjectile(t *testing.T) {
	run, err := NewRunner(nil).RunProjectile(config.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if run.Kind != KindProjectile {
		t.Errorf("unexpected kind %s", run.Kind)
	}
	if run.Title != "Arc of launched projectile" || run.XLabel != "X (m)" || run.YLabel != "Y (m)" {
		t.Errorf("unexpected labels %q %q %q", run.Title, run.XLabel, run.YLabel)
	}
	if run.Trajectory.Len() != 289 {
		t.Errorf("expected 289 samples, got %d", run.Trajectory.Len())
	}

	flight, _ := run.Stat("flight time")
	if !scalar.EqualWithinAbs(flight, 2.886, 1e-3) {
		t.Errorf("expected flight time ~2.886, got %f", flight)
	}
	apex, _ := run.Stat("apex")
	if !scalar.EqualWithinAbs(apex, 10.204, 1e-3) {
		t.Errorf("expected apex ~10.204, got %f", apex)
	}

	b := run.Bounds
	if !scalar.EqualWithinAbs(b.Width(), b.Height(), 1e-12) {
		t.Errorf("projectile bounds should be square, got %+v", b)
	}
	if b.XMin != 0 {
		t.Errorf("forward launch should extend right, got %+v", b)
	}
}

func TestRunProjectileBackwards(t *testing.T) {
	cfg := config.GetPreset("projectile", "backwards")
	run, err := NewRunner(nil).RunProjectile(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Bounds.XMax != 0 || run.Bounds.XMin >= 0 {
		t.Errorf("launch past vertical should extend left, got %+v", run.Bounds)
	}
}

func TestRunProjectileInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero speed", func(c *config.Config) { c.Projectile.Speed = 0 }},
		{"flat angle", func(c *config.Config) { c.Projectile.Angle = 180 }},
		{"below ground", func(c *config.Config) { c.Projectile.Height = -2 }},
		{"zero dt", func(c *config.Config) { c.Dt = 0 }},
		{"no gravity", func(c *config.Config) { c.Physics.Gravity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if _, err := NewRunner(nil).RunProjectile(cfg); !errors.Is(err, config.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRunPendulum(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"

	run, err := NewRunner(nil).RunPendulum(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if run.Title != "Theta vs Velocity of pendulum with drag force" {
		t.Errorf("unexpected title %q", run.Title)
	}
	if run.XLabel != "Theta (radians)" || run.YLabel != "Velocity (m/s)" {
		t.Errorf("unexpected labels %q %q", run.XLabel, run.YLabel)
	}
	if run.Trajectory.Len() != 6001 {
		t.Errorf("expected 6001 samples, got %d", run.Trajectory.Len())
	}
	if run.Marker == nil || run.Marker.X != 1 || run.Marker.Y != 0 {
		t.Errorf("initial state should be marked, got %+v", run.Marker)
	}

	ratio, ok := run.Stat("envelope ratio")
	if !ok || ratio >= 1 {
		t.Errorf("damped pendulum should lose amplitude, envelope ratio %f", ratio)
	}

	for i := range run.Trajectory.X {
		if !run.Bounds.Contains(run.Trajectory.X[i], run.Trajectory.Y[i]) {
			t.Fatalf("sample %d outside bounds %+v", i, run.Bounds)
		}
	}
}

func TestRunPendulumUsesPhysicsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Pendulum.Duration = 1
	cfg.Physics.Drag = 0
	cfg.Physics.Length = 1

	run, err := NewRunner(nil).RunPendulum(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	theta, omega := 1.0, 0.0
	for i := 1; i < run.Trajectory.Len(); i++ {
		acc := -(9.8 / 1.0) * math.Sin(theta)
		theta += omega * 0.01
		omega += acc * 0.01
	}
	last := run.Trajectory.Len() - 1
	if run.Trajectory.X[last] != theta || run.Trajectory.Y[last] != omega {
		t.Errorf("final state (%v, %v), want (%v, %v)", run.Trajectory.X[last], run.Trajectory.Y[last], theta, omega)
	}
}

func TestApplyParamsUnknown(t *testing.T) {
	err := applyParams(physics.NewDampedPendulum(physics.DefaultConstants()), map[string]float64{"mass": 1})
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunPendulumLogsSteps(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"

	run, err := NewRunner(zap.New(core)).RunPendulum(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	steps, _ := run.Stat("steps")
	want := int(steps)/progressEvery + 1
	if got := logs.FilterMessage("pendulum step").Len(); got != want {
		t.Errorf("expected %d step entries, got %d", want, got)
	}
	if logs.FilterMessage("pendulum integrated").Len() != 1 {
		t.Error("missing run summary entry")
	}
}

func TestRunPendulumQuietAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"

	if _, err := NewRunner(zap.New(core)).RunPendulum(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no entries at info level, got %d", logs.Len())
	}
}

func TestRunPendulumUnknownIntegrator(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Integrator = "leapfrog"

	if _, err := NewRunner(nil).RunPendulum(context.Background(), cfg); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestRunPendulumCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"

	if _, err := NewRunner(nil).RunPendulum(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunPendulumBlowsUp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Dt = 1e200
	cfg.Pendulum.Duration = 1e201

	_, err := NewRunner(nil).RunPendulum(context.Background(), cfg)
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Physics.Drag = 0
	cfg.Pendulum.Theta = 0.5
	cfg.Pendulum.Duration = 10

	rows, err := NewRunner(nil).Compare(context.Background(), cfg, []string{"euler", "rk4", "bogus"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	euler, rk4, bogus := rows[0], rows[1], rows[2]
	if euler.Err != nil || rk4.Err != nil {
		t.Fatalf("unexpected errors: %v, %v", euler.Err, rk4.Err)
	}
	if !errors.Is(bogus.Err, ErrUnknownIntegrator) {
		t.Errorf("expected unknown integrator row, got %v", bogus.Err)
	}
	if rk4.EnergyDrift >= euler.EnergyDrift {
		t.Errorf("rk4 drift %e should be below euler drift %e", rk4.EnergyDrift, euler.EnergyDrift)
	}
	if math.Abs(rk4.FinalTheta-euler.FinalTheta) > 0.5 {
		t.Errorf("integrators disagree too much: %f vs %f", rk4.FinalTheta, euler.FinalTheta)
	}
}

func TestCompareDefaultsToAllIntegrators(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pendulum.Duration = 1

	rows, err := NewRunner(nil).Compare(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected a row per registered integrator, got %d", len(rows))
	}
}

func TestRunFigure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Pendulum.Duration = 5

	run, err := NewRunner(nil).RunPendulum(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	fig := run.Figure()
	if fig.Title != run.Title || len(fig.X) != run.Trajectory.Len() {
		t.Error("figure does not carry the run")
	}
	if len(fig.Panels) != 2 {
		t.Errorf("expected theta and velocity panels, got %d", len(fig.Panels))
	}
	if fig.Marker == nil || fig.Marker.Label != "initial state" {
		t.Errorf("unexpected marker %+v", fig.Marker)
	}
	if len(fig.Notes) != len(run.Summary) {
		t.Errorf("expected a note per summary stat, got %d", len(fig.Notes))
	}
}
