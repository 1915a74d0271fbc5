package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/trajectory"
)

const (
	DefaultSpeed      = 20.0
	DefaultAngle      = 45.0
	DefaultHeight     = 0.0
	DefaultTheta      = 1.0
	DefaultOmega      = 0.0
	DefaultIntegrator = "euler"
	DefaultFormat     = "ascii"
	DefaultWidth      = 72
	DefaultPlotHeight = 20
)

var ErrInvalidInput = errors.New("config: invalid input")

// Messages shown to the user when an input is rejected.
const (
	MsgSpeed  = "Velocity must be positive and non-zero."
	MsgAngle  = "Launch angle must be between 0 and 180."
	MsgHeight = "Sorry, initial height cannot be negative."
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Physics    PhysicsConfig   `yaml:"physics"`
	Projectile ProjectileInput `yaml:"projectile"`
	Pendulum   PendulumInput   `yaml:"pendulum"`
	Render     RenderConfig    `yaml:"render"`
}

type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
	Length  float64 `yaml:"length"`
	Drag    float64 `yaml:"drag"`
}

type ProjectileInput struct {
	Speed  float64 `yaml:"speed"`
	Angle  float64 `yaml:"angle"`
	Height float64 `yaml:"height"`
}

type PendulumInput struct {
	Theta    float64 `yaml:"theta"`
	Omega    float64 `yaml:"omega"`
	Duration float64 `yaml:"duration"`
}

type RenderConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "projectile",
		Integrator: DefaultIntegrator,
		Dt:         physics.DefaultDt,
		Physics: PhysicsConfig{
			Gravity: physics.DefaultGravity,
			Length:  physics.DefaultLength,
			Drag:    physics.DefaultDrag,
		},
		Projectile: ProjectileInput{
			Speed:  DefaultSpeed,
			Angle:  DefaultAngle,
			Height: DefaultHeight,
		},
		Pendulum: PendulumInput{
			Theta:    DefaultTheta,
			Omega:    DefaultOmega,
			Duration: physics.DefaultDuration,
		},
		Render: RenderConfig{
			Format: DefaultFormat,
			Width:  DefaultWidth,
			Height: DefaultPlotHeight,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in a YAML file onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params lists the physical constants by the names the pendulum accepts.
func (p PhysicsConfig) Params() map[string]float64 {
	return map[string]float64{
		"gravity": p.Gravity,
		"length":  p.Length,
		"drag":    p.Drag,
	}
}

func (c *Config) Constants() physics.Constants {
	return physics.Constants{
		Gravity: c.Physics.Gravity,
		Length:  c.Physics.Length,
		Drag:    c.Physics.Drag,
	}
}

// Validate checks the fields used by c.Model.
func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidInput, c.Dt)
	}
	if err := c.Constants().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var span float64
	switch c.Model {
	case "projectile":
		if err := c.Projectile.Validate(); err != nil {
			return err
		}
		in := c.Projectile
		span = physics.NewProjectile(c.Constants()).FlightTime(in.Speed, in.Angle, in.Height)
	case "pendulum":
		if err := c.Pendulum.Validate(); err != nil {
			return err
		}
		span = c.Pendulum.Duration
	default:
		return fmt.Errorf("%w: unknown model %q", ErrInvalidInput, c.Model)
	}
	if !trajectory.WithinLimit(span, c.Dt) {
		return fmt.Errorf("%w: %gs at dt %g needs more than %d samples", ErrInvalidInput, span, c.Dt, trajectory.MaxSamples)
	}
	return nil
}

func (p ProjectileInput) Validate() error {
	if err := CheckSpeed(p.Speed); err != nil {
		return err
	}
	if err := CheckAngle(p.Angle); err != nil {
		return err
	}
	return CheckHeight(p.Height)
}

func (p PendulumInput) Validate() error {
	if !isFinite(p.Theta) || !isFinite(p.Omega) {
		return fmt.Errorf("%w: initial angle and velocity must be finite", ErrInvalidInput)
	}
	if !(p.Duration > 0) || math.IsInf(p.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidInput, p.Duration)
	}
	return nil
}

func CheckSpeed(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgSpeed)
	}
	return nil
}

func CheckAngle(deg float64) error {
	if !(deg > 0 && deg < 180) {
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgAngle)
	}
	return nil
}

func CheckHeight(h float64) error {
	if !(h >= 0) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgHeight)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
