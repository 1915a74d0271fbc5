package config

import "sort"

var Presets = map[string]map[string]*Config{
	"projectile": {
		"textbook": {
			Model: "projectile", Dt: 0.01,
			Projectile: ProjectileInput{Speed: 20, Angle: 45, Height: 0},
		},
		"cliff": {
			Model: "projectile", Dt: 0.01,
			Projectile: ProjectileInput{Speed: 15, Angle: 30, Height: 40},
		},
		"lob": {
			Model: "projectile", Dt: 0.01,
			Projectile: ProjectileInput{Speed: 12, Angle: 75, Height: 1.5},
		},
		"backwards": {
			Model: "projectile", Dt: 0.01,
			Projectile: ProjectileInput{Speed: 18, Angle: 130, Height: 0},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Integrator: "euler", Dt: 0.01,
			Pendulum: PendulumInput{Theta: 0.2, Omega: 0.0, Duration: 60},
		},
		"large": {
			Model: "pendulum", Integrator: "euler", Dt: 0.01,
			Pendulum: PendulumInput{Theta: 2.5, Omega: 0.0, Duration: 60},
		},
		"spinning": {
			Model: "pendulum", Integrator: "euler", Dt: 0.01,
			Pendulum: PendulumInput{Theta: 0.1, Omega: 8.0, Duration: 60},
		},
	},
}

// GetPreset returns the named preset merged over DefaultConfig, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Model = p.Model
	if p.Integrator != "" {
		cfg.Integrator = p.Integrator
	}
	if p.Dt != 0 {
		cfg.Dt = p.Dt
	}
	switch p.Model {
	case "projectile":
		cfg.Projectile = p.Projectile
	case "pendulum":
		cfg.Pendulum = p.Pendulum
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
