package metrics

import (
	"math"

	"github.com/san-kum/physim/internal/dynamo"
)

// Energy averages the pendulum's mechanical energy per unit m·L²,
// 0.5·θ̇² - (g/L)·cos θ, over all observed samples.
type Energy struct {
	name        string
	gravity     float64
	length      float64
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity, length float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
		length:  length,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	theta, omega := x[0], x[1]
	e.totalEnergy += 0.5*omega*omega - (e.gravity/e.length)*math.Cos(theta)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the initial energy
// of a Hamiltonian system.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	h, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
