package integrators

import "github.com/san-kum/physim/internal/dynamo"

// Euler is the explicit first-order method. Every component is advanced from
// the derivative of the pre-step state, so the update is simultaneous.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dx[i]*dt
	}
	return result
}
