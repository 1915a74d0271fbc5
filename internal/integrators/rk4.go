package integrators

import "github.com/san-kum/physim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. It evaluates the
// system four times per step and reuses its stage buffers between steps, so
// a single RK4 must not be shared between concurrent runs.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	stage          dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.k1) == n {
		return
	}
	r.k1 = make(dynamo.State, n)
	r.k2 = make(dynamo.State, n)
	r.k3 = make(dynamo.State, n)
	r.k4 = make(dynamo.State, n)
	r.stage = make(dynamo.State, n)
}

// offset fills the stage buffer with x + h*k.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := 0.5 * dt

	copy(r.k1, dyn.Derive(x, t))
	copy(r.k2, dyn.Derive(r.offset(x, r.k1, half), t+half))
	copy(r.k3, dyn.Derive(r.offset(x, r.k2, half), t+half))
	copy(r.k4, dyn.Derive(r.offset(x, r.k3, dt), t+dt))

	next := make(dynamo.State, len(x))
	w := dt / 6
	for i := range x {
		next[i] = x[i] + w*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return next
}
