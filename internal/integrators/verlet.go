package integrators

import "github.com/san-kum/physim/internal/dynamo"

// Verlet is velocity Verlet for states laid out as [positions..., velocities...],
// the layout of the pendulum's (θ, θ̇). The acceleration at the new position is
// evaluated with the pre-step velocity, which keeps the drag term explicit.
type Verlet struct {
	trial dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	h := n / 2
	if len(v.trial) != n {
		v.trial = make(dynamo.State, n)
	}

	acc := dyn.Derive(x, t)[h:]
	next := make(dynamo.State, n)
	for i := 0; i < h; i++ {
		next[i] = x[i] + dt*x[h+i] + 0.5*dt*dt*acc[i]
		v.trial[i] = next[i]
		v.trial[h+i] = x[h+i]
	}

	accNext := dyn.Derive(v.trial, t+dt)[h:]
	for i := 0; i < h; i++ {
		next[h+i] = x[h+i] + 0.5*dt*(acc[i]+accNext[i])
	}
	return next
}
