// Package dynamo provides the fixed-step simulation primitives shared by the
// physics models.
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical integrator
//   - [Simulator]: drives an integrator over a uniform time grid
//
// # Example
//
//	dyn := physics.NewDampedPendulum(physics.DefaultConstants())
//	sim := dynamo.New(dyn, integrators.NewEuler())
//	result, _ := sim.Run(ctx, dynamo.State{1, 0}, dynamo.Config{Dt: 0.01, Duration: 60, ValidateState: true})
//
// Time samples are computed as i*dt rather than accumulated, so the time
// grid stays strictly uniform for any step count.
package dynamo
