// Package physics provides the two simulated systems.
//
//   - [Projectile]: closed-form, drag-free projectile motion sampled on a
//     uniform time grid
//   - [DampedPendulum]: θ̈ = -μ·θ̇ - (g/L)·sin θ, implementing [dynamo.System]
//
// The pendulum also implements [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian] for energy monitoring:
//
//	p := physics.NewDampedPendulum(physics.DefaultConstants())
//	res, _ := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1, 0, 60, 0.01)
package physics
