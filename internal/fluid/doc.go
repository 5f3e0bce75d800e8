// Package fluid implements the numerical core of a smoothed-particle
// hydrodynamics simulation: kernel evaluation, spatial neighbor queries,
// SPH field interpolation, the force pipeline, and the particle system
// that ties them together.
//
// A [System] owns its particles, forces and fields for its lifetime;
// fields and forces hold non-owning references back into it. Everything
// runs single-threaded: one call to [System.Step] performs the complete
// advance, including boundary collision handling, before returning.
//
//	sys := fluid.NewSystem(solver.NewEuler(), fluid.DefaultParams())
//	sys.AddParticle(fluid.NewParticle(pos, vel, mass, true))
//	sys.AddForce(fluid.NewPressureForce(nil))
//	sys.Step(true)
//
// Force application order is registration order; floating-point
// accumulation makes determinism best-effort across force reorderings but
// exact for repeated runs of the same setup.
package fluid
