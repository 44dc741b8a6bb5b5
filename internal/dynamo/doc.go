// Package dynamo provides core simulation primitives shared by the engine
// and its integrators.
//
// The package defines:
//
//   - [State]: flat vector of the integrated quantities
//   - [System]: an ODE right-hand side, dX/dt = f(X, t)
//   - [Integrator]: a fixed-step numerical stepper over a [System]
//   - domain errors and [SimulationError]
//
// # Example
//
//	integ := integrators.NewRK4()
//	x = integ.Step(sys, x, t, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. Create one per
// simulation run.
package dynamo
