package integrators

import "github.com/san-kum/projsim/internal/dynamo"

// Euler is the explicit first-order method. Every component advances with the
// derivative evaluated at the start of the step, so positions move with the
// old velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return x.AddScaled(dt, dyn.Derive(x, t))
}
