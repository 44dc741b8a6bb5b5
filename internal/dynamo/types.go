package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddScaled returns s + h·d as a new state.
func (s State) AddScaled(h float64, d State) State {
	out := make(State, len(s))
	s.AddScaledInto(out, h, d)
	return out
}

// AddScaledInto writes s + h·d into dst, which must be at least len(s) long.
func (s State) AddScaledInto(dst State, h float64, d State) {
	for i, v := range s {
		dst[i] = v + h*d[i]
	}
}

// System is the right-hand side of an autonomous or time-dependent ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian systems expose a conserved quantity for drift checks.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}
