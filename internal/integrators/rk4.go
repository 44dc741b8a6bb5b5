package integrators

import "github.com/san-kum/projsim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method with (1,2,2,1)/6
// weights. All components of the state advance together in every stage.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// Step advances x by dt. The returned state is freshly allocated; x is not
// modified.
func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.ensureScratch(len(x))
	half := dt / 2

	copy(r.k1, dyn.Derive(x, t))
	x.AddScaledInto(r.scratch, half, r.k1)
	copy(r.k2, dyn.Derive(r.scratch, t+half))
	x.AddScaledInto(r.scratch, half, r.k2)
	copy(r.k3, dyn.Derive(r.scratch, t+half))
	x.AddScaledInto(r.scratch, dt, r.k3)
	copy(r.k4, dyn.Derive(r.scratch, t+dt))

	for i := range r.scratch {
		r.scratch[i] = r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i]
	}
	return x.AddScaled(dt/6, r.scratch)
}
