package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/projsim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// freeFall is y'' = -g with state (y, vy).
type freeFall struct{ g float64 }

func (f *freeFall) StateDim() int { return 2 }

func (f *freeFall) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -f.g}
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4_ExactForConstantAcceleration(t *testing.T) {
	dyn := &freeFall{g: 9.81}
	integ := NewRK4()

	x := dynamo.State{0, 20}
	dt := 0.1
	for i := 0; i < 10; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	wantY := 20*1.0 - 0.5*9.81*1.0
	if math.Abs(x[0]-wantY) > 1e-9 {
		t.Errorf("y = %.12f, want %.12f", x[0], wantY)
	}
}

func TestEuler_UsesStartOfStepVelocity(t *testing.T) {
	dyn := &freeFall{g: 10}
	integ := NewEuler()

	x := integ.Step(dyn, dynamo.State{0, 5}, 0, 0.1)

	if math.Abs(x[0]-0.5) > 1e-12 {
		t.Errorf("y = %f, want 0.5 (old velocity times dt)", x[0])
	}
	if math.Abs(x[1]-4) > 1e-12 {
		t.Errorf("vy = %f, want 4", x[1])
	}
}

func TestRK4_BeatsEulerOnEnergy(t *testing.T) {
	dyn := &harmonicOscillator{}
	for _, dt := range []float64{0.1, 0.01, 0.001} {
		rk4, euler := NewRK4(), NewEuler()
		xr := dynamo.State{1, 0}
		xe := dynamo.State{1, 0}
		steps := int(1.0 / dt)
		for i := 0; i < steps; i++ {
			xr = rk4.Step(dyn, xr, float64(i)*dt, dt)
			xe = euler.Step(dyn, xe, float64(i)*dt, dt)
		}

		dr := math.Abs(dyn.Energy(xr) - 0.5)
		de := math.Abs(dyn.Energy(xe) - 0.5)
		if dr >= de {
			t.Errorf("dt=%g: rk4 drift %e not below euler drift %e", dt, dr, de)
		}
	}
}

func TestRK4_DoesNotMutateInput(t *testing.T) {
	x0 := dynamo.State{1, 0}
	_ = NewRK4().Step(&harmonicOscillator{}, x0, 0, 0.1)
	if x0[0] != 1 || x0[1] != 0 {
		t.Errorf("input state mutated: %v", x0)
	}
}
