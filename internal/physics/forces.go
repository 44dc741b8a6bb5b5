package physics

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/projectile"
	"github.com/san-kum/projsim/internal/vec"
)

// ballistic is the ODE for one projectile: x = (px, py, vx, vy).
type ballistic struct {
	mass    float64
	gravity float64
	kOverM  float64
}

func newBallistic(p projectile.Projectile, gravity, k float64) *ballistic {
	return &ballistic{mass: p.Mass, gravity: gravity, kOverM: k / p.Mass}
}

func (b *ballistic) StateDim() int { return 4 }

func (b *ballistic) Derive(x dynamo.State, t float64) dynamo.State {
	a := b.acceleration(vec.Vec2{X: x[2], Y: x[3]})
	return dynamo.State{x[2], x[3], a.X, a.Y}
}

func (b *ballistic) acceleration(v vec.Vec2) vec.Vec2 {
	a := vec.Vec2{Y: -b.gravity}
	if b.kOverM != 0 {
		a = a.Sub(v.Scale(b.kOverM * v.Norm()))
	}
	return a
}

// Energy is the mechanical energy ½m|v|² + m·g·y. Drag makes it decrease;
// without drag any change is integration error.
func (b *ballistic) Energy(x dynamo.State) float64 {
	v := vec.Vec2{X: x[2], Y: x[3]}
	return 0.5*b.mass*v.Norm2() + b.mass*b.gravity*x[1]
}

// sampleEnergy adapts a conserved-quantity system to the per-sample form
// the drift metric observes. The state buffer is reused across calls.
func sampleEnergy(h dynamo.Hamiltonian) metrics.EnergyFunc {
	x := make(dynamo.State, 4)
	return func(pos, vel vec.Vec2) float64 {
		x[0], x[1], x[2], x[3] = pos.X, pos.Y, vel.X, vel.Y
		return h.Energy(x)
	}
}

func stateOf(p projectile.Projectile) dynamo.State {
	return dynamo.State{p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y}
}

// estimateSamples sizes the trajectory buffer from the drag-free flight time.
// Drag only shortens the flight, so this is an upper bound in practice.
func estimateSamples(p projectile.Projectile, gravity, dt float64, maxSteps int) int {
	const fallback = 1024
	limit := maxSteps + 1
	if gravity <= 0 {
		return min(fallback, limit)
	}
	vy, y := p.Velocity.Y, p.Position.Y
	disc := vy*vy + 2*gravity*math.Max(y, 0)
	tof := (vy + math.Sqrt(disc)) / gravity
	n := int(math.Ceil(tof/dt)) + 2
	if n < 2 {
		n = 2
	}
	return min(n, limit)
}
