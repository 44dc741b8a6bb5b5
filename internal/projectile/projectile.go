// Package projectile holds the launch state consumed by the physics engine.
package projectile

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/vec"
)

// Projectile is a value: copies are independent and the engine never writes
// back to the caller's instance.
type Projectile struct {
	Mass     float64  // kg
	Radius   float64  // m
	Position vec.Vec2 // m, y-up
	Velocity vec.Vec2 // m/s
}

// New returns a validated Projectile.
func New(mass, radius float64, pos, vel vec.Vec2) (Projectile, error) {
	p := Projectile{Mass: mass, Radius: radius, Position: pos, Velocity: vel}
	if err := p.Validate(); err != nil {
		return Projectile{}, err
	}
	return p, nil
}

// Launch builds a projectile leaving (0, height) at speed m/s and angleDeg
// degrees above the horizontal.
func Launch(mass, radius, speed, angleDeg, height float64) (Projectile, error) {
	theta := angleDeg * math.Pi / 180
	return New(mass, radius, vec.Vec2{Y: height}, vec.FromPolar(speed, theta))
}

func (p Projectile) Validate() error {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return dynamo.Bounds("mass", p.Mass, "positive and finite")
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return dynamo.Bounds("radius", p.Radius, "positive and finite")
	}
	if !p.Position.IsFinite() {
		return dynamo.ErrInvalidState
	}
	if !p.Velocity.IsFinite() {
		return dynamo.ErrInvalidState
	}
	return nil
}

// Area is the cross-sectional area of the sphere.
func (p Projectile) Area() float64 {
	return math.Pi * p.Radius * p.Radius
}

// DragConstant is k = ½·ρ·Cd·A, so that the drag force is -k|v|v.
func (p Projectile) DragConstant(airDensity, dragCoefficient float64) float64 {
	return 0.5 * airDensity * dragCoefficient * p.Area()
}
