// Package vec provides the 2D vector value type used for positions and
// velocities. World units are meters, y points up.
package vec

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

// FromPolar returns the vector of length r at angle theta (radians) from the +x axis.
func FromPolar(r, theta float64) Vec2 {
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Norm2 is the squared length.
func (v Vec2) Norm2() float64 {
	return v.Dot(v)
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}
