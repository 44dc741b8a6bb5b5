// Package metrics derives scalar summaries from a trajectory.
//
// Metrics observe samples one at a time in the order the engine produces them.
// Call Reset before reusing a metric for another run.
package metrics

import "github.com/san-kum/projsim/internal/vec"

type Metric interface {
	Name() string
	Observe(pos, vel vec.Vec2, t float64)
	Value() float64
	Reset()
}

// Flight is the summary of one trajectory. The zero value describes "no
// trajectory yet".
type Flight struct {
	Range           float64 `json:"range" yaml:"range"`
	MaxHeight       float64 `json:"max_height" yaml:"max_height"`
	TimeOfFlight    float64 `json:"time_of_flight" yaml:"time_of_flight"`
	TimeToMaxHeight float64 `json:"time_to_max_height" yaml:"time_to_max_height"`
}

// Summarize computes the flight summary from parallel position/time slices.
// Empty input yields the zero Flight.
func Summarize(positions []vec.Vec2, times []float64) Flight {
	n := len(positions)
	if len(times) < n {
		n = len(times)
	}
	if n == 0 {
		return Flight{}
	}

	rng := NewRange()
	apex := NewMaxHeight()
	tof := NewTimeOfFlight()
	for i := 0; i < n; i++ {
		rng.Observe(positions[i], vec.Vec2{}, times[i])
		apex.Observe(positions[i], vec.Vec2{}, times[i])
		tof.Observe(positions[i], vec.Vec2{}, times[i])
	}

	return Flight{
		Range:           rng.Value(),
		MaxHeight:       apex.Value(),
		TimeOfFlight:    tof.Value(),
		TimeToMaxHeight: apex.TimeAt(),
	}
}
