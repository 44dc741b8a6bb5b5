package physics

import (
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/vec"
)

// Trajectory is one materialised flight. Positions, Velocities and Times are
// parallel; sample 0 is the launch state at t=0.
type Trajectory struct {
	Positions  []vec.Vec2
	Velocities []vec.Vec2
	Times      []float64
	// Capped is set when the step budget ran out before landing.
	Capped bool
	// EnergyDrift is the largest relative change of mechanical energy from
	// launch. Without drag it measures integration error.
	EnergyDrift float64
	// Metrics holds the values of observers registered with AddMetric.
	Metrics map[string]float64
}

func newTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		Positions:  make([]vec.Vec2, 0, capacity),
		Velocities: make([]vec.Vec2, 0, capacity),
		Times:      make([]float64, 0, capacity),
		Metrics:    make(map[string]float64),
	}
}

func (tr *Trajectory) append(pos, vel vec.Vec2, t float64) {
	tr.Positions = append(tr.Positions, pos)
	tr.Velocities = append(tr.Velocities, vel)
	tr.Times = append(tr.Times, t)
}

func (tr *Trajectory) Len() int {
	if tr == nil {
		return 0
	}
	return len(tr.Times)
}

// Final returns the last sample. ok is false for an empty trajectory.
func (tr *Trajectory) Final() (pos vec.Vec2, t float64, ok bool) {
	n := tr.Len()
	if n == 0 {
		return vec.Vec2{}, 0, false
	}
	return tr.Positions[n-1], tr.Times[n-1], true
}

// Summary computes the flight metrics of this trajectory.
func (tr *Trajectory) Summary() metrics.Flight {
	if tr == nil {
		return metrics.Flight{}
	}
	return metrics.Summarize(tr.Positions, tr.Times)
}

// Heights returns the y component of every sample.
func (tr *Trajectory) Heights() []float64 {
	out := make([]float64, tr.Len())
	for i, p := range tr.Positions {
		out[i] = p.Y
	}
	return out
}
