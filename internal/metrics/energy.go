package metrics

import (
	"math"

	"github.com/san-kum/projsim/internal/vec"
)

// EnergyFunc returns the energy of the system at one sample.
type EnergyFunc func(pos, vel vec.Vec2) float64

// EnergyDrift reports the largest relative deviation of the system energy
// from its value at the first sample. For a conservative system the exact
// solution keeps it constant, so the drift measures integrator error.
type EnergyDrift struct {
	energy        EnergyFunc
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(energy EnergyFunc) *EnergyDrift {
	return &EnergyDrift{energy: energy}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(pos, vel vec.Vec2, t float64) {
	energy := e.energy(pos, vel)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
