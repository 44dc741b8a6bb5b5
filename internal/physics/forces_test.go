package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/projectile"
	"github.com/san-kum/projsim/internal/vec"
)

var _ dynamo.Hamiltonian = (*ballistic)(nil)

func TestBallistic_EnergyConservedWithoutDrag(t *testing.T) {
	p, err := projectile.Launch(2, 0.1, 25, 60, 3)
	require.NoError(t, err)

	sys := newBallistic(p, DefaultGravity, 0)
	x := stateOf(p)
	e0 := sys.Energy(x)
	assert.InDelta(t, 0.5*2*25*25+2*DefaultGravity*3, e0, 1e-9)

	rk4 := integrators.NewRK4()
	for i := 0; i < 100; i++ {
		x = rk4.Step(sys, x, float64(i)*0.01, 0.01)
	}
	assert.InDelta(t, e0, sys.Energy(x), 1e-9)
}

func TestBallistic_DragDissipates(t *testing.T) {
	p, err := projectile.Launch(1, 0.1, 30, 45, 0)
	require.NoError(t, err)

	sys := newBallistic(p, DefaultGravity, p.DragConstant(AirDensity, SphereDragCoefficient))
	x := stateOf(p)
	e0 := sys.Energy(x)

	rk4 := integrators.NewRK4()
	for i := 0; i < 100; i++ {
		x = rk4.Step(sys, x, float64(i)*0.01, 0.01)
	}
	assert.Less(t, sys.Energy(x), e0)
}

func TestSampleEnergy_MatchesSystemEnergy(t *testing.T) {
	p, err := projectile.Launch(2, 0.1, 10, 30, 5)
	require.NoError(t, err)
	sys := newBallistic(p, DefaultGravity, 0)

	energy := sampleEnergy(sys)
	assert.InDelta(t, sys.Energy(stateOf(p)), energy(p.Position, p.Velocity), 1e-12)
	assert.InDelta(t, 2*DefaultGravity*1, energy(vec.Vec2{Y: 1}, vec.Vec2{}), 1e-12)
}
