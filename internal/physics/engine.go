package physics

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/projectile"
	"github.com/san-kum/projsim/internal/vec"
)

const (
	DefaultGravity = 9.81
	// AirDensity is sea-level air density in kg/m³.
	AirDensity = 1.225
	// SphereDragCoefficient is a representative Cd for a smooth sphere.
	SphereDragCoefficient = 0.47
	DefaultMaxSteps       = 100_000
)

// Engine integrates a projectile's flight. Configure it with options or by
// setting the exported fields before calling Simulate.
type Engine struct {
	Gravity         float64 // m/s², applied downward
	DragEnabled     bool
	Method          Method
	MaxSteps        int
	AirDensity      float64 // kg/m³
	DragCoefficient float64

	logger  *zap.Logger
	metrics []metrics.Metric
	last    *Trajectory
}

type Option func(*Engine)

func WithGravity(g float64) Option {
	return func(e *Engine) { e.Gravity = g }
}

func WithDrag(enabled bool) Option {
	return func(e *Engine) { e.DragEnabled = enabled }
}

func WithMethod(m Method) Option {
	return func(e *Engine) { e.Method = m }
}

func WithMaxSteps(n int) Option {
	return func(e *Engine) { e.MaxSteps = n }
}

// WithAtmosphere overrides the air density and drag coefficient used when
// drag is enabled.
func WithAtmosphere(airDensity, dragCoefficient float64) Option {
	return func(e *Engine) {
		e.AirDensity = airDensity
		e.DragCoefficient = dragCoefficient
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Gravity:         DefaultGravity,
		Method:          RK4,
		MaxSteps:        DefaultMaxSteps,
		AirDensity:      AirDensity,
		DragCoefficient: SphereDragCoefficient,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddMetric registers an observer that sees every sample of every run.
// Values are reported in Trajectory.Metrics.
func (e *Engine) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }

// Simulate integrates from t=0 until the projectile first reaches y <= 0 or
// the step budget runs out. Invalid inputs are rejected before any sample is
// produced, and p is never modified.
func (e *Engine) Simulate(p projectile.Projectile, dt float64) (*Trajectory, error) {
	if err := e.validate(p, dt); err != nil {
		return nil, err
	}
	integ, err := e.Method.newIntegrator()
	if err != nil {
		return nil, err
	}

	sys := newBallistic(p, e.Gravity, e.dragConstant(p))
	traj := newTrajectory(estimateSamples(p, e.Gravity, dt, e.MaxSteps))

	drift := metrics.NewEnergyDrift(sampleEnergy(sys))
	observers := append([]metrics.Metric{drift}, e.metrics...)
	for _, m := range observers {
		m.Reset()
	}

	x := stateOf(p)
	record(traj, observers, x, 0)

	landed := false
	for step := 1; step <= e.MaxSteps; step++ {
		next := integ.Step(sys, x, float64(step-1)*dt, dt)
		if !next.IsValid() {
			err := &dynamo.SimulationError{
				Step:    step,
				Time:    float64(step) * dt,
				State:   x.Clone(),
				Wrapped: dynamo.ErrUnstable,
			}
			e.logger.Warn("simulation diverged", zap.Error(err), zap.Stringer("method", e.Method))
			return nil, err
		}

		x = next
		record(traj, observers, x, float64(step)*dt)

		if x[1] <= 0 {
			landed = true
			break
		}
	}

	if !landed {
		traj.Capped = true
		e.logger.Warn("step budget exhausted before landing",
			zap.Int("max_steps", e.MaxSteps),
			zap.Float64("dt", dt),
		)
	}

	for _, m := range e.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}
	traj.EnergyDrift = drift.Value()

	e.last = traj
	e.logger.Debug("simulation complete",
		zap.Stringer("method", e.Method),
		zap.Bool("drag", e.DragEnabled),
		zap.Float64("dt", dt),
		zap.Int("samples", traj.Len()),
		zap.Bool("capped", traj.Capped),
		zap.Float64("energy_drift", traj.EnergyDrift),
	)
	return traj, nil
}

// CalculateMetrics summarises the most recent successful run. Before any run
// it returns the zero Flight.
func (e *Engine) CalculateMetrics() metrics.Flight {
	return e.last.Summary()
}

// Last returns the most recent successful trajectory, or nil.
func (e *Engine) Last() *Trajectory { return e.last }

// Acceleration returns the acceleration of p at velocity v under the
// engine's force model.
func (e *Engine) Acceleration(p projectile.Projectile, v vec.Vec2) vec.Vec2 {
	return newBallistic(p, e.Gravity, e.dragConstant(p)).acceleration(v)
}

func (e *Engine) dragConstant(p projectile.Projectile) float64 {
	if !e.DragEnabled {
		return 0
	}
	return p.DragConstant(e.AirDensity, e.DragCoefficient)
}

func record(traj *Trajectory, observers []metrics.Metric, x dynamo.State, t float64) {
	pos := vec.Vec2{X: x[0], Y: x[1]}
	vel := vec.Vec2{X: x[2], Y: x[3]}
	traj.append(pos, vel, t)
	for _, m := range observers {
		m.Observe(pos, vel, t)
	}
}

func (e *Engine) validate(p projectile.Projectile, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return dynamo.Bounds("dt", dt, "positive and finite")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !(e.Gravity >= 0) || math.IsInf(e.Gravity, 0) {
		return dynamo.Bounds("gravity", e.Gravity, "non-negative and finite")
	}
	if e.MaxSteps <= 0 {
		return dynamo.Bounds("max steps", float64(e.MaxSteps), "positive")
	}
	if e.DragEnabled {
		if !(e.AirDensity >= 0) || math.IsInf(e.AirDensity, 0) {
			return dynamo.Bounds("air density", e.AirDensity, "non-negative and finite")
		}
		if !(e.DragCoefficient >= 0) || math.IsInf(e.DragCoefficient, 0) {
			return dynamo.Bounds("drag coefficient", e.DragCoefficient, "non-negative and finite")
		}
	}
	return nil
}
