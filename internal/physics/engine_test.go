package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/physics"
	"github.com/san-kum/projsim/internal/projectile"
	"github.com/san-kum/projsim/internal/vec"
)

func launch(mass, radius, speed, angle float64) projectile.Projectile {
	p, err := projectile.Launch(mass, radius, speed, angle, 0)
	Expect(err).NotTo(HaveOccurred())
	return p
}

func energyDrift(method physics.Method, dt float64) float64 {
	p := launch(1, 0.1, 30, 45)
	eng := physics.NewEngine(physics.WithMethod(method))
	traj, err := eng.Simulate(p, dt)
	Expect(err).NotTo(HaveOccurred())
	return traj.EnergyDrift
}

var _ = Describe("Engine", func() {
	Describe("defaults", func() {
		It("uses RK4, earth gravity and drag off", func() {
			eng := physics.NewEngine()
			Expect(eng.Method).To(Equal(physics.RK4))
			Expect(eng.Gravity).To(Equal(9.81))
			Expect(eng.DragEnabled).To(BeFalse())
			Expect(eng.MaxSteps).To(Equal(physics.DefaultMaxSteps))
		})
	})

	Describe("CalculateMetrics", func() {
		It("returns zeros before any simulation", func() {
			eng := physics.NewEngine()
			Expect(eng.CalculateMetrics()).To(Equal(metrics.Flight{}))
			Expect(eng.Last()).To(BeNil())
		})

		It("keeps the previous result when a later run is rejected", func() {
			eng := physics.NewEngine()
			_, err := eng.Simulate(launch(1, 0.1, 20, 60), 0.01)
			Expect(err).NotTo(HaveOccurred())
			before := eng.CalculateMetrics()

			_, err = eng.Simulate(launch(1, 0.1, 20, 60), 0)
			Expect(err).To(HaveOccurred())
			Expect(eng.CalculateMetrics()).To(Equal(before))
		})

		It("is recomputed after every run", func() {
			eng := physics.NewEngine()
			_, err := eng.Simulate(launch(1, 0.1, 10, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			short := eng.CalculateMetrics()

			_, err = eng.Simulate(launch(1, 0.1, 40, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.CalculateMetrics().Range).To(BeNumerically(">", short.Range))
		})
	})

	Describe("input validation", func() {
		DescribeTable("rejects bad inputs before producing samples",
			func(mass, radius, dt float64, opts ...physics.Option) {
				eng := physics.NewEngine(opts...)
				p := projectile.Projectile{Mass: mass, Radius: radius, Velocity: vec.Vec2{X: 10, Y: 10}}
				traj, err := eng.Simulate(p, dt)
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
				Expect(traj).To(BeNil())
				Expect(eng.CalculateMetrics()).To(Equal(metrics.Flight{}))
			},
			Entry("zero dt", 1.0, 0.1, 0.0),
			Entry("negative dt", 1.0, 0.1, -0.01),
			Entry("NaN dt", 1.0, 0.1, math.NaN()),
			Entry("zero mass", 0.0, 0.1, 0.01),
			Entry("negative mass", -2.0, 0.1, 0.01),
			Entry("zero radius", 1.0, 0.0, 0.01),
			Entry("negative radius", 1.0, -0.1, 0.01),
			Entry("negative gravity", 1.0, 0.1, 0.01, physics.WithGravity(-9.81)),
			Entry("zero step budget", 1.0, 0.1, 0.01, physics.WithMaxSteps(0)),
			Entry("negative air density", 1.0, 0.1, 0.01, physics.WithDrag(true), physics.WithAtmosphere(-1, 0.47)),
		)

		It("rejects an unknown method", func() {
			eng := physics.NewEngine(physics.WithMethod(physics.Method(42)))
			_, err := eng.Simulate(launch(1, 0.1, 10, 45), 0.01)
			Expect(err).To(MatchError(dynamo.ErrUnknownMethod))
		})
	})

	Describe("Simulate", func() {
		It("starts with the launch state at t=0 and leaves the projectile untouched", func() {
			p := launch(1, 0.1, 30, 45)
			orig := p

			traj, err := physics.NewEngine(physics.WithDrag(true)).Simulate(p, 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(orig))
			Expect(traj.Positions[0]).To(Equal(p.Position))
			Expect(traj.Velocities[0]).To(Equal(p.Velocity))
			Expect(traj.Times[0]).To(BeZero())
			Expect(traj.Positions).To(HaveLen(len(traj.Times)))
			Expect(traj.Velocities).To(HaveLen(len(traj.Times)))
		})

		It("stops at the first sample at or below ground", func() {
			traj, err := physics.NewEngine().Simulate(launch(1, 0.1, 30, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Capped).To(BeFalse())

			n := traj.Len()
			Expect(traj.Positions[n-1].Y).To(BeNumerically("<=", 0))
			for _, pos := range traj.Positions[1 : n-1] {
				Expect(pos.Y).To(BeNumerically(">", 0))
			}
		})

		It("spaces samples exactly dt apart", func() {
			dt := 0.01
			traj, err := physics.NewEngine().Simulate(launch(1, 0.1, 15, 70), dt)
			Expect(err).NotTo(HaveOccurred())
			for i, t := range traj.Times {
				Expect(t).To(Equal(float64(i) * dt))
			}
		})

		It("is reproducible", func() {
			p := launch(0.145, 0.0366, 40, 35)
			a, err := physics.NewEngine(physics.WithDrag(true)).Simulate(p, 0.005)
			Expect(err).NotTo(HaveOccurred())
			b, err := physics.NewEngine(physics.WithDrag(true)).Simulate(p, 0.005)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Positions).To(Equal(b.Positions))
			Expect(a.Times).To(Equal(b.Times))
		})

		It("caps runs that never come down", func() {
			p, err := projectile.New(1, 0.1, vec.Vec2{Y: 1}, vec.Vec2{X: 5})
			Expect(err).NotTo(HaveOccurred())

			eng := physics.NewEngine(physics.WithGravity(0), physics.WithMaxSteps(500))
			traj, err := eng.Simulate(p, 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Capped).To(BeTrue())
			Expect(traj.Len()).To(Equal(501))

			m := eng.CalculateMetrics()
			Expect(m.TimeOfFlight).To(BeNumerically("~", 5.0, 1e-9))
			Expect(m.MaxHeight).To(Equal(1.0))
			Expect(m.TimeToMaxHeight).To(BeZero())
		})

		It("reports a diverging state instead of returning garbage", func() {
			p, err := projectile.New(1, 0.1, vec.Vec2{Y: 1}, vec.Vec2{X: 1e200, Y: 1e200})
			Expect(err).NotTo(HaveOccurred())

			traj, err := physics.NewEngine(physics.WithDrag(true)).Simulate(p, 0.01)
			Expect(err).To(MatchError(dynamo.ErrUnstable))
			Expect(traj).To(BeNil())

			var simErr *dynamo.SimulationError
			Expect(err).To(BeAssignableToTypeOf(simErr))
		})

		It("feeds registered metrics every sample", func() {
			eng := physics.NewEngine()
			eng.AddMetric(metrics.NewTimeOfFlight())
			traj, err := eng.Simulate(launch(1, 0.1, 20, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Metrics).To(HaveKeyWithValue("time_of_flight", traj.Times[traj.Len()-1]))
			Expect(traj.Metrics).To(HaveLen(1))
		})

		It("tracks energy drift on every run", func() {
			vacuum := physics.NewEngine()
			traj, err := vacuum.Simulate(launch(1, 0.1, 30, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.EnergyDrift).To(BeNumerically("<", 1e-9))

			air := physics.NewEngine(physics.WithDrag(true))
			dragged, err := air.Simulate(launch(1, 0.1, 30, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(dragged.EnergyDrift).To(BeNumerically(">", 0.1))
		})
	})

	Describe("drag-free flight", func() {
		DescribeTable("matches the closed-form solution",
			func(vy0, g, dt float64) {
				p, err := projectile.New(1, 0.1, vec.Vec2{}, vec.Vec2{X: 12, Y: vy0})
				Expect(err).NotTo(HaveOccurred())

				eng := physics.NewEngine(physics.WithGravity(g))
				_, err = eng.Simulate(p, dt)
				Expect(err).NotTo(HaveOccurred())
				m := eng.CalculateMetrics()

				tof := 2 * vy0 / g
				height := vy0 * vy0 / (2 * g)
				Expect(m.TimeOfFlight).To(BeNumerically(">=", tof-1e-9))
				Expect(m.TimeOfFlight).To(BeNumerically("<=", tof+dt+1e-9))
				Expect(m.MaxHeight).To(BeNumerically("~", height, 0.5*g*dt*dt+1e-9))
				Expect(m.TimeToMaxHeight).To(BeNumerically("~", vy0/g, dt))
				Expect(m.Range).To(BeNumerically("~", 12*tof, 12*dt+1e-9))
			},
			Entry("earth, fine dt", 20.0, 9.81, 0.001),
			Entry("earth, coarse dt", 20.0, 9.81, 0.02),
			Entry("mars", 15.0, 3.71, 0.01),
			Entry("jupiter", 35.0, 24.79, 0.005),
		)

		It("reproduces the 30 m/s at 45 degrees example", func() {
			eng := physics.NewEngine()
			_, err := eng.Simulate(launch(1, 0.1, 30, 45), 0.01)
			Expect(err).NotTo(HaveOccurred())
			m := eng.CalculateMetrics()

			Expect(m.Range).To(BeNumerically("~", 91.7, 0.25))
			Expect(m.MaxHeight).To(BeNumerically("~", 22.9, 0.05))
			Expect(m.TimeOfFlight).To(BeNumerically("~", 4.33, 1e-9))
		})

		DescribeTable("RK4 conserves energy more tightly than Euler",
			func(dt float64) {
				rk4 := energyDrift(physics.RK4, dt)
				euler := energyDrift(physics.Euler, dt)
				Expect(rk4).To(BeNumerically("<", euler))
				Expect(rk4).To(BeNumerically("<", 1e-9))
			},
			Entry("coarse", 0.05),
			Entry("medium", 0.01),
			Entry("fine", 0.002),
		)
	})

	Describe("air drag", func() {
		DescribeTable("strictly reduces range and height",
			func(mass, radius, speed, angle float64) {
				p := launch(mass, radius, speed, angle)

				vacuum := physics.NewEngine()
				_, err := vacuum.Simulate(p, 0.01)
				Expect(err).NotTo(HaveOccurred())

				air := physics.NewEngine(physics.WithDrag(true))
				_, err = air.Simulate(p, 0.01)
				Expect(err).NotTo(HaveOccurred())

				Expect(air.CalculateMetrics().Range).To(BeNumerically("<", vacuum.CalculateMetrics().Range))
				Expect(air.CalculateMetrics().MaxHeight).To(BeNumerically("<", vacuum.CalculateMetrics().MaxHeight))
				Expect(air.CalculateMetrics().TimeOfFlight).To(BeNumerically("<=", vacuum.CalculateMetrics().TimeOfFlight))
			},
			Entry("reference ball", 1.0, 0.1, 30.0, 45.0),
			Entry("baseball", 0.145, 0.0366, 40.0, 35.0),
			Entry("shot put", 7.26, 0.06, 14.0, 40.0),
		)

		It("lands before the analytic drag-free flight time", func() {
			p := launch(1, 0.1, 30, 45)
			eng := physics.NewEngine(physics.WithDrag(true))
			_, err := eng.Simulate(p, 0.01)
			Expect(err).NotTo(HaveOccurred())

			analytic := 2 * p.Velocity.Y / 9.81
			Expect(eng.CalculateMetrics().TimeOfFlight).To(BeNumerically("<=", analytic))
			Expect(eng.CalculateMetrics().Range).To(BeNumerically("~", 57.8, 0.5))
		})

		It("opposes the velocity", func() {
			p := launch(1, 0.1, 30, 0)
			a := physics.NewEngine(physics.WithDrag(true)).Acceleration(p, vec.Vec2{X: 30})
			k := p.DragConstant(physics.AirDensity, physics.SphereDragCoefficient)
			Expect(a.X).To(BeNumerically("~", -k*900, 1e-12))
			Expect(a.Y).To(Equal(-9.81))
		})

		It("is ignored when disabled", func() {
			p := launch(1, 0.1, 30, 0)
			a := physics.NewEngine().Acceleration(p, vec.Vec2{X: 30})
			Expect(a).To(Equal(vec.Vec2{Y: -9.81}))
		})
	})

	Describe("ParseMethod", func() {
		It("accepts known names case-insensitively", func() {
			Expect(physics.ParseMethod("RK4")).To(Equal(physics.RK4))
			Expect(physics.ParseMethod("euler")).To(Equal(physics.Euler))
			Expect(physics.ParseMethod("")).To(Equal(physics.RK4))
		})

		It("rejects unknown names", func() {
			_, err := physics.ParseMethod("verlet")
			Expect(err).To(MatchError(dynamo.ErrUnknownMethod))
		})
	})
})
