// Package physics integrates projectile flight under gravity and optional
// quadratic air drag.
//
// An [Engine] holds the force model and integration method. Each call to
// [Engine.Simulate] starts from t=0, works on a private copy of the
// projectile state and materialises the whole flight as a [Trajectory]:
//
//	p, _ := projectile.Launch(1, 0.1, 30, 45, 0)
//	eng := physics.NewEngine(physics.WithDrag(true))
//	traj, err := eng.Simulate(p, 0.01)
//	m := eng.CalculateMetrics()
//
// The state vector is (px, py, vx, vy) and the acceleration is
//
//	a = (0, -g) - (k/m)|v|v,  k = ½·ρ·Cd·πr²
//
// with the drag term present only when drag is enabled.
//
// # Termination
//
// Integration stops after the first sample at or below y=0 (the launch
// sample is never checked). A step budget, [DefaultMaxSteps] unless
// overridden, bounds runs that never come down; such trajectories are
// returned with Capped set.
//
// # Thread Safety
//
// An Engine remembers its last trajectory and is NOT safe for concurrent
// use. Independent engines share nothing; see [Compare].
package physics
