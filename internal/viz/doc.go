// Package viz provides the interactive aiming view for the terminal.
//
// The view owns the launch parameters. Every key that changes one of them
// re-runs the engine from t=0 and replaces the cached trajectory and
// metrics wholesale; nothing is carried over between runs.
//
// # Key Bindings
//
//	←/→   - Angle down/up by 1°
//	↑/↓   - Speed up/down by 1 m/s
//	D     - Toggle air drag
//	M     - Switch integrator (rk4/euler)
//	G     - Toggle the drag-free ghost path
//	R     - Reset to the initial parameters
//	Q     - Quit
package viz
