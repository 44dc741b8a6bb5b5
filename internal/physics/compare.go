package physics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/projectile"
)

// Run is one configuration in a comparison.
type Run struct {
	Name       string
	Projectile projectile.Projectile
	Dt         float64
	Options    []Option
}

type Outcome struct {
	Name        string
	Trajectory  *Trajectory
	Flight      metrics.Flight
	EnergyDrift float64
}

// Compare simulates every run on its own engine in parallel and returns the
// outcomes in input order. The first failure cancels runs not yet started.
func Compare(ctx context.Context, runs ...Run) ([]Outcome, error) {
	outcomes := make([]Outcome, len(runs))
	g, gctx := errgroup.WithContext(ctx)

	for i, run := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			eng := NewEngine(run.Options...)
			traj, err := eng.Simulate(run.Projectile, run.Dt)
			if err != nil {
				return fmt.Errorf("%s: %w", run.Name, err)
			}

			outcomes[i] = Outcome{
				Name:        run.Name,
				Trajectory:  traj,
				Flight:      eng.CalculateMetrics(),
				EnergyDrift: traj.EnergyDrift,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// DragComparison builds the usual pair of runs: the same launch with and
// without air drag.
func DragComparison(p projectile.Projectile, dt float64, opts ...Option) []Run {
	with := append(append([]Option{}, opts...), WithDrag(true))
	without := append(append([]Option{}, opts...), WithDrag(false))
	return []Run{
		{Name: "no drag", Projectile: p, Dt: dt, Options: without},
		{Name: "drag", Projectile: p, Dt: dt, Options: with},
	}
}

// MethodComparison runs the same launch once per integration method.
func MethodComparison(p projectile.Projectile, dt float64, opts ...Option) []Run {
	runs := make([]Run, 0, 2)
	for _, m := range []Method{RK4, Euler} {
		o := append(append([]Option{}, opts...), WithMethod(m))
		runs = append(runs, Run{Name: m.String(), Projectile: p, Dt: dt, Options: o})
	}
	return runs
}
