package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/physics"
)

// simulate runs one launch described by cfg on a fresh engine.
func (c *cli) simulate(cfg *config.Config) (export.Run, error) {
	p, err := cfg.Projectile()
	if err != nil {
		return export.Run{}, err
	}
	opts, err := c.engineOptions(cfg)
	if err != nil {
		return export.Run{}, err
	}

	eng := physics.NewEngine(opts...)
	traj, err := eng.Simulate(p, cfg.Engine.Dt)
	if err != nil {
		return export.Run{}, err
	}

	run := export.Run{
		Name:       eng.Method.String(),
		Method:     eng.Method.String(),
		Drag:       eng.DragEnabled,
		Gravity:    eng.Gravity,
		Dt:         cfg.Engine.Dt,
		Trajectory: traj,
		Flight:     eng.CalculateMetrics(),
	}
	return run, nil
}

func (c *cli) runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}

	run, err := c.simulate(cfg)
	if err != nil {
		return err
	}
	printRun(cmd.OutOrStdout(), cfg, run)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := export.WriteFile(out, run); err != nil {
			return err
		}
		c.logger.Info("trajectory written", zap.String("path", out))
		fmt.Fprintf(cmd.OutOrStdout(), "\nwritten to %s\n", out)
	}
	return nil
}

func printRun(w io.Writer, cfg *config.Config, run export.Run) {
	l := cfg.Launch
	fmt.Fprintf(w, "launch: %.2f m/s at %.1f° from %.2f m (mass %.3g kg, radius %.3g m)\n",
		l.Speed, l.Angle, l.Height, l.Mass, l.Radius)
	fmt.Fprintf(w, "engine: %s, dt %.4gs, gravity %.3g m/s², drag %v\n",
		run.Method, run.Dt, run.Gravity, run.Drag)
	fmt.Fprintf(w, "samples: %d\n", run.Trajectory.Len())
	if pos, t, ok := run.Trajectory.Final(); ok {
		fmt.Fprintf(w, "final sample: %s at t=%.4fs\n", pos, t)
	}
	if run.Trajectory.Capped {
		fmt.Fprintln(w, "warning: step budget reached before landing")
	}

	fmt.Fprintln(w, "\nmetrics:")
	fmt.Fprintf(w, "  range:          %.4f m\n", run.Flight.Range)
	fmt.Fprintf(w, "  max height:     %.4f m\n", run.Flight.MaxHeight)
	fmt.Fprintf(w, "  time of flight: %.4f s\n", run.Flight.TimeOfFlight)
	fmt.Fprintf(w, "  time to apex:   %.4f s\n", run.Flight.TimeToMaxHeight)
	fmt.Fprintf(w, "  energy drift:   %.3e\n", run.Trajectory.EnergyDrift)
}

func (c *cli) plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}
	run, err := c.simulate(cfg)
	if err != nil {
		return err
	}

	traj := run.Trajectory
	if traj.Len() < 2 {
		return fmt.Errorf("trajectory too short to plot")
	}
	distance := make([]float64, traj.Len())
	for i, p := range traj.Positions {
		distance[i] = p.X
	}

	w := cmd.OutOrStdout()
	series := []struct {
		data    []float64
		caption string
	}{
		{traj.Heights(), "height (m) vs time"},
		{distance, "distance (m) vs time"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "range %.2f m, max height %.2f m, time of flight %.2f s\n",
		run.Flight.Range, run.Flight.MaxHeight, run.Flight.TimeOfFlight)
	return nil
}

func (c *cli) compareRuns(cmd *cobra.Command, args []string) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Projectile()
	if err != nil {
		return err
	}
	opts, err := c.engineOptions(cfg)
	if err != nil {
		return err
	}

	dt := cfg.Engine.Dt
	runs := append(physics.DragComparison(p, dt, opts...), physics.MethodComparison(p, dt, opts...)...)
	outcomes, err := physics.Compare(cmd.Context(), runs...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tRANGE\tMAX HEIGHT\tTIME OF FLIGHT\tENERGY DRIFT")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%.3f m\t%.3f m\t%.3f s\t%.3e\n",
			o.Name, o.Flight.Range, o.Flight.MaxHeight, o.Flight.TimeOfFlight, o.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(out), ".svg") {
		return fmt.Errorf("compare writes SVG only, got %s", out)
	}
	exported := make([]export.Run, 0, 2)
	for _, o := range outcomes[:2] {
		exported = append(exported, export.Run{
			Name:       o.Name,
			Method:     cfg.Engine.Method,
			Drag:       o.Name == "drag",
			Gravity:    cfg.Engine.Gravity,
			Dt:         dt,
			Trajectory: o.Trajectory,
			Flight:     o.Flight,
		})
	}
	if err := export.WriteFile(out, exported...); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nwritten to %s\n", out)
	return nil
}

func (c *cli) exportTrajectory(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := export.FormatFromPath(path); err != nil {
		return err
	}
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}
	run, err := c.simulate(cfg)
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, run); err != nil {
		return err
	}
	c.logger.Info("trajectory written", zap.String("path", path), zap.Int("samples", run.Trajectory.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d samples to %s\n", run.Trajectory.Len(), path)
	return nil
}

func (c *cli) listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEED\tANGLE\tMASS\tGRAVITY\tDRAG\tMETHOD\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f m/s\t%.0f°\t%.4g kg\t%.3g\t%v\t%s\t%.4g\n",
			name, p.Launch.Speed, p.Launch.Angle, p.Launch.Mass,
			p.Engine.Gravity, p.Engine.Drag, p.Engine.Method, p.Engine.Dt)
	}
	return w.Flush()
}
