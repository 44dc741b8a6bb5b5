package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/observability"
	"github.com/san-kum/projsim/internal/physics"
)

// cli holds the flag values and the logger shared by every command.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger

	configFile string
	preset     string
	speed      float64
	angle      float64
	mass       float64
	radius     float64
	height     float64
	gravity    float64
	drag       bool
	method     string
	dt         float64
	maxSteps   int

	root *cobra.Command
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newCLI().execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and flushes the logger whether or not the
// command failed.
func (c *cli) execute(ctx context.Context) error {
	err := c.root.ExecuteContext(ctx)
	if err != nil {
		c.logger.Error("command failed", zap.Error(err))
	}
	_ = c.logger.Sync()
	return err
}

func newRootCmd() *cobra.Command {
	return newCLI().root
}

func newCLI() *cli {
	c := &cli{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:          "projsim",
		Short:        "2D projectile motion with optional air drag",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initLogger(cmd)
		},
	}

	def := config.DefaultLoggerConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", def.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", def.Format, "log format (console or json)")
	pf.String("log-file", "", "also write JSON logs to this rotated file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one launch and print its metrics",
		Args:  cobra.NoArgs,
		RunE:  c.runSimulation,
	}
	runCmd.Flags().String("out", "", "write the trajectory to a .csv, .json or .svg file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot height and distance against time",
		Args:  cobra.NoArgs,
		RunE:  c.plotTrajectory,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare drag vs no drag and rk4 vs euler for one launch",
		Args:  cobra.NoArgs,
		RunE:  c.compareRuns,
	}
	compareCmd.Flags().String("out", "", "write an SVG overlay of the drag comparison")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "simulate and write the trajectory to a .csv, .json or .svg file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.exportTrajectory,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list launch presets",
		Args:  cobra.NoArgs,
		RunE:  c.listPresets,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [config]",
		Short: "re-simulate every time a config file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  c.watchConfig,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "aim interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  c.runLive,
	}

	for _, cmd := range []*cobra.Command{runCmd, plotCmd, compareCmd, exportCmd, liveCmd} {
		c.addLaunchFlags(cmd)
	}

	rootCmd.AddCommand(runCmd, plotCmd, compareCmd, exportCmd, presetsCmd, watchCmd, liveCmd)
	c.root = rootCmd
	return c
}

func (c *cli) addLaunchFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&c.configFile, "config", "", "config file path (yaml)")
	f.StringVar(&c.preset, "preset", "", "start from a named preset")
	f.Float64Var(&c.speed, "speed", def.Launch.Speed, "launch speed (m/s)")
	f.Float64Var(&c.angle, "angle", def.Launch.Angle, "launch angle above horizontal (degrees)")
	f.Float64Var(&c.mass, "mass", def.Launch.Mass, "mass (kg)")
	f.Float64Var(&c.radius, "radius", def.Launch.Radius, "radius (m)")
	f.Float64Var(&c.height, "height", def.Launch.Height, "launch height (m)")
	f.Float64Var(&c.gravity, "gravity", def.Engine.Gravity, "gravitational acceleration (m/s^2)")
	f.BoolVar(&c.drag, "drag", def.Engine.Drag, "enable quadratic air drag")
	f.StringVar(&c.method, "method", def.Engine.Method, "integrator: "+strings.Join(physics.Methods(), ", "))
	f.Float64Var(&c.dt, "dt", def.Engine.Dt, "timestep (s)")
	f.IntVar(&c.maxSteps, "max-steps", def.Engine.MaxSteps, "step budget before giving up on landing")
}

// initLogger builds the logger from flags, overridable through PROJSIM_*
// environment variables.
func (c *cli) initLogger(cmd *cobra.Command) error {
	c.v.SetEnvPrefix("PROJSIM")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	if err := c.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	lc := config.DefaultLoggerConfig()
	lc.Level = c.v.GetString("log-level")
	lc.Format = c.v.GetString("log-format")
	lc.File = c.v.GetString("log-file")

	logger, err := observability.New(lc)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// resolveConfig layers the launch settings: defaults, then the preset, then
// the config file, then any flag given explicitly.
func (c *cli) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if c.preset != "" {
		p := config.GetPreset(c.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", c.preset, config.ListPresets())
		}
		cfg = p
	}

	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("speed", func() { cfg.Launch.Speed = c.speed })
	set("angle", func() { cfg.Launch.Angle = c.angle })
	set("mass", func() { cfg.Launch.Mass = c.mass })
	set("radius", func() { cfg.Launch.Radius = c.radius })
	set("height", func() { cfg.Launch.Height = c.height })
	set("gravity", func() { cfg.Engine.Gravity = c.gravity })
	set("drag", func() { cfg.Engine.Drag = c.drag })
	set("method", func() { cfg.Engine.Method = c.method })
	set("dt", func() { cfg.Engine.Dt = c.dt })
	set("max-steps", func() { cfg.Engine.MaxSteps = c.maxSteps })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// engineOptions returns the engine options for cfg with the CLI logger attached.
func (c *cli) engineOptions(cfg *config.Config) ([]physics.Option, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	return append(opts, physics.WithLogger(c.logger)), nil
}
