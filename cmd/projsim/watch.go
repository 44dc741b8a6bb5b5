package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/viz"
	"github.com/san-kum/projsim/internal/watch"
)

// watchConfig simulates the config once, then again after every change to
// the file. Each reload replaces the previous result; a config that fails to
// load or simulate is reported and the last good result stays on screen.
func (c *cli) watchConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	if err := c.reload(out, path); err != nil {
		return err
	}

	w, err := watch.New(path)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(out, "\nwatching %s (ctrl+c to stop)\n", path)
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-w.Events:
			if !ok {
				return nil
			}
			c.logger.Info("config changed", zap.String("path", changed))
			if err := c.reload(out, path); err != nil {
				c.logger.Error("reload failed", zap.String("path", path), zap.Error(err))
				fmt.Fprintf(out, "\nreload failed: %v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (c *cli) reload(out io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	run, err := c.simulate(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n== %s ==\n", path)
	printRun(out, cfg, run)
	return nil
}

func (c *cli) runLive(cmd *cobra.Command, args []string) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := viz.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}
	return viz.Run(params, c.logger)
}
