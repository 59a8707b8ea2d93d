package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gekko3d/reshaper"
)

var (
	flagTicks  int
	flagReport string
	flagPNG    string
	flagIdle   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless session",
	Long: `Runs a session with a fixed time step. By default the autopilot plays it:
it pushes out the deepest visible dent of each rough body, then drags each
body to its Y target and its diameter target.

The session ends when every body is done, after --ticks ticks, or on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Maximum ticks (0 = session.max_ticks)")
	simulateCmd.Flags().StringVar(&flagReport, "report", "", "Write a JSON session report to this path")
	simulateCmd.Flags().StringVar(&flagPNG, "png", "", "Write the last frame's ring overlay to this PNG")
	simulateCmd.Flags().BoolVar(&flagIdle, "idle", false, "No input; only scoring and phase logic run")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.SessionOptions()
	pilot := reshaper.NewAutopilot(cfg.Session.Width, cfg.Session.Height)
	if !flagIdle {
		opts.Source = pilot
	}
	app := reshaper.NewSessionApp(opts)
	pilot.Attach(app)

	ticks := flagTicks
	if ticks <= 0 {
		ticks = cfg.Session.MaxTicks
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	app.Logger().Infof("simulating %q from %s, up to %d ticks", cfg.Session.Name, cfg.Source, ticks)
	if err := app.Run(ctx, ticks); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if !app.Finished() {
		app.Logger().Warnf("stopped after %d ticks before the session completed", app.Ticks())
	}

	rep := reshaper.Report(app)
	if flagReport != "" {
		if err := reshaper.SaveReport(flagReport, rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else if err := reshaper.WriteReport(cmd.OutOrStdout(), rep); err != nil {
		return err
	}

	if flagPNG != "" {
		if err := writePNG(flagPNG, reshaper.Resource[reshaper.Gizmos](app)); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	return nil
}

func writePNG(path string, gizmos *reshaper.Gizmos) error {
	if gizmos == nil {
		return fmt.Errorf("no overlay")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, gizmos.Draw()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
