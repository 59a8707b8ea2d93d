package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gekko3d/reshaper"
	"github.com/gekko3d/reshaper/internal/platform"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Reshape the bodies with the mouse",
	Long: `Opens a window and feeds the left mouse button and wheel into the session.

The window only captures input and draws nothing: the bodies and rings are
not shown. Use the default camera framing to aim, and pass --png to write the
ring overlay when the window closes.

Controls:
  Left drag  - Push the surface out while a body is rough; scale it once round
  Wheel      - Scale in uniform mode

Progress is shown in the window title.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	win, err := platform.Open(cfg.Session.Width, cfg.Session.Height, "reshaper")
	if err != nil {
		return err
	}
	defer win.Close()

	opts := cfg.SessionOptions()
	opts.Source = win
	opts.Step = 0
	app := reshaper.NewSessionApp(opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(cfg.Step())
	defer ticker.Stop()

	for !win.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if !app.Tick() {
			break
		}
		win.SetTitle(title(app))
	}
	if flagPNG != "" {
		if err := writePNG(flagPNG, reshaper.Resource[reshaper.Gizmos](app)); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	return reshaper.WriteReport(cmd.OutOrStdout(), reshaper.Report(app))
}

func init() {
	playCmd.Flags().StringVar(&flagPNG, "png", "", "Write the ring overlay to this PNG on exit")
}

func title(app *reshaper.App) string {
	scene := reshaper.Resource[reshaper.Scene](app)
	if scene == nil {
		return "reshaper"
	}
	parts := make([]string, 0, len(scene.Bodies()))
	for _, b := range scene.Bodies() {
		parts = append(parts, fmt.Sprintf("%s %s %.0f%%", b.Name, b.Phase(), b.Meter.Score()*100))
	}
	return "reshaper - " + strings.Join(parts, " | ")
}
