// reshaper runs sphere reshaping sessions.
//
// Usage:
//
//	reshaper simulate        - Run a headless session driven by the autopilot
//	reshaper play            - Reshape the bodies with the mouse in a window
//	reshaper config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Config file (default search: ~/.reshaper/config.yaml, ./configs/reshaper.yaml)
//	--debug          - Enable debug logging
//	--fps <rate>     - Override the tick rate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gekko3d/reshaper/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDebug  bool
	flagFPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reshaper",
	Short: "Reshape rough spheres into round, correctly sized ones",
	Long: `reshaper runs the two-phase reshaping session: push the dents out of each
body until it is round enough, then scale it to its target size.

Examples:
  reshaper simulate --report out.json
  reshaper simulate --png ring.png --ticks 2000
  reshaper play --fps 120
  reshaper config > my.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig applies the global flags over the loaded configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDebug {
		cfg.Log.Debug = true
	}
	if flagFPS > 0 {
		cfg.Session.FPS = flagFPS
	}
	return cfg, nil
}
