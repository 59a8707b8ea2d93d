package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gekko3d/reshaper/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the same way the other commands do, applies
RESHAPER_* environment overrides and global flags, and prints it as YAML.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", cfg.Source)
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
