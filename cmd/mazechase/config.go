package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in game configuration as YAML.

Save it to ~/.arcade/configs/chase.yaml (or ./configs/chase.yaml) and edit
it to change the maze, speeds, timers and scoring. Pass another file with
'mazechase play --config <path>'.

Examples:
  mazechase config > ~/.arcade/configs/chase.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
