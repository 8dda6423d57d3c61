package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows the level table the game will run with, after applying
--config and --difficulty.

Examples:
  knight levels
  knight levels --config ./my-knight.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	addConfigFlags(levelsCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := applyGameFlags()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	maxNameLen := len("Name")
	for _, lvl := range cfg.Levels {
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Fprintf(out, "  %-3s  %-*s  %-6s  %-6s  %-6s  %s\n", "#", maxNameLen, "Name", "Speed", "Spawn", "Target", "Sky")
	fmt.Fprintf(out, "  %-3s  %-*s  %-6s  %-6s  %-6s  %s\n", "-", maxNameLen, "----", "-----", "-----", "------", "---")
	for i, lvl := range cfg.Levels {
		fmt.Fprintf(out, "  %-3d  %-*s  %-6.1f  %-6.3f  %-6d  %s\n",
			i+1, maxNameLen, lvl.Name, lvl.Speed, lvl.SpawnRate, lvl.TargetScore, lvl.Theme.Sky)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Lives: %d   Spawn multiplier: %.2f\n", cfg.Gameplay.Lives, spawnMultiplier(cfg.Difficulty.SpawnMultiplier))
	fmt.Fprintln(out, "Run 'knight play --level N' to start on a level.")
	return nil
}

func spawnMultiplier(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}
