package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/knight-runner/internal/config"
	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/platform/tui"
	"github.com/vovakirdan/knight-runner/internal/registry"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

var (
	flagLevel int
	flagDemo  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Knight Runner",
	Long: `Start a run straight away.

Controls:
  Space      - Start charging a jump, press again to release
  Up/W       - Quick jump (no charge)
  Enter      - Start / next level / retry
  P          - Pause
  R          - Restart after game over
  Esc/B      - Leave (while paused or between levels)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Fewer obstacles, gentle ramp within each level
  normal - The configured spawn rates
  hard   - More obstacles, steep ramp, two lives
  fixed  - No ramp within levels

Examples:
  knight play
  knight play --level 3
  knight play --difficulty hard
  knight play --demo
  knight play --config ./my-knight.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addConfigFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-based)")
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play")
}

// applyGameFlags hands --config and --difficulty to the game package and
// returns the config runs will use.
func applyGameFlags() (config.KnightConfig, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return config.KnightConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	knight.SetConfigPath(flagConfig)
	knight.SetDifficultyPreset(flagDifficulty)

	cfg, err := knight.LoadConfig()
	if err != nil {
		return config.KnightConfig{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure only disables persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		newLogger("knight").Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := applyGameFlags()
	if err != nil {
		return err
	}
	if flagLevel < 1 || flagLevel > len(cfg.Levels) {
		return fmt.Errorf("--level must be between 1 and %d", len(cfg.Levels))
	}
	knight.SetStartLevel(flagLevel - 1)

	id := knight.GameID
	if flagDemo {
		id = knight.DemoGameID
	}
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), newLogger("knight")); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
