package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/platform/tui"
	"github.com/vovakirdan/knight-runner/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the menu",
	Long: `Start in interactive menu mode.

Pick Knight Runner to choose the campaign or a starting level, pick the
demo to watch the autopilot, or open the scoreboard. After a run ends you
return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  knight menu
  knight menu --fps 30
  knight menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addConfigFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, err := applyGameFlags(); err != nil {
		return err
	}

	logger := newLogger("knight")
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		id := result.GameID
		if id == "" {
			return nil
		}

		knight.SetStartLevel(0)
		if id == knight.GameID {
			selection, err := tui.RunLevelSelector(cfg)
			if err != nil {
				return err
			}
			if selection == nil {
				continue
			}
			knight.SetStartLevel(selection.Level)
		}

		game, err := registry.Create(id)
		if err != nil {
			logger.Error("cannot create game", "game", id, "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, logger); err != nil {
			logger.Error("error running game", "game", id, "error", err)
		}
	}
}
