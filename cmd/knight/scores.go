package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/registry"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best runs",
	Long: `Display the best runs with the level each one reached.
The game defaults to knight.

Examples:
  knight scores
  knight scores --limit 20
  knight scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := knight.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs for %s.\n", registry.Title(gameID))
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "Best Runs - %s\n\n", registry.Title(gameID))

	if len(scores) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'knight play' to set the first score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-9s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-9s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-5d  %-9s  %s\n",
			i+1, entry.Score, entry.Level+1, resultLabel(entry.Outcome), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d   Best: %d   Deepest level: %d   Cleared: %d   Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestLevel+1, stats.Completions, stats.AvgScore)
	}
	return nil
}

func resultLabel(o storage.Outcome) string {
	switch o {
	case storage.OutcomeCompleted:
		return "cleared"
	case storage.OutcomeQuit:
		return "quit"
	default:
		return strings.ReplaceAll(string(o), "_", " ")
	}
}
