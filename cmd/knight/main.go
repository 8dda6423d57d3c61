// knight runs Knight Runner, an endless runner where a knight charges jumps
// over pits and fires across five themed levels.
//
// Usage:
//
//	knight play              - Play the campaign
//	knight play --demo       - Watch the autopilot play
//	knight menu              - Start menu with level select and scoreboard
//	knight levels            - List the configured levels
//	knight scores            - Show best runs
//	knight serve             - Start SSH server for remote play
//	knight web               - Start WebSocket feed for browser clients
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible obstacle streams
//	--db <path>         - Set database path (default: ~/.knight/scores.db)
//	--log-level <lvl>   - debug, info, warn, error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Game config flags shared by play, menu, serve and web
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "knight",
	Short: "Knight Runner - an endless runner in your terminal",
	Long: `Knight Runner is a terminal endless runner. The knight runs on its own;
hold jump to charge and release to leap over pits and fires. Reach each
level's target score to move on, and keep at least one of your lives.

Available commands:
  play     - Play directly
  menu     - Interactive menu with level select and scoreboard
  levels   - Show the level table
  scores   - View best runs
  serve    - Start SSH server for remote play
  web      - Start WebSocket feed for browser clients

Examples:
  knight play
  knight play --level 3 --difficulty hard
  knight menu
  knight serve --ssh :2222
  knight web --addr :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.knight/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// newLogger returns a stderr logger at the level chosen by --log-level.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.GetLevel(),
	})
}

// addConfigFlags registers --config and --difficulty on cmd.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}
