package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-runner/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket feed",
	Long: `Start an HTTP server that runs one simulation per WebSocket connection.

Connect to /ws and send {"type": ...} messages:
  jump_start, jump_release, jump   - Charge, release, or tap a jump
  start, next                      - Leave the title screen, go to the next level
  restart_level, restart_game      - Retry after game over, start over
  pause                            - Toggle pause

Every tick the server answers with a "state" message.

Query parameters:
  codec=msgpack   Binary msgpack frames instead of JSON text
  auto=1          Autopilot demo with levels looping
  seed=N          Obstacle stream seed
  level=N         1-based start level

Examples:
  knight web
  knight web --addr :9000 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	addConfigFlags(webCmd)
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := applyGameFlags()
	if err != nil {
		return err
	}

	server, err := web.NewServer(flagWebAddr, web.HandlerConfig{
		Config:   cfg,
		TickRate: flagFPS,
		Logger:   newLogger("knight-web"),
	})
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving Knight Runner on ws://localhost%s/ws\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
