package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/knight-runner/internal/config"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	// Flag values outlive a single Execute.
	flagConfig = ""
	flagDifficulty = ""
	flagScoresClear = false
	flagLogLevel = "warn"

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels", "--difficulty", "hard")
	if err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	for _, want := range []string{"Name", "Target", "Lives: 2", "Spawn multiplier: 1.30"} {
		if !strings.Contains(out, want) {
			t.Errorf("levels output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelsCommandCustomConfig(t *testing.T) {
	cfg := config.DefaultKnightConfig()
	cfg.Levels = cfg.Levels[:2]
	cfg.Levels[1].Name = "Twilight"
	data, err := config.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "knight.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "levels", "--config", path)
	if err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	if !strings.Contains(out, "Twilight") || strings.Contains(out, "Night ") {
		t.Errorf("levels should list the custom table:\n%s", out)
	}
}

func TestUnknownDifficulty(t *testing.T) {
	if _, err := execute(t, "levels", "--difficulty", "brutal"); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "levels", "--log-level", "loud"); err == nil {
		t.Error("invalid log level should fail")
	}
}

func TestScoresCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	out, err := execute(t, "scores", "--db", dbPath)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("empty scores output:\n%s", out)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveRun(storage.Run{GameID: "knight", Score: 1234, Level: 2, Outcome: storage.OutcomeGameOver})
	store.SaveRun(storage.Run{GameID: "knight", Score: 4321, Level: 4, Outcome: storage.OutcomeCompleted})
	store.Close()

	out, err = execute(t, "scores", "--db", dbPath)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	first := strings.Index(out, "4321")
	second := strings.Index(out, "1234")
	if first < 0 || second < 0 || first > second {
		t.Errorf("scores should list 4321 before 1234:\n%s", out)
	}
	if !strings.Contains(out, "cleared") || !strings.Contains(out, "game over") {
		t.Errorf("scores should label outcomes:\n%s", out)
	}

	if _, err := execute(t, "scores", "--db", dbPath, "--clear"); err != nil {
		t.Fatalf("scores --clear failed: %v", err)
	}
	out, _ = execute(t, "scores", "--db", dbPath)
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("scores after clear:\n%s", out)
	}
}

func TestScoresUnknownGame(t *testing.T) {
	if _, err := execute(t, "scores", "tetris", "--db", filepath.Join(t.TempDir(), "s.db")); err == nil {
		t.Error("unknown game should fail")
	}
}
