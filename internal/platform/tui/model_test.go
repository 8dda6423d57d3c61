package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

// scriptedGame ends the run when it sees a confirm action and restarts on r.
type scriptedGame struct {
	id    string
	state core.GameState
	steps int
}

func (g *scriptedGame) ID() string { return g.id }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.state = core.GameState{Phase: "playing", Lives: 3, Accent: "#87CEEB"}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	switch {
	case in.Has(core.ActionRestart):
		g.Reset(core.RuntimeConfig{})
	case in.Has(core.ActionConfirm):
		g.state.GameOver = true
		g.state.Phase = "game_over"
	case !g.state.Finished():
		g.state.TotalScore++
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState { return g.state }

func newTestModel(t *testing.T, id string) (Model, *scriptedGame, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := &scriptedGame{id: id}
	logger := log.New(io.Discard)
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, logger)
	return m, game, store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	return send(t, m, TickMsg(time.Now()))
}

func TestModelSavesRunOnce(t *testing.T) {
	m, _, store := newTestModel(t, "knight")

	for range 5 {
		m = tick(t, m)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 3 {
		m = tick(t, m)
	}

	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	scores, err := store.TopScores("knight", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one saved run, got %d", len(scores))
	}
	if scores[0].Score != 5 || scores[0].Outcome != storage.OutcomeGameOver {
		t.Errorf("saved run = %+v, want score 5 game_over", scores[0])
	}
}

func TestModelSavesAgainAfterRestart(t *testing.T) {
	m, _, store := newTestModel(t, "knight")

	m = tick(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	m = send(t, m, runeKey('r'))
	m = tick(t, m)
	m = tick(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	scores, _ := store.TopScores("knight", 10)
	if len(scores) != 2 {
		t.Errorf("expected two saved runs, got %d", len(scores))
	}
}

func TestModelSkipsDemoRuns(t *testing.T) {
	m, _, store := newTestModel(t, "knight_demo")

	m = tick(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	scores, _ := store.TopScores("knight_demo", 10)
	if len(scores) != 0 {
		t.Errorf("demo runs should not be saved, got %d", len(scores))
	}
}

func TestModelQuitRecordsPartialRun(t *testing.T) {
	m, _, store := newTestModel(t, "knight")

	for range 4 {
		m = tick(t, m)
	}
	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)

	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	scores, _ := store.TopScores("knight", 10)
	if len(scores) != 1 || scores[0].Outcome != storage.OutcomeQuit {
		t.Errorf("scores = %+v, want one quit run", scores)
	}
}

func TestModelBackNeedsPauseMidRun(t *testing.T) {
	m, _, _ := newTestModel(t, "knight")
	m = tick(t, m)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should return to the menu after game over")
	}
}

func TestModelView(t *testing.T) {
	m, game, _ := newTestModel(t, "knight")
	m = tick(t, m)

	view := m.View()
	if !strings.Contains(view, "scripted") {
		t.Error("view should contain the game screen")
	}
	if !strings.Contains(view, game.Title()) {
		t.Error("view should contain the status bar")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.screen.Width() != 60 || m.screen.Height() != 20-statusBarHeight {
		t.Errorf("screen = %dx%d after resize", m.screen.Width(), m.screen.Height())
	}
}
