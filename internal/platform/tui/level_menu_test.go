package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateLevels(t *testing.T, m LevelSelectModel, msg tea.Msg) LevelSelectModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(LevelSelectModel)
}

func TestLevelSelectCampaign(t *testing.T) {
	m := NewLevelSelectModelWith([]string{"Morning", "Day", "Night"}, 80, 24)

	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel := m.Selected()
	if sel == nil || sel.Level != 0 {
		t.Fatalf("Selected() = %+v, want level 0", sel)
	}
}

func TestLevelSelectPicksLevel(t *testing.T) {
	m := NewLevelSelectModelWith([]string{"Morning", "Day", "Night"}, 80, 24)

	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Fatal("opening the level list should not select anything")
	}

	for range 5 {
		m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.Level != 2 {
		t.Fatalf("Selected() = %+v, want the last level", sel)
	}
}

func TestLevelSelectBack(t *testing.T) {
	m := NewLevelSelectModelWith([]string{"Morning"}, 80, 24)

	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.WantsBack() {
		t.Fatal("esc in the level list should return to the mode list")
	}

	m = updateLevels(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("esc in the mode list should go back without a selection")
	}
}
