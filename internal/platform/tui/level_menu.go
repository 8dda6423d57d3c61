package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/games/knight"
)

// LevelSelection holds the user's choice of starting level (0-based).
type LevelSelection struct {
	Level int
}

// LevelSelectModel lets users start the campaign or pick a starting level.
type LevelSelectModel struct {
	levels        []string
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelSelectModel creates a level selector for the configured levels.
func NewLevelSelectModel(width, height int) LevelSelectModel {
	return NewLevelSelectModelWith(knight.LevelNames(), width, height)
}

// NewLevelSelectModelWith creates a level selector over explicit level names.
func NewLevelSelectModelWith(levels []string, width, height int) LevelSelectModel {
	return LevelSelectModel{
		levels:    levels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = 0
	case MenuActionDown:
		m.cursor = 1
	case MenuActionSelect:
		if m.cursor == 0 {
			m.choosing = false
			m.selection = LevelSelection{Level: 0}
			return m, tea.Quit
		}
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.levelCursor}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode or level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.inLevelSelect {
		b.WriteString(centerText("SELECT LEVEL", m.width))
		b.WriteString("\n\n")
		for i, name := range m.levels {
			cursor := "  "
			if i == m.levelCursor {
				cursor = "> "
			}
			b.WriteString(centerText(fmt.Sprintf("%s%d. %s", cursor, i+1, name), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("K N I G H T   R U N N E R", m.width))
		b.WriteString("\n\n")
		modes := []string{
			fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
			"Select Level...",
		}
		for i, mode := range modes {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+mode, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selection and returns the selection,
// or nil if the user backed out or quit.
func RunLevelSelector(cfg core.RuntimeConfig) (*LevelSelection, error) {
	model := NewLevelSelectModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
