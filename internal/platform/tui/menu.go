package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

// RunRecord summarises the recorded campaign runs.
type RunRecord struct {
	Runs       int
	Cleared    int // Runs that finished every level
	Best       int // Best total score
	Deepest    int // 0-based deepest level reached
	LastPlayed time.Time
}

// LoadRunRecord reads the campaign record. A nil store or a failed query
// yields an empty record.
func LoadRunRecord(store *storage.Store) RunRecord {
	if store == nil {
		return RunRecord{}
	}
	stats, err := store.GetGameStats(knight.GameID)
	if err != nil || stats.GamesCount == 0 {
		return RunRecord{}
	}
	return RunRecord{
		Runs:       stats.GamesCount,
		Cleared:    stats.Completions,
		Best:       stats.HighScore,
		Deepest:    stats.BestLevel,
		LastPlayed: stats.LastPlayed,
	}
}

// levelLabel renders a 0-based level as "N. Name", falling back to the
// number when the name is unknown.
func levelLabel(level int, names []string) string {
	if level >= 0 && level < len(names) {
		return fmt.Sprintf("%d. %s", level+1, names[level])
	}
	return fmt.Sprintf("%d", level+1)
}

type menuEntry int

const (
	entryPlay menuEntry = iota
	entryDemo
	entryScores
	entryQuit
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	GameID string // Empty for entries that do not start a run
	Title  string
	entry  menuEntry
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items          []MenuItem
	record         RunRecord
	levels         []string
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates the main menu with the stored campaign record.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return NewMenuModelWith(LoadRunRecord(store), knight.LevelNames(), cfg)
}

// NewMenuModelWith creates the main menu over an explicit record and level list.
func NewMenuModelWith(record RunRecord, levels []string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{GameID: knight.GameID, Title: "Ride out", entry: entryPlay},
			{GameID: knight.DemoGameID, Title: "Watch the autopilot", entry: entryDemo},
			{Title: "Hall of runs", entry: entryScores},
			{Title: "Leave", entry: entryQuit},
		},
		record:    record,
		levels:    levels,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.items)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.entry {
		case entryScores:
			m.openScoreboard = true
		case entryQuit:
			m.quitting = true
		default:
			m.selected = &item
		}
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("K N I G H T   R U N N E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Charge your jump across %d levels of pits and fires", len(m.levels)), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.recordLines() {
		b.WriteString(centerText(menuDimStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Hall of runs  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// recordLines describes the campaign record under the menu.
func (m MenuModel) recordLines() []string {
	r := m.record
	if r.Runs == 0 {
		return []string{"No runs yet. The road is open."}
	}

	lines := []string{
		fmt.Sprintf("Best total %d  |  Deepest %s", r.Best, levelLabel(r.Deepest, m.levels)),
		fmt.Sprintf("Cleared %d of %d runs", r.Cleared, r.Runs),
	}
	if !r.LastPlayed.IsZero() {
		lines = append(lines, "Last ride "+r.LastPlayed.Format("Jan 02 15:04"))
	}
	return lines
}

// Selected returns the run the user picked, or nil if none.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// visible cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
