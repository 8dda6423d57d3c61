package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/storage"
)

const maxRuns = 100 // Runs loaded into the hall

// runFilter narrows the hall to one way a run can end.
type runFilter int

const (
	filterAll runFilter = iota
	filterCleared
	filterFallen
	filterQuit
	filterCount
)

func (f runFilter) String() string {
	switch f {
	case filterCleared:
		return "Cleared"
	case filterFallen:
		return "Fallen"
	case filterQuit:
		return "Quit"
	default:
		return "All runs"
	}
}

func (f runFilter) match(o storage.Outcome) bool {
	switch f {
	case filterCleared:
		return o == storage.OutcomeCompleted
	case filterFallen:
		return o == storage.OutcomeGameOver
	case filterQuit:
		return o == storage.OutcomeQuit
	default:
		return true
	}
}

// ScoreboardKeyMap defines the key bindings for the hall of runs.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/l", "next filter"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/h", "prev filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the hall of recorded campaign runs.
type ScoreboardModel struct {
	runs      []storage.ScoreEntry // Every loaded run, best first
	shown     []storage.ScoreEntry // Runs passing the filter
	filter    runFilter
	record    RunRecord
	levels    []string
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads the best campaign runs from store.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var runs []storage.ScoreEntry
	if store != nil {
		// An unreadable store shows an empty hall
		runs, _ = store.TopScores(knight.GameID, maxRuns)
	}
	return NewScoreboardModelWith(runs, LoadRunRecord(store), knight.LevelNames(), width, height)
}

// NewScoreboardModelWith creates the hall over explicit runs, best first.
func NewScoreboardModelWith(runs []storage.ScoreEntry, record RunRecord, levels []string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		runs:   runs,
		record: record,
		levels: levels,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.applyFilter()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Total", Width: 7},
		{Title: "Reached", Width: 16},
		{Title: "Result", Width: 8},
		{Title: "Date", Width: 12},
	}

	// Long level names get any spare width
	if spare := m.width - 4 - 58; spare > 0 {
		columns[2].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, record, filters and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// applyFilter rebuilds the table rows for the current filter. Ranks stay
// those of the unfiltered hall.
func (m *ScoreboardModel) applyFilter() {
	m.shown = nil
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		if !m.filter.match(r.Outcome) {
			continue
		}
		m.shown = append(m.shown, r)
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			levelLabel(r.Level, m.levels),
			outcomeLabel(r.Outcome),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// outcomeLabel returns the short label shown in the Result column.
func outcomeLabel(o storage.Outcome) string {
	switch o {
	case storage.OutcomeCompleted:
		return "cleared"
	case storage.OutcomeQuit:
		return "quit"
	default:
		return "fallen"
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % filterCount
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter + filterCount - 1) % filterCount
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	filterTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	filterActiveTabStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	hallBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HALL OF RUNS"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.recordLine()), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, filterCount)
	for f := range filterCount {
		label := fmt.Sprintf("%s %d", f, m.count(f))
		if f == m.filter {
			tabs[f] = filterActiveTabStyle.Render(label)
		} else {
			tabs[f] = filterTabStyle.Render(label)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hallBorderStyle.Render(m.renderTableContent())))
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// recordLine summarises the whole campaign record, whatever the filter.
func (m ScoreboardModel) recordLine() string {
	r := m.record
	if r.Runs == 0 {
		return "No runs recorded"
	}
	return fmt.Sprintf("Runs %d  |  Cleared %d%%  |  Best %d  |  Deepest %s",
		r.Runs, r.Cleared*100/r.Runs, r.Best, levelLabel(r.Deepest, m.levels))
}

// count returns how many loaded runs pass filter f.
func (m ScoreboardModel) count(f runFilter) int {
	n := 0
	for _, r := range m.runs {
		if f.match(r.Outcome) {
			n++
		}
	}
	return n
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.shown) > 0 {
		return m.table.View()
	}

	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if len(m.runs) == 0 {
		return empty.Render("No runs recorded yet.\nFinish a run to enter the hall!")
	}
	return empty.Render(fmt.Sprintf("No %s runs yet.", strings.ToLower(m.filter.String())))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the hall of runs.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
