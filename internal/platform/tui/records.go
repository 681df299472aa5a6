package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the stage sidebar
	sidebarWidth       = 24  // Width of the stage sidebar
	maxRecords         = 100 // Max clears to load per stage
)

// RecordSource is the read side of the clear records.
type RecordSource interface {
	BestClears(stageID string, limit int) ([]storage.ClearEntry, error)
	StageStats(stageID string) (*storage.StageStats, error)
}

// RecordsKeyMap defines the key bindings for the records board.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextStage key.Binding
	PrevStage key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStage, k.PrevStage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextStage, k.PrevStage},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev stage"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next stage"),
		),
		NextStage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next stage"),
		),
		PrevStage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev stage"),
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

// RecordsModel is the Bubble Tea model for the clear records board.
type RecordsModel struct {
	stages      []stage.Info
	cursor      int
	source      RecordSource
	clears      []storage.ClearEntry
	stats       *storage.StageStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewRecordsModel creates a records board over the given stages.
// A nil source shows an empty board.
func NewRecordsModel(source RecordSource, stages []stage.Info, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		stages:      stages,
		source:      source,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if len(m.stages) > 0 {
		m.load()
	}
	return m
}

// Focus moves the board to the stage with the given ID.
func (m *RecordsModel) Focus(stageID string) bool {
	for i, st := range m.stages {
		if st.ID == stageID {
			m.cursor = i
			m.load()
			return true
		}
	}
	return false
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 10},
		{Title: "Respawns", Width: 9},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth > 50 {
		columns[3].Width = min(tableWidth-31, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// load fetches records for the stage under the cursor.
func (m *RecordsModel) load() {
	m.clears, m.stats, m.loadErr = nil, nil, nil
	if m.source == nil || len(m.stages) == 0 {
		m.updateTableRows()
		return
	}

	id := m.stages[m.cursor].ID
	clears, err := m.source.BestClears(id, maxRecords)
	if err != nil {
		m.loadErr = err
	} else {
		m.clears = clears
	}
	if stats, err := m.source.StageStats(id); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current clears.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.clears))
	for i, c := range m.clears {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			FormatClearTime(c.Duration),
			fmt.Sprintf("%d", c.Respawns),
			c.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatClearTime renders a clear duration as m:ss.cc.
func FormatClearTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}

func (m *RecordsModel) step(delta int) {
	if len(m.stages) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.stages)) % len(m.stages)
	m.load()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextStage), key.Matches(msg, m.keys.Right):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevStage), key.Matches(msg, m.keys.Left):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Current returns the stage shown on the board.
func (m RecordsModel) Current() (stage.Info, bool) {
	if len(m.stages) == 0 {
		return stage.Info{}, false
	}
	return m.stages[m.cursor], true
}

// Rows returns the number of clears on the board.
func (m RecordsModel) Rows() int {
	return len(m.clears)
}

// View renders the records board.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "CLEAR RECORDS"
	if st, ok := m.Current(); ok {
		title = fmt.Sprintf("CLEAR RECORDS - %s (%s)", st.Title, st.ID)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with the stage list and stats on the left.
func (m RecordsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Stages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, st := range m.stages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + st.Title))
		sidebar.WriteString("\n")
	}

	if m.stats != nil && m.stats.Clears > 0 {
		sidebar.WriteString("\n")
		sidebar.WriteString(m.renderStats())
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

func (m RecordsModel) renderStats() string {
	s := m.stats
	return fmt.Sprintf("Clears   %d\nBest     %s\nAverage  %s\nRespawns %d\nRuns     %d",
		s.Clears, FormatClearTime(s.Best), FormatClearTime(s.Average), s.Respawns, s.Runs)
}

// renderNarrowLayout renders the board with stage tabs above the table.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.stages))
	for i, st := range m.stages {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(st.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + st.Title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.stages) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.stages[m.cursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load records:\n" + m.loadErr.Error())
	case len(m.clears) == 0:
		return emptyStyle.Render("No clears recorded yet.\nFinish the stage to set a time!")
	}
	return m.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunRecords runs the records board, starting at stageID when it is set.
func RunRecords(source RecordSource, stages []stage.Info, stageID string, width, height int) error {
	model := NewRecordsModel(source, stages, width, height)
	if stageID != "" {
		model.Focus(stageID)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
