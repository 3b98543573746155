package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fynn9563/bootgif/internal/github"
)

// Stats browser layout constants
const (
	langTableMaxRows = 8 // Max visible language rows before scrolling
	summaryLabelPad  = 15
)

// StatsKeyMap defines the key bindings for the stats browser.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for browsing fetched profile stats.
type StatsModel struct {
	stats    github.UserStats
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	quitting bool
}

// NewStatsModel creates a stats browser over the fetched stats.
func NewStatsModel(stats github.UserStats) StatsModel {
	keys := DefaultStatsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		stats: stats,
		keys:  keys,
		help:  h,
		width: 64,
	}

	m.table = m.createTable()
	m.fillRows()

	return m
}

// createTable creates the language table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Language", Width: 18},
		{Title: "Size", Width: 12},
		{Title: "Share", Width: 8},
	}

	height := len(m.stats.Languages)
	if height > langTableMaxRows {
		height = langTableMaxRows
	}
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

// fillRows populates the table from the fetched language sizes.
func (m *StatsModel) fillRows() {
	var total int
	for _, l := range m.stats.Languages {
		total += l.Size
	}

	rows := make([]table.Row, len(m.stats.Languages))
	for i, l := range m.stats.Languages {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", float64(l.Size)*100/float64(total))
		}
		rows[i] = table.Row{
			l.Name,
			humanize.Bytes(uint64(l.Size)),
			share,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats browser.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats browser.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats browser.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("GITHUB STATS - %s", m.stats.AccountName)))
	b.WriteString("\n\n")

	b.WriteString(m.renderSummary())
	b.WriteString("\n")

	// Language table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSummary renders the label/value lines above the language table.
func (m StatsModel) renderSummary() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	valueStyle := lipgloss.NewStyle().
		Bold(true)

	line := func(b *strings.Builder, label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", summaryLabelPad, label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	var b strings.Builder
	line(&b, "Rank", fmt.Sprintf("%s (top %.1f%%)", m.stats.Rank.Level, m.stats.Rank.Percentile))
	line(&b, "Stars", fmt.Sprintf("%d", m.stats.TotalStars))
	line(&b, "Followers", fmt.Sprintf("%d", m.stats.TotalFollowers))
	line(&b, "Commits (year)", fmt.Sprintf("%d", m.stats.CommitsLastYear))
	line(&b, "Reviews (year)", fmt.Sprintf("%d", m.stats.ReviewsLastYear))
	line(&b, "Pull Requests", fmt.Sprintf("%d made, %d merged (%.2f%%)",
		m.stats.PullRequestsMade, m.stats.PullRequestsMerged, m.stats.MergedPercentage))
	line(&b, "Issues", fmt.Sprintf("%d", m.stats.TotalIssues))
	line(&b, "Contributed to", fmt.Sprintf("%d", m.stats.RepoContributions))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	if len(m.stats.Languages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		return emptyStyle.Render("No language data fetched.")
	}

	return m.table.View()
}

// RunStats opens the interactive stats browser and blocks until quit.
func RunStats(stats github.UserStats) error {
	model := NewStatsModel(stats)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
