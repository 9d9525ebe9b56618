package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/niftybird/internal/storage"
)

// History layout constants
const (
	minWidthForPreview = 90  // Minimum width to show the transcript beside the table
	maxSessions        = 100 // Max sessions to load
)

// HistoryStore is the part of the archive the history browser reads.
type HistoryStore interface {
	RecentSessions(limit int) ([]storage.SessionSummary, error)
	Transcript(sessionID string) ([]storage.EntryRecord, error)
	DeleteSession(id string) error
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Delete, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete session"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists archived conversations and previews the selected one.
type HistoryModel struct {
	store    HistoryStore
	sessions []storage.SessionSummary
	preview  []storage.EntryRecord
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

// createTable creates a session table sized to the terminal.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Session", Width: 24},
		{Title: "Origin", Width: 22},
		{Title: "Msgs", Width: 5},
		{Title: "Last active", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
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

// loadSessions reloads the session list and the preview.
func (m *HistoryModel) loadSessions() {
	sessions, err := m.store.RecentSessions(maxSessions)
	m.err = err
	m.sessions = sessions

	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			s.ID,
			s.Origin,
			fmt.Sprintf("%d", s.Entries),
			s.LastActive.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.loadPreview()
}

// loadPreview loads the transcript of the selected session.
func (m *HistoryModel) loadPreview() {
	m.preview = nil
	sel, ok := m.Selected()
	if !ok {
		return
	}
	entries, err := m.store.Transcript(sel.ID)
	if err != nil {
		m.err = err
		return
	}
	m.preview = entries
}

// Selected returns the session under the cursor.
func (m HistoryModel) Selected() (storage.SessionSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return storage.SessionSummary{}, false
	}
	return m.sessions[i], true
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Delete):
			if sel, ok := m.Selected(); ok {
				m.err = m.store.DeleteSession(sel.ID)
				m.loadSessions()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadPreview()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.loadSessions()
		m.table.SetCursor(min(cursor, max(len(m.sessions)-1, 0)))
		m.loadPreview()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("CHAT HISTORY (%d sessions)", len(m.sessions))))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	if len(m.sessions) == 0 {
		body = boxStyle.Render(dimText.Render("No conversations archived yet."))
	} else {
		body = boxStyle.Render(m.table.View())
		if m.width >= minWidthForPreview {
			previewW := max(m.width-lipgloss.Width(body)-4, 20)
			preview := boxStyle.Width(previewW).Render(m.renderPreview(previewW - 2))
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", preview)
		}
	}
	b.WriteString(body)
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderPreview renders the selected transcript, newest lines last, cut to
// the table height.
func (m HistoryModel) renderPreview(width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 1))

	var lines []string
	for _, e := range m.preview {
		label, style := botLabel, botText
		if e.Sender == "You" {
			label, style = userLabel, userText
		}
		bubble := wrap.Render(label.Render(e.Sender+": ") + RenderMarkup(e.Text, style))
		lines = append(lines, strings.Split(bubble, "\n")...)
	}

	limit := max(m.height-6, 3)
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return strings.Join(lines, "\n")
}

// RunHistory starts the history browser.
func RunHistory(store HistoryStore, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
