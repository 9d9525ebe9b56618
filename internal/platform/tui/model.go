package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
	"github.com/vovakirdan/niftybird/internal/dialogue"
	"github.com/vovakirdan/niftybird/internal/games/flappy"
)

// Layout constants
const (
	minChatWidth = 30 // Narrowest usable chat panel, border included
	chatChrome   = 4  // Border rows plus title and input lines
)

// Archive persists chat entries. *storage.Store implements it.
type Archive interface {
	StartSession(id, origin string) error
	SaveEntry(sessionID, sender, text, source string) (int64, error)
}

// Options configures a Model.
type Options struct {
	Game     config.GameConfig
	Chat     config.ChatConfig
	TickRate int
	Seed     int64 // 0 means use current time
	ShowGame bool
	ShowChat bool
	Width    int // Initial terminal size; updated on resize
	Height   int

	Logger    *log.Logger // Nil discards logs
	Archive   Archive     // Nil disables transcript archiving
	SessionID string
	Origin    string
}

// Model is the Bubble Tea model for the game viewport and the chat panel.
type Model struct {
	opts    Options
	logger  *log.Logger
	keys    KeyMap
	help    help.Model
	router  *core.Router
	game    *flappy.Game
	screen  *core.Screen
	canvas  *ScreenCanvas
	speaker *Speaker
	session *dialogue.Session
	input   textinput.Model
	view    viewport.Model

	width    int
	height   int
	gameW    int
	gameH    int
	status   string
	quitting bool
}

// NewModel creates the arcade model.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.SessionID == "" {
		opts.SessionID = fmt.Sprintf("local-%d", time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	screen := core.NewScreen(1, 1)
	session := dialogue.NewSession(dialogue.NewPolicy(opts.Chat), opts.Chat.Settings)
	session.OnAppend(func(e dialogue.Entry) {
		logger.Debug("chat entry", "session", opts.SessionID, "sender", e.Sender, "len", len(e.Text))
	})

	input := textinput.New()
	input.Placeholder = "Ask me anything..."
	input.Prompt = "› "
	input.CharLimit = 200

	h := help.New()
	h.ShowAll = false

	m := Model{
		opts:    opts,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    h,
		router:  core.NewRouter(),
		game:    flappy.New(opts.Game, opts.Seed),
		screen:  screen,
		canvas:  NewScreenCanvas(screen, opts.Game.Canvas.Width, opts.Game.Canvas.Height),
		speaker: NewSpeaker(logger),
		session: session,
		input:   input,
		view:    viewport.New(1, 1),
		width:   opts.Width,
		height:  opts.Height,
	}

	if opts.Archive != nil {
		if err := opts.Archive.StartSession(opts.SessionID, opts.Origin); err != nil {
			logger.Warn("could not archive session", "session", opts.SessionID, "error", err)
		}
	}

	// Chat-only mode starts with the input focused.
	if opts.ShowChat && !opts.ShowGame {
		m.input.Focus()
		m.router.SetChatFocused(true)
	}

	m.layout()
	return m
}

// Init posts the greeting and starts its reveal.
func (m Model) Init() tea.Cmd {
	if !m.opts.ShowChat {
		return nil
	}
	idx, gen := m.session.Greet()
	m.archive(idx, "greeting")
	m.refreshChat()
	return tea.Batch(textinput.Blink, revealCmd(m.session.RevealInterval(), idx, gen))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		result, ok := m.game.Tick(msg.Token)
		if !ok {
			return m, nil
		}
		return m, m.applyStep(result, result.Continue)

	case ReplyMsg:
		idx, gen := m.session.Deliver(msg.Pending)
		m.archive(idx, msg.Pending.Decision.Source)
		m.refreshChat()
		return m, revealCmd(m.session.RevealInterval(), idx, gen)

	case RevealMsg:
		more := m.session.Advance(msg.Entry, msg.Gen)
		m.refreshChat()
		if more {
			return m, revealCmd(m.session.RevealInterval(), msg.Entry, msg.Gen)
		}
		return m, nil

	case cueDoneMsg:
		m.speaker.expire(msg.seq)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQ) {
		m.quitting = true
		return m, tea.Quit
	}

	// Every key goes through the router; it drops them while chat has focus.
	if m.opts.ShowGame && m.router.Route(m.keys.keyEvent(msg)) == core.ActionActivate {
		return m, m.activate()
	}

	switch {
	case key.Matches(msg, m.keys.Focus) && m.opts.ShowChat && m.opts.ShowGame:
		return m, m.setFocus(!m.router.ChatFocused())
	case key.Matches(msg, m.keys.Retype):
		return m, m.retypeLast()
	case key.Matches(msg, m.keys.Copy):
		m.copyTranscript()
		return m, nil
	}

	if m.router.ChatFocused() {
		switch {
		case key.Matches(msg, m.keys.Blur) && m.opts.ShowGame:
			return m, m.setFocus(false)
		case key.Matches(msg, m.keys.Send):
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

// handleMouse routes clicks to the game and scroll wheel to the chat.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev, ok := mouseEvent(msg, m.viewportRect())
	if !ok {
		if m.opts.ShowChat {
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.opts.ShowGame && m.router.Route(ev) == core.ActionActivate {
		return m, m.activate()
	}
	// A click on the chat panel focuses its input.
	if ev.OutsideViewport && m.opts.ShowChat && !m.router.ChatFocused() {
		return m, m.setFocus(true)
	}
	return m, nil
}

// activate feeds one logical action to the game.
func (m *Model) activate() tea.Cmd {
	result := m.game.Activate()
	// A flap rides the running loop; only a restart starts a new one.
	return m.applyStep(result, result.Restarted)
}

// applyStep plays the step's cues and, when schedule is set, queues the
// next tick for the step's loop.
func (m *Model) applyStep(result core.StepResult, schedule bool) tea.Cmd {
	var cmds []tea.Cmd

	if len(result.Cues) > 0 {
		core.PlayAll(m.speaker, result.Cues)
		cmds = append(cmds, cueDoneCmd(m.speaker.seq))
	}
	if result.Restarted {
		m.logger.Debug("loop started", "token", result.Token)
	}
	if result.State.GameOver() && slices.Contains(result.Cues, core.CueDie) {
		m.logger.Info("game over", "game", m.game.ID(), "session", m.opts.SessionID, "score", result.State.Score, "frames", result.State.Frame)
	}

	if schedule {
		cmds = append(cmds, tickCmd(m.opts.TickRate, result.Token))
	}
	return tea.Batch(cmds...)
}

// setFocus moves keyboard focus between the game and the chat input.
func (m *Model) setFocus(chat bool) tea.Cmd {
	m.router.SetChatFocused(chat)
	m.layout()
	if chat {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// submit sends the input line to the session and schedules the reply.
func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	m.input.Reset()

	p, ok := m.session.Submit(text)
	if !ok {
		return nil
	}
	m.archive(m.session.Len()-1, "")
	m.logger.Debug("reply chosen", "source", p.Decision.Source, "match", p.Decision.Match, "mode", m.session.Mode())
	m.refreshChat()
	return replyCmd(p)
}

// retypeLast replays the reveal of the newest bot bubble.
func (m *Model) retypeLast() tea.Cmd {
	entries := m.session.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Sender != dialogue.SenderBot {
			continue
		}
		gen, ok := m.session.Retype(i)
		if !ok {
			return nil
		}
		m.refreshChat()
		return revealCmd(m.session.RevealInterval(), i, gen)
	}
	return nil
}

// copyTranscript puts the plain-text conversation on the clipboard.
func (m *Model) copyTranscript() {
	if err := clipboard.WriteAll(m.session.Transcript()); err != nil {
		m.logger.Warn("could not copy transcript", "error", err)
		m.status = "clipboard unavailable"
		return
	}
	m.status = "chat copied"
}

// archive stores entry i of the session, best effort.
func (m *Model) archive(i int, source dialogue.Source) {
	if m.opts.Archive == nil {
		return
	}
	e, ok := m.session.Entry(i)
	if !ok {
		return
	}
	if _, err := m.opts.Archive.SaveEntry(m.opts.SessionID, e.Sender.String(), e.Text, string(source)); err != nil {
		m.logger.Warn("could not archive chat entry", "session", m.opts.SessionID, "error", err)
	}
}

// layout sizes the game screen and the chat panel to the terminal.
func (m *Model) layout() {
	bodyH := max(m.height-lipgloss.Height(m.help.View(m.keys)), 1)

	m.gameW, m.gameH = 0, bodyH
	if m.opts.ShowGame {
		// World pixels are square, terminal cells are about twice as tall as wide.
		w := int(float64(bodyH) * 2 * m.opts.Game.Canvas.Width / m.opts.Game.Canvas.Height)
		limit := m.width
		if m.opts.ShowChat {
			limit -= minChatWidth + 1
		}
		m.gameW = max(min(w, limit), 1)
		m.screen.Resize(m.gameW, bodyH)
		m.canvas.Fit(m.opts.Game.Canvas.Width, m.opts.Game.Canvas.Height)
	}

	if m.opts.ShowChat {
		chatW := m.chatWidth()
		m.view.Width = max(chatW-2, 1)
		m.view.Height = max(bodyH-chatChrome, 1)
		m.input.Width = max(chatW-6, 1)
		m.refreshChat()
	}
}

func (m Model) chatWidth() int {
	w := m.width
	if m.opts.ShowGame {
		w -= m.gameW + 1
	}
	return max(w, minChatWidth)
}

// viewportRect returns the screen cells occupied by the game.
func (m Model) viewportRect() core.Rect {
	if !m.opts.ShowGame {
		return core.Rect{}
	}
	return core.NewRect(0, 0, m.gameW, m.gameH)
}

// Chat styles
var (
	userLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	botLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	userText  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	botText   = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimText   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// refreshChat re-renders the transcript into the chat viewport.
func (m *Model) refreshChat() {
	if !m.opts.ShowChat {
		return
	}
	m.view.SetContent(m.renderTranscript(m.view.Width))
	m.view.GotoBottom()
}

// renderTranscript renders every bubble wrapped to width.
func (m Model) renderTranscript(width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 1))

	var b strings.Builder
	for i, e := range m.session.Entries() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label, style := botLabel, botText
		if e.Sender == dialogue.SenderUser {
			label, style = userLabel, userText
		}
		bubble := label.Render(e.Sender.String()+": ") + RenderMarkup(e.Visible(), style)
		b.WriteString(wrap.Render(bubble))
	}
	return b.String()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var panes []string
	if m.opts.ShowGame {
		m.game.Render(m.canvas)
		panes = append(panes, RenderScreen(m.screen))
	}
	if m.opts.ShowChat {
		if len(panes) > 0 {
			panes = append(panes, " ")
		}
		panes = append(panes, m.renderChatPanel())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus())
}

// renderChatPanel renders the bordered chat panel.
func (m Model) renderChatPanel() string {
	border := lipgloss.Color("240")
	if m.router.ChatFocused() {
		border = lipgloss.Color("57")
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(m.chatWidth() - 2)

	title := lipgloss.NewStyle().Bold(true).Render("Nifty Bot") +
		dimText.Render(fmt.Sprintf("  mode %s", m.session.Mode()))

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.view.View(), m.input.View()))
}

// renderStatus renders the help line plus the cue and status indicators.
func (m Model) renderStatus() string {
	line := m.help.View(m.keys)
	if c, ok := m.speaker.Current(); ok {
		line += dimText.Render("  ♪ " + c.String())
	}
	if m.status != "" {
		line += dimText.Render("  " + m.status)
	}
	return line
}

// Session returns the chat session driven by the model.
func (m Model) Session() *dialogue.Session {
	return m.session
}

// Game returns the game driven by the model.
func (m Model) Game() *flappy.Game {
	return m.game
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
