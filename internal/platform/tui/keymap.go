package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/niftybird/internal/core"
)

// KeyMap defines the key bindings of the arcade screen.
type KeyMap struct {
	Flap   key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Send   key.Binding
	Retype key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
	ForceQ key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Focus, k.Send, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Focus, k.Blur, k.Send},
		{k.Retype, k.Copy, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "start / flap"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "chat"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave chat"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Retype: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retype reply"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy chat"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQ: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// keyEvent translates a key press into a raw input event for the router.
func (k KeyMap) keyEvent(msg tea.KeyMsg) core.Event {
	ev := core.Event{Kind: core.EventKey, Key: msg.String()}
	if key.Matches(msg, k.Flap) {
		ev.Key = core.KeySpace
	}
	return ev
}

// mouseEvent translates a left click into a raw input event. Clicks
// outside the game viewport are marked so the router ignores them.
func mouseEvent(msg tea.MouseMsg, viewport core.Rect) (core.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Event{}, false
	}
	return core.Event{
		Kind:            core.EventClick,
		OutsideViewport: !viewport.Contains(msg.X, msg.Y),
	}, true
}
