// Package tui provides the Bubble Tea integration for niftybird.
// It drives the game loop and the chat reveal timers, maps terminal input
// to game events and renders both to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/niftybird/internal/dialogue"
)

// TickMsg is sent to trigger a game simulation tick. Token identifies the
// loop that scheduled it; ticks from a superseded loop are dropped.
type TickMsg struct {
	Token uint64
}

// ReplyMsg delivers a bot reply once its typing delay has passed.
type ReplyMsg struct {
	Pending dialogue.Pending
}

// RevealMsg reveals the next character of a bot bubble.
type RevealMsg struct {
	Entry int
	Gen   uint64
}

// cueDoneMsg clears the sound indicator once it has been shown long enough.
type cueDoneMsg struct {
	seq int
}

// tickCmd returns a command that sends one tick for the given loop.
func tickCmd(tickRate int, token uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Token: token}
	})
}

// replyCmd delivers p after its delay.
func replyCmd(p dialogue.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return ReplyMsg{Pending: p}
	})
}

// revealCmd schedules the next reveal step of one bubble.
func revealCmd(interval time.Duration, entry int, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RevealMsg{Entry: entry, Gen: gen}
	})
}

// cueDoneCmd expires the sound indicator.
func cueDoneCmd(seq int) tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg {
		return cueDoneMsg{seq: seq}
	})
}
