package core

// Action represents a semantic game action, abstracted from physical input.
type Action int

const (
	ActionNone     Action = iota
	ActionActivate        // Tap, click or space: start, restart or flap
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionActivate:
		return "Activate"
	default:
		return "Unknown"
	}
}

// EventKind is the physical source of an input event.
type EventKind int

const (
	EventTap   EventKind = iota // Touch start
	EventClick                  // Mouse click (possibly synthesized after a tap)
	EventKey                    // Key press
)

// KeySpace is the key name that activates the game.
const KeySpace = "space"

// Event is one discrete input event delivered by a platform.
type Event struct {
	Kind EventKind
	Key  string // Key name for EventKey
	// OutsideViewport marks pointer events that landed on surrounding
	// chrome (menu bar, chat panel) rather than the game.
	OutsideViewport bool
}

// Router collapses raw input events into game actions.
// A tap arms a one-shot flag that swallows the click a browser-like platform
// synthesizes right after it, so one touch flaps once. While a text input
// has focus, key events never reach the game.
type Router struct {
	chatFocused  bool
	touchPending bool
}

// NewRouter creates a router with no text input focused.
func NewRouter() *Router {
	return &Router{}
}

// SetChatFocused records whether a text input currently has focus.
func (r *Router) SetChatFocused(focused bool) {
	r.chatFocused = focused
}

// ChatFocused reports whether a text input currently has focus.
func (r *Router) ChatFocused() bool {
	return r.chatFocused
}

// Route translates an event into at most one action.
func (r *Router) Route(ev Event) Action {
	switch ev.Kind {
	case EventClick:
		if r.touchPending {
			r.touchPending = false
			return ActionNone
		}
		if ev.OutsideViewport {
			return ActionNone
		}
		return ActionActivate

	case EventTap:
		if ev.OutsideViewport {
			return ActionNone
		}
		r.touchPending = true
		return ActionActivate

	case EventKey:
		if r.chatFocused {
			return ActionNone
		}
		if ev.Key == KeySpace {
			return ActionActivate
		}
	}

	return ActionNone
}
