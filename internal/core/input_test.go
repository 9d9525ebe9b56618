package core

import "testing"

func TestRouterSpaceActivates(t *testing.T) {
	r := NewRouter()

	if got := r.Route(Event{Kind: EventKey, Key: KeySpace}); got != ActionActivate {
		t.Errorf("space should activate, got %v", got)
	}
	if got := r.Route(Event{Kind: EventKey, Key: "x"}); got != ActionNone {
		t.Errorf("other keys should be ignored, got %v", got)
	}
}

func TestRouterChatFocusSuppressesKeys(t *testing.T) {
	r := NewRouter()
	r.SetChatFocused(true)

	if got := r.Route(Event{Kind: EventKey, Key: KeySpace}); got != ActionNone {
		t.Errorf("space while chat is focused should be ignored, got %v", got)
	}

	// Pointer input still reaches the game.
	if got := r.Route(Event{Kind: EventClick}); got != ActionActivate {
		t.Errorf("click while chat is focused should activate, got %v", got)
	}

	r.SetChatFocused(false)
	if got := r.Route(Event{Kind: EventKey, Key: KeySpace}); got != ActionActivate {
		t.Errorf("space after blur should activate, got %v", got)
	}
}

func TestRouterTapSwallowsSynthesizedClick(t *testing.T) {
	r := NewRouter()

	if got := r.Route(Event{Kind: EventTap}); got != ActionActivate {
		t.Fatalf("tap should activate, got %v", got)
	}
	if got := r.Route(Event{Kind: EventClick}); got != ActionNone {
		t.Errorf("click right after a tap should be swallowed, got %v", got)
	}
	if got := r.Route(Event{Kind: EventClick}); got != ActionActivate {
		t.Errorf("second click should activate again, got %v", got)
	}
}

func TestRouterIgnoresChrome(t *testing.T) {
	r := NewRouter()

	if got := r.Route(Event{Kind: EventClick, OutsideViewport: true}); got != ActionNone {
		t.Errorf("click outside the viewport should be ignored, got %v", got)
	}
	if got := r.Route(Event{Kind: EventTap, OutsideViewport: true}); got != ActionNone {
		t.Errorf("tap outside the viewport should be ignored, got %v", got)
	}
	// An ignored tap must not arm the click swallow.
	if got := r.Route(Event{Kind: EventClick}); got != ActionActivate {
		t.Errorf("click after ignored tap should activate, got %v", got)
	}
}
