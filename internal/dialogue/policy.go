package dialogue

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/vovakirdan/niftybird/internal/config"
)

// Mode controls how the policy treats near-miss input.
type Mode int

const (
	ModeStrict Mode = iota // Reject misspellings with a notice
	ModeSmart              // Auto-correct to the closest known phrase
)

// String returns the mode name as shown to the user.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "STRICT"
	case ModeSmart:
		return "SMART"
	default:
		return "UNKNOWN"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSmart {
		return ModeStrict
	}
	return ModeSmart
}

// ParseMode parses "strict" or "smart", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ModeStrict, nil
	case "smart":
		return ModeSmart, nil
	default:
		return ModeStrict, fmt.Errorf("dialogue: unknown mode %q (use strict or smart)", s)
	}
}

// Source names the policy step that produced a reply.
type Source string

const (
	SourceTrigger    Source = "trigger"
	SourceMode       Source = "mode"
	SourceMisspelled Source = "misspelled"
	SourceHelp       Source = "help"
	SourceRule       Source = "rule"
	SourceUnknown    Source = "unknown"
)

// Decision is a reply together with how it was chosen.
type Decision struct {
	Reply  string
	Source Source
	// Match is the trigger, corrected phrase or rule keyword involved, if any.
	Match string
	// Corrected is true when smart mode replaced the message with Match
	// before the rules ran.
	Corrected bool
}

// Policy selects replies deterministically from a fixed vocabulary.
// It is read-only after construction and safe to share between sessions.
type Policy struct {
	triggers    []config.Trigger
	known       []string
	rules       []config.Rule
	replies     config.ChatReplies
	modeCommand string
	tolerance   int
	defaultMode Mode
}

// NewPolicy builds a policy from the chat configuration. Trigger texts,
// known phrases and keywords are normalized the same way messages are.
// An unknown default mode falls back to strict.
func NewPolicy(cfg config.ChatConfig) *Policy {
	p := &Policy{
		replies:     cfg.Replies,
		modeCommand: normalize(cfg.Settings.ModeCommand),
		tolerance:   cfg.Settings.Tolerance,
	}
	if mode, err := ParseMode(cfg.Settings.DefaultMode); err == nil {
		p.defaultMode = mode
	}

	for _, t := range cfg.Triggers {
		match := normalize(t.Match)
		if match == "" {
			continue
		}
		p.triggers = append(p.triggers, config.Trigger{Match: match, Reply: t.Reply})
	}
	for _, phrase := range cfg.Known {
		if phrase = normalize(phrase); phrase != "" {
			p.known = append(p.known, phrase)
		}
	}
	for _, r := range cfg.Rules {
		rule := config.Rule{Reply: r.Reply}
		for _, k := range r.Keywords {
			if k = normalize(k); k != "" {
				rule.Keywords = append(rule.Keywords, k)
			}
		}
		if len(rule.Keywords) > 0 {
			p.rules = append(p.rules, rule)
		}
	}

	return p
}

// DefaultMode returns the mode new sessions start in.
func (p *Policy) DefaultMode() Mode {
	return p.defaultMode
}

// Greeting returns the opening bot message.
func (p *Policy) Greeting() string {
	return p.replies.Greeting
}

// Reply returns the reply to message. The mode command flips *mode.
func (p *Policy) Reply(message string, mode *Mode) string {
	return p.Decide(message, mode).Reply
}

// Decide runs the reply policy and reports which step answered.
// It always produces a reply.
func (p *Policy) Decide(message string, mode *Mode) Decision {
	msg := normalize(message)

	for _, t := range p.triggers {
		if strings.Contains(msg, t.Match) {
			return Decision{Reply: t.Reply, Source: SourceTrigger, Match: t.Match}
		}
	}

	if p.modeCommand != "" && msg == p.modeCommand {
		*mode = mode.Toggle()
		reply := strings.ReplaceAll(p.replies.ModeSwitch, "%s", mode.String())
		return Decision{Reply: reply, Source: SourceMode, Match: mode.String()}
	}

	var corrected bool
	if !containsAny(msg, p.known) {
		suggestion, ok := ClosestMatch(msg, p.known, p.tolerance)
		if *mode == ModeStrict {
			if ok {
				return Decision{Reply: p.replies.Misspelled, Source: SourceMisspelled, Match: suggestion}
			}
			return Decision{Reply: p.replies.Help, Source: SourceHelp}
		}
		if ok {
			msg = suggestion
			corrected = true
		}
	}

	for _, r := range p.rules {
		for _, k := range r.Keywords {
			if strings.Contains(msg, k) {
				return Decision{Reply: r.Reply, Source: SourceRule, Match: k, Corrected: corrected}
			}
		}
	}

	return Decision{Reply: p.replies.Unknown, Source: SourceUnknown, Corrected: corrected}
}

// normalize composes, lower-cases and trims a message.
func normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.Und).String(s)
	return strings.TrimSpace(s)
}

func containsAny(msg string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
