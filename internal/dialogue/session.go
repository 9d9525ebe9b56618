package dialogue

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/vovakirdan/niftybird/internal/config"
)

// Sender identifies who wrote a transcript entry.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

// String returns the label shown next to a chat bubble.
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Bot"
	default:
		return "Unknown"
	}
}

// Entry is one chat bubble. Text is always the full content; Shown counts
// the runes revealed so far.
type Entry struct {
	Sender Sender
	Text   string
	Shown  int
	gen    uint64
}

// Visible returns the revealed prefix of the entry.
func (e Entry) Visible() string {
	if e.Shown >= utf8.RuneCountInString(e.Text) {
		return e.Text
	}
	return string([]rune(e.Text)[:e.Shown])
}

// Revealing reports whether part of the entry is still hidden.
func (e Entry) Revealing() bool {
	return e.Shown < utf8.RuneCountInString(e.Text)
}

// Pending is a computed bot reply waiting for its typing delay.
type Pending struct {
	Text     string
	Delay    time.Duration
	Decision Decision // How the policy chose Text
}

// Session is one conversation: its mode and its append-only transcript.
// It is not safe for concurrent use; drive it from a single event loop.
type Session struct {
	policy   *Policy
	settings config.ChatSettings
	mode     Mode
	entries  []Entry
	gen      uint64
	onAppend func(Entry)
}

// NewSession starts an empty conversation in the policy's default mode.
func NewSession(policy *Policy, settings config.ChatSettings) *Session {
	return &Session{
		policy:   policy,
		settings: settings,
		mode:     policy.DefaultMode(),
	}
}

// OnAppend registers fn to observe every entry as it is appended, with
// its full text.
func (s *Session) OnAppend(fn func(Entry)) {
	s.onAppend = fn
}

// Mode returns the current reply mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// RevealInterval returns the delay between revealed characters.
func (s *Session) RevealInterval() time.Duration {
	return s.settings.RevealInterval
}

// Len returns the number of transcript entries.
func (s *Session) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the transcript, oldest first.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the transcript entry at index i.
func (s *Session) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Submit records the user's message and computes the reply.
// Blank input is ignored and reported with ok == false. User text is
// HTML-escaped so it can never inject markup; bot replies keep theirs.
func (s *Session) Submit(text string) (p Pending, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, false
	}

	escaped := html.EscapeString(text)
	s.append(Entry{
		Sender: SenderUser,
		Text:   escaped,
		Shown:  utf8.RuneCountInString(escaped),
	})

	d := s.policy.Decide(text, &s.mode)
	return Pending{Text: d.Reply, Delay: s.settings.ReplyDelay, Decision: d}, true
}

// Deliver appends a pending reply as a bot entry and starts its reveal.
// It returns the entry index and the reveal generation to pass to Advance.
func (s *Session) Deliver(p Pending) (int, uint64) {
	s.gen++
	s.append(Entry{Sender: SenderBot, Text: p.Text, gen: s.gen})
	return len(s.entries) - 1, s.gen
}

// Greet posts the opening bot greeting.
func (s *Session) Greet() (int, uint64) {
	return s.Deliver(Pending{Text: s.policy.Greeting()})
}

// Advance reveals one more rune of entry i. It reports whether another
// step is due. A stale generation leaves the entry untouched.
func (s *Session) Advance(i int, gen uint64) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	e := &s.entries[i]
	if e.gen != gen || !e.Revealing() {
		return false
	}
	e.Shown++
	return e.Revealing()
}

// Retype restarts the reveal of entry i from an empty bubble. Any reveal
// already running for it becomes stale; other entries are unaffected.
func (s *Session) Retype(i int) (uint64, bool) {
	if i < 0 || i >= len(s.entries) || s.entries[i].Sender != SenderBot {
		return 0, false
	}
	s.gen++
	s.entries[i].gen = s.gen
	s.entries[i].Shown = 0
	return s.gen, true
}

// Finish reveals every entry in full, which stops all running reveals.
func (s *Session) Finish() {
	for i := range s.entries {
		s.entries[i].Shown = utf8.RuneCountInString(s.entries[i].Text)
	}
}

// Transcript renders the conversation as plain text, one line per entry.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(e.Sender.String())
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(PlainText(e.Text), "\n", " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Session) append(e Entry) {
	s.entries = append(s.entries, e)
	if s.onAppend != nil {
		s.onAppend(e)
	}
}
