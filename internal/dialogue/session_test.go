package dialogue

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/niftybird/internal/config"
)

func newTestSession() (*Session, config.ChatConfig) {
	cfg := config.DefaultChatConfig()
	return NewSession(NewPolicy(cfg), cfg.Settings), cfg
}

// deliverAll delivers p and runs its reveal to the end, returning the
// number of Advance calls that made progress.
func deliverAll(s *Session, p Pending) (int, int) {
	i, gen := s.Deliver(p)
	steps := 0
	for {
		steps++
		if !s.Advance(i, gen) {
			break
		}
	}
	return i, steps
}

func TestSessionIgnoresBlankInput(t *testing.T) {
	s, _ := newTestSession()

	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Submit(in); ok {
			t.Errorf("Submit(%q) should be ignored", in)
		}
	}
	if s.Len() != 0 {
		t.Errorf("transcript has %d entries, expected none", s.Len())
	}
}

func TestSessionConversation(t *testing.T) {
	s, cfg := newTestSession()

	p, ok := s.Submit("hello")
	if !ok {
		t.Fatal("Submit(hello) ignored")
	}
	if p.Text != cfg.Rules[0].Reply {
		t.Errorf("reply = %q, expected the greeting rule", p.Text)
	}
	if p.Delay != 200*time.Millisecond {
		t.Errorf("delay = %v, expected 200ms", p.Delay)
	}
	if s.Len() != 1 {
		t.Fatalf("the reply must not be appended before delivery, len = %d", s.Len())
	}
	deliverAll(s, p)

	p, _ = s.Submit("/mode")
	if !strings.Contains(p.Text, "SMART") || s.Mode() != ModeSmart {
		t.Errorf("first /mode = %q (mode %v), expected SMART", p.Text, s.Mode())
	}
	deliverAll(s, p)

	p, _ = s.Submit("/mode")
	if !strings.Contains(p.Text, "STRICT") || s.Mode() != ModeStrict {
		t.Errorf("second /mode = %q (mode %v), expected STRICT", p.Text, s.Mode())
	}
	deliverAll(s, p)

	entries := s.Entries()
	if len(entries) != 6 {
		t.Fatalf("transcript has %d entries, expected 6", len(entries))
	}
	for i, e := range entries {
		want := SenderUser
		if i%2 == 1 {
			want = SenderBot
		}
		if e.Sender != want {
			t.Errorf("entry %d sender = %v, expected %v", i, e.Sender, want)
		}
		if e.Revealing() {
			t.Errorf("entry %d still revealing", i)
		}
	}
}

func TestSessionEscapesUserText(t *testing.T) {
	s, _ := newTestSession()

	s.Submit(`<img src=x onerror="alert(1)">`)
	e, _ := s.Entry(0)
	if strings.Contains(e.Text, "<") || strings.Contains(e.Text, `"`) {
		t.Errorf("user text not escaped: %q", e.Text)
	}
	if !strings.HasPrefix(e.Text, "&lt;img") {
		t.Errorf("user text = %q, expected escaped markup", e.Text)
	}
	if e.Revealing() {
		t.Error("user entries are shown in full at once")
	}
}

func TestSessionRevealSteps(t *testing.T) {
	s, _ := newTestSession()

	text := "Tap <b>Space</b> 🎮"
	i, gen := s.Deliver(Pending{Text: text})

	e, _ := s.Entry(i)
	if e.Visible() != "" || !e.Revealing() {
		t.Fatalf("fresh bubble shows %q, expected empty", e.Visible())
	}

	n := utf8.RuneCountInString(text)
	for step := 1; step <= n; step++ {
		more := s.Advance(i, gen)
		e, _ = s.Entry(i)
		want := string([]rune(text)[:step])
		if e.Visible() != want {
			t.Fatalf("step %d shows %q, expected %q", step, e.Visible(), want)
		}
		if more != (step < n) {
			t.Fatalf("step %d reported more = %v", step, more)
		}
	}

	if s.Advance(i, gen) {
		t.Error("Advance past the end should report false")
	}
	if e, _ := s.Entry(i); e.Visible() != text {
		t.Errorf("final text = %q, expected %q", e.Visible(), text)
	}
}

func TestSessionRetypeInvalidatesOldReveal(t *testing.T) {
	s, _ := newTestSession()

	i, oldGen := s.Deliver(Pending{Text: "first bubble"})
	j, otherGen := s.Deliver(Pending{Text: "second bubble"})
	s.Advance(i, oldGen)
	s.Advance(i, oldGen)

	newGen, ok := s.Retype(i)
	if !ok {
		t.Fatal("Retype() on a bot entry failed")
	}
	if e, _ := s.Entry(i); e.Shown != 0 {
		t.Errorf("retyped bubble shows %d runes, expected 0", e.Shown)
	}

	if s.Advance(i, oldGen) {
		t.Error("the superseded reveal should be a no-op")
	}
	if e, _ := s.Entry(i); e.Shown != 0 {
		t.Errorf("stale Advance revealed %d runes", e.Shown)
	}

	if !s.Advance(j, otherGen) {
		t.Error("retyping one bubble must not stop another")
	}
	if !s.Advance(i, newGen) {
		t.Error("the new reveal should progress")
	}
}

func TestSessionRetypeRejectsUserEntries(t *testing.T) {
	s, _ := newTestSession()
	s.Submit("hello")

	if _, ok := s.Retype(0); ok {
		t.Error("user entries are never retyped")
	}
	if _, ok := s.Retype(5); ok {
		t.Error("out-of-range entries cannot be retyped")
	}
}

func TestSessionGreetAndTranscript(t *testing.T) {
	s, _ := newTestSession()

	var seen []Entry
	s.OnAppend(func(e Entry) { seen = append(seen, e) })

	i, _ := s.Greet()
	s.Submit("how can i contact help")
	s.Finish()

	if e, _ := s.Entry(i); !strings.HasPrefix(e.Text, "Hi! Try saying <b>Hello</b>") {
		t.Errorf("greeting = %q", e.Text)
	}
	if len(seen) != 2 {
		t.Fatalf("observer saw %d entries, expected 2", len(seen))
	}
	if seen[0].Text == "" || seen[0].Sender != SenderBot {
		t.Errorf("observer should receive the full greeting, got %+v", seen[0])
	}

	want := "Bot: Hi! Try saying Hello 😊 (try use correct spelling) \nYou: how can i contact help\n"
	if got := s.Transcript(); got != want {
		t.Errorf("Transcript() = %q, expected %q", got, want)
	}
}

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{"plain", "hello", []Span{{Text: "hello"}}},
		{"bold", "Tap or press <b>Space</b> now", []Span{
			{Text: "Tap or press "},
			{Text: "Space", Bold: true},
			{Text: " now"},
		}},
		{"line break", "a<br>b", []Span{{Text: "a"}, {Break: true}, {Text: "b"}}},
		{"partial tag hidden", "Tap <b", []Span{{Text: "Tap "}}},
		{"partial bold", "<b>Spa", []Span{{Text: "Spa", Bold: true}}},
		{"escaped text", "&lt;script&gt;", []Span{{Text: "<script>"}}},
		{"unknown tags dropped", "<i>x</i>", []Span{{Text: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMarkup(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseMarkup(%q) = %+v, expected %+v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %+v, expected %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	cfg := config.DefaultChatConfig()
	got := PlainText(cfg.Replies.Help)
	if strings.Contains(got, "<") {
		t.Errorf("PlainText() kept markup: %q", got)
	}
	if !strings.Contains(got, "\nHow can I contact help\n") {
		t.Errorf("PlainText() = %q, expected line breaks around the examples", got)
	}
}
