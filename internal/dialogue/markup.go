package dialogue

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Span is a run of reply text with uniform styling.
type Span struct {
	Text  string
	Bold  bool
	Break bool // A line break; Text is empty
}

// ParseMarkup splits reply markup into styled spans. Only <b>, <strong>
// and <br> carry meaning; other tags are dropped and entities decoded.
// A tag cut off by a partial reveal is hidden until it is complete.
func ParseMarkup(s string) []Span {
	s = trimOpenTag(s)

	var spans []Span
	bold := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return spans
		case html.TextToken:
			if text := string(z.Text()); text != "" {
				spans = append(spans, Span{Text: text, Bold: bold > 0})
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Br:
				spans = append(spans, Span{Break: true})
			case atom.B, atom.Strong:
				if tok.Type == html.StartTagToken {
					bold++
				}
			}
		case html.EndTagToken:
			tok := z.Token()
			if (tok.DataAtom == atom.B || tok.DataAtom == atom.Strong) && bold > 0 {
				bold--
			}
		}
	}
}

// PlainText renders markup as plain text with line breaks.
func PlainText(s string) string {
	var b strings.Builder
	for _, span := range ParseMarkup(s) {
		if span.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}

// trimOpenTag drops a trailing '<' that has no closing '>'.
func trimOpenTag(s string) string {
	open := strings.LastIndexByte(s, '<')
	if open >= 0 && strings.IndexByte(s[open:], '>') < 0 {
		return s[:open]
	}
	return s
}
