package typewriter

import (
	"strings"
	"unicode/utf8"
)

type token struct {
	text    string
	tag     bool
	name    string
	closing bool
}

// Markup is an HTML fragment split into tags and visible runes. Tags are
// atomic: typing only ever advances over visible runes.
type Markup struct {
	tokens  []token
	visible int
}

// ParseMarkup tokenizes s. An unterminated tag is treated as text.
func ParseMarkup(s string) Markup {
	var m Markup
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 0 {
				m.tokens = append(m.tokens, tagToken(s[:end+1]))
				s = s[end+1:]
				continue
			}
		}
		_, n := utf8.DecodeRuneInString(s)
		m.tokens = append(m.tokens, token{text: s[:n]})
		m.visible++
		s = s[n:]
	}
	return m
}

func tagToken(raw string) token {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	t := token{text: raw, tag: true}
	if strings.HasPrefix(inner, "/") {
		t.closing = true
		inner = inner[1:]
	}
	if strings.HasSuffix(inner, "/") {
		// Self-closing tags never need a closing pair.
		return token{text: raw, tag: true, closing: true}
	}
	if i := strings.IndexAny(inner, " \t\n"); i >= 0 {
		inner = inner[:i]
	}
	t.name = strings.ToLower(inner)
	return t
}

// Len is the number of visible runes.
func (m Markup) Len() int { return m.visible }

// Prefix returns the fragment cut after n visible runes, with every tag
// opened so far closed again.
func (m Markup) Prefix(n int) string {
	var (
		b     strings.Builder
		open  []string
		count int
	)
	for _, tok := range m.tokens {
		if !tok.tag {
			if count == n {
				break
			}
			b.WriteString(tok.text)
			count++
			continue
		}
		if count == n && !tok.closing {
			break
		}
		b.WriteString(tok.text)
		switch {
		case tok.name == "":
		case tok.closing:
			if k := len(open) - 1; k >= 0 && open[k] == tok.name {
				open = open[:k]
			}
		default:
			open = append(open, tok.name)
		}
	}
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}
