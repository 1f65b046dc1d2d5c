package page

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

const (
	titleMarker       = "#"
	descriptionMarker = ">"
	bulletMarker      = "-"
	codeMarker        = "`"

	placeholderOpen  = "{{"
	placeholderClose = "}}"

	// maxLineSize bounds a single page line
	maxLineSize = 1 << 20
)

// Tokenizer pulls tokens from a page one line at a time. It is single use:
// once Next reports false the tokenizer is exhausted.
type Tokenizer struct {
	scanner *bufio.Scanner
	done    bool
}

// NewTokenizer returns a tokenizer reading page source from r.
func NewTokenizer(r io.Reader) *Tokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Tokenizer{scanner: scanner}
}

// Next returns the next token, or false at end of input or on a read error.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}
	for t.scanner.Scan() {
		if tok, ok := parseLine(t.scanner.Text()); ok {
			return tok, true
		}
	}
	t.done = true
	return Token{}, false
}

// Err returns the read error that stopped the tokenizer, if any.
func (t *Tokenizer) Err() error {
	return t.scanner.Err()
}

// Tokens returns the tokens of r as a pull-driven sequence. Read errors end
// the sequence early; use a Tokenizer directly to observe them.
func Tokens(r io.Reader) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		tok := NewTokenizer(r)
		for {
			next, ok := tok.Next()
			if !ok || !yield(next) {
				return
			}
		}
	}
}

func parseLine(raw string) (Token, bool) {
	line := strings.TrimRight(raw, "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Token{}, false
	}

	switch {
	case strings.HasPrefix(trimmed, titleMarker):
		return Token{Kind: Title, Text: strings.TrimSpace(strings.TrimLeft(trimmed, titleMarker))}, true

	case strings.HasPrefix(trimmed, descriptionMarker):
		return Token{Kind: Description, Text: strings.TrimSpace(trimmed[len(descriptionMarker):])}, true

	case strings.HasPrefix(trimmed, bulletMarker):
		text := strings.TrimSpace(trimmed[len(bulletMarker):])
		text = strings.TrimSpace(strings.TrimSuffix(text, ":"))
		return Token{Kind: ExampleText, Text: text}, true

	case len(trimmed) >= 2 && strings.HasPrefix(trimmed, codeMarker) && strings.HasSuffix(trimmed, codeMarker):
		code := trimmed[len(codeMarker) : len(trimmed)-len(codeMarker)]
		return Token{Kind: ExampleCode, Text: code, Spans: ParseSpans(code)}, true

	default:
		return Token{Kind: Description, Text: trimmed}, true
	}
}

// ParseSpans splits an example command line into literal and placeholder
// spans. A "{{" without a closing "}}" is kept as literal text. Empty spans
// are never produced and adjacent literals are merged.
func ParseSpans(code string) []CodeSpan {
	var (
		spans   []CodeSpan
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, CodeSpan{Kind: Literal, Text: literal.String()})
			literal.Reset()
		}
	}

	rest := code
	for rest != "" {
		open := strings.Index(rest, placeholderOpen)
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		end := strings.Index(rest[open+len(placeholderOpen):], placeholderClose)
		if end < 0 {
			literal.WriteString(rest)
			break
		}

		literal.WriteString(rest[:open])
		name := rest[open+len(placeholderOpen) : open+len(placeholderOpen)+end]
		if name != "" {
			flush()
			spans = append(spans, CodeSpan{Kind: Placeholder, Text: name})
		}
		rest = rest[open+len(placeholderOpen)+end+len(placeholderClose):]
	}
	flush()

	return spans
}
