// Package render turns page tokens into terminal output.
//
// Rendering is streaming: every token is written as soon as it arrives. When
// styling is disabled the output has the same text and layout with no escape
// sequences at all.
package render

import (
	"io"
	"iter"
	"strings"

	"github.com/arthur-debert/tldr/pkg/page"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	textIndent = "  "
	codeIndent = "      "
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithCompact drops every blank separator line.
func WithCompact(compact bool) Option {
	return func(r *Renderer) {
		r.compact = compact
	}
}

// WithColorProfile forces the color profile used for styled output.
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = profile
	}
}

// Renderer writes page tokens to an output sink.
type Renderer struct {
	w       io.Writer
	style   StyleConfig
	compact bool
	profile termenv.Profile

	styles  map[StyleKind]lipgloss.Style
	started bool
	prev    page.TokenKind
	err     error
}

// NewRenderer returns a renderer writing to w with the given styles.
func NewRenderer(w io.Writer, style StyleConfig, opts ...Option) *Renderer {
	r := &Renderer{
		w:       w,
		style:   style,
		profile: termenv.ANSI,
	}
	for _, opt := range opts {
		opt(r)
	}

	if style.Enabled {
		lr := lipgloss.NewRenderer(w)
		lr.SetColorProfile(r.profile)
		r.styles = make(map[StyleKind]lipgloss.Style, len(style.Styles))
		for kind, def := range style.Styles {
			if !def.IsZero() {
				r.styles[kind] = buildStyle(lr, def)
			}
		}
	}

	return r
}

// Write renders a single token. Errors are sticky: after the first write
// failure every call returns it.
func (r *Renderer) Write(tok page.Token) error {
	if r.err != nil {
		return r.err
	}

	var b strings.Builder
	if r.needsSeparator(tok.Kind) {
		b.WriteString("\n")
	}

	switch tok.Kind {
	case page.Title:
		b.WriteString(textIndent)
		b.WriteString(r.paint(KindCommandName, tok.Text))
	case page.Description:
		b.WriteString(textIndent)
		b.WriteString(r.paint(KindDescription, tok.Text))
	case page.ExampleText:
		b.WriteString(textIndent)
		b.WriteString(r.paint(KindExampleText, tok.Text))
	case page.ExampleCode:
		b.WriteString(codeIndent)
		for _, span := range tok.Spans {
			kind := KindExampleCode
			if span.Kind == page.Placeholder {
				kind = KindExampleVariable
			}
			b.WriteString(r.paint(kind, span.Text))
		}
	}
	b.WriteString("\n")

	r.started = true
	r.prev = tok.Kind
	return r.write(b.String())
}

// Finish writes the closing blank line of a rendered page.
func (r *Renderer) Finish() error {
	if r.err != nil {
		return r.err
	}
	if !r.started || r.compact {
		return nil
	}
	return r.write("\n")
}

// Render writes every token of seq followed by the closing blank line.
func Render(w io.Writer, seq iter.Seq[page.Token], style StyleConfig, opts ...Option) error {
	r := NewRenderer(w, style, opts...)
	for tok := range seq {
		if err := r.Write(tok); err != nil {
			return err
		}
	}
	return r.Finish()
}

// needsSeparator reports whether a blank line goes before a token of kind.
// Description lines stay together and code follows its example text or
// previous code line directly.
func (r *Renderer) needsSeparator(kind page.TokenKind) bool {
	if r.compact {
		return false
	}
	if !r.started {
		return true
	}
	switch {
	case r.prev == page.Description && kind == page.Description:
		return false
	case r.prev == page.ExampleText && kind == page.ExampleCode:
		return false
	case r.prev == page.ExampleCode && kind == page.ExampleCode:
		return false
	}
	return true
}

func (r *Renderer) paint(kind StyleKind, text string) string {
	if !r.style.Enabled || text == "" {
		return text
	}
	style, ok := r.styles[kind]
	if !ok {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.w, s); err != nil {
		r.err = err
	}
	return r.err
}
