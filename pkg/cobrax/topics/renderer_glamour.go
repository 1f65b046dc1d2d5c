package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "auto" detects the terminal; any standard style name ("dark", "light", "notty") is used as is
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer returns a renderer for styled output, or for plain
// output when styled is false.
func NewGlamourRenderer(styled bool) *GlamourRenderer {
	style := "auto"
	if !styled {
		style = "notty"
	}
	return &GlamourRenderer{Style: style}
}

// Render converts markdown to terminal output. Anything that is not
// markdown, or fails to render, is returned unchanged.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
