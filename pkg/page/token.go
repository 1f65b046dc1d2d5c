// Package page lexes tldr pages into a stream of semantic tokens.
//
// The page dialect is line oriented and has four meaningful line kinds:
//
//	# tar                          -> Title
//	> Archiving utility.           -> Description
//	- Create an archive:           -> ExampleText
//	`tar cf {{target.tar}} {{file}}` -> ExampleCode
//
// Blank lines separate blocks and never produce tokens. Anything else is
// passed through as Description so no content gets lost on malformed input.
package page

import "strings"

// TokenKind tags the variant carried by a Token.
type TokenKind int

const (
	Title TokenKind = iota
	Description
	ExampleText
	ExampleCode
)

func (k TokenKind) String() string {
	switch k {
	case Title:
		return "title"
	case Description:
		return "description"
	case ExampleText:
		return "example_text"
	case ExampleCode:
		return "example_code"
	default:
		return "unknown"
	}
}

// SpanKind tags the variant carried by a CodeSpan.
type SpanKind int

const (
	// Literal text is typed as shown
	Literal SpanKind = iota
	// Placeholder text must be substituted by the user
	Placeholder
)

// CodeSpan is one piece of an example command line.
type CodeSpan struct {
	Kind SpanKind
	Text string
}

// Token is a single lexed page line. Spans is only set for ExampleCode.
type Token struct {
	Kind  TokenKind
	Text  string
	Spans []CodeSpan
}

// Code joins the spans back into the command line without the placeholder
// delimiters.
func (t Token) Code() string {
	var b strings.Builder
	for _, span := range t.Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}
