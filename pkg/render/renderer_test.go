package render

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/arthur-debert/tldr/pkg/page"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tarPage = "# tar\n" +
	"\n" +
	"> Archiving utility.\n" +
	"> More information: <https://www.gnu.org/software/tar>.\n" +
	"\n" +
	"- Create an archive from files:\n" +
	"\n" +
	"`tar cf {{target.tar}} {{file1 file2}}`\n" +
	"\n" +
	"- Extract an archive:\n" +
	"\n" +
	"`tar xf {{source.tar}}`\n"

const tarPlain = "\n" +
	"  tar\n" +
	"\n" +
	"  Archiving utility.\n" +
	"  More information: <https://www.gnu.org/software/tar>.\n" +
	"\n" +
	"  Create an archive from files\n" +
	"      tar cf target.tar file1 file2\n" +
	"\n" +
	"  Extract an archive\n" +
	"      tar xf source.tar\n" +
	"\n"

var escapeSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func renderString(t *testing.T, src string, style StyleConfig, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, page.Tokens(strings.NewReader(src)), style, opts...))
	return buf.String()
}

func TestRenderPlainLayout(t *testing.T) {
	out := renderString(t, tarPage, PlainStyle())

	assert.Equal(t, tarPlain, out)
	assert.NotContains(t, out, "\x1b")
}

func TestRenderDisabledDefaultThemeHasNoEscapes(t *testing.T) {
	style := DefaultStyle()
	style.Enabled = false

	out := renderString(t, tarPage, style, WithColorProfile(termenv.TrueColor))
	assert.Equal(t, tarPlain, out)
}

func TestRenderStyledKeepsTextAndLayout(t *testing.T) {
	out := renderString(t, tarPage, DefaultStyle(), WithColorProfile(termenv.ANSI))

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, tarPlain, escapeSeq.ReplaceAllString(out, ""))
}

func TestPlaceholderStyledDifferentlyFromLiteral(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, DefaultStyle(), WithColorProfile(termenv.ANSI))

	literal := r.paint(KindExampleCode, "file")
	placeholder := r.paint(KindExampleVariable, "file")

	assert.NotEqual(t, literal, placeholder)
	assert.Equal(t, "file", escapeSeq.ReplaceAllString(placeholder, ""))
}

func TestRenderCompact(t *testing.T) {
	out := renderString(t, tarPage, PlainStyle(), WithCompact(true))

	assert.Equal(t, "  tar\n"+
		"  Archiving utility.\n"+
		"  More information: <https://www.gnu.org/software/tar>.\n"+
		"  Create an archive from files\n"+
		"      tar cf target.tar file1 file2\n"+
		"  Extract an archive\n"+
		"      tar xf source.tar\n", out)
}

func TestRenderEmptyInput(t *testing.T) {
	assert.Equal(t, "", renderString(t, "\n\n", PlainStyle()))
}

func TestRenderStrayLinesAsDescription(t *testing.T) {
	out := renderString(t, "# x\nstray line\n", PlainStyle())
	assert.Equal(t, "\n  x\n\n  stray line\n\n", out)
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("broken pipe")
}

func TestRendererErrorsAreSticky(t *testing.T) {
	w := &failingWriter{}
	r := NewRenderer(w, PlainStyle())

	require.EqualError(t, r.Write(page.Token{Kind: page.Title, Text: "ls"}), "broken pipe")
	require.EqualError(t, r.Write(page.Token{Kind: page.Description, Text: "List"}), "broken pipe")
	require.EqualError(t, r.Finish(), "broken pipe")
	assert.Equal(t, 1, w.calls)
}
