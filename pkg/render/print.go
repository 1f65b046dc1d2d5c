package render

import (
	"io"
	"strings"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/logging"
	"github.com/arthur-debert/tldr/pkg/page"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
)

// Page is anything that names the files making up one rendered page.
type Page interface {
	Paths() []string
}

// PrintOptions controls PrintPage.
type PrintOptions struct {
	// Raw copies the page files verbatim instead of rendering them
	Raw     bool
	Style   StyleConfig
	Compact bool
	// Profile is the color profile used when Style is enabled; the zero
	// value is termenv.TrueColor
	Profile termenv.Profile
}

// PrintPage writes the files of p to w. The files are read in order and
// rendered as a single token stream, so a patch file continues the page it
// follows.
func PrintPage(w io.Writer, fs afero.Fs, p Page, opts PrintOptions) error {
	logger := logging.GetLogger("render")
	paths := p.Paths()

	files := make([]afero.File, 0, len(paths))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, path := range paths {
		f, err := fs.Open(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrCache, "could not open page file %s", path).
				WithDetail("path", path)
		}
		files = append(files, f)
	}
	logger.Debug().Strs("paths", paths).Bool("raw", opts.Raw).Msg("Printing page")

	if opts.Raw {
		tw := &tailWriter{w: w}
		for i, f := range files {
			if _, err := io.Copy(tw, f); err != nil {
				return errors.Wrapf(err, errors.ErrCache, "could not copy page file %s", paths[i])
			}
			if err := tw.endLine(); err != nil {
				return errors.Wrapf(err, errors.ErrCache, "could not copy page file %s", paths[i])
			}
		}
		return nil
	}

	readers := make([]io.Reader, 0, 2*len(files))
	for i, f := range files {
		if i > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}
		readers = append(readers, f)
	}

	tok := page.NewTokenizer(io.MultiReader(readers...))
	r := NewRenderer(w, opts.Style, WithCompact(opts.Compact), WithColorProfile(opts.Profile))
	for {
		next, ok := tok.Next()
		if !ok {
			break
		}
		if err := r.Write(next); err != nil {
			return err
		}
	}
	if err := tok.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not read page")
	}
	return r.Finish()
}

// tailWriter tracks whether the output ends mid-line so raw output can end
// every file on a line boundary.
type tailWriter struct {
	w       io.Writer
	partial bool
}

func (t *tailWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.partial = p[n-1] != '\n'
	}
	return n, err
}

// endLine terminates a partial last line.
func (t *tailWriter) endLine() error {
	if !t.partial {
		return nil
	}
	_, err := t.Write([]byte{'\n'})
	return err
}
