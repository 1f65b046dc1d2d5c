package tldr

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/tldr/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !ui.IsTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

// FormatError renders err for the terminal, or as plain "Error: ..." text.
func FormatError(err error, styled bool) string {
	if !styled {
		return "Error: " + err.Error()
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// statusPrinter writes notices and progress to stderr.
type statusPrinter struct {
	w      io.Writer
	styled bool
	quiet  bool
}

func newStatusPrinter(w io.Writer, styled, quiet bool) *statusPrinter {
	return &statusPrinter{w: w, styled: styled, quiet: quiet}
}

// warn prints msg in yellow when styled. Warnings ignore quiet mode.
func (s *statusPrinter) warn(msg string) {
	if s.styled {
		msg = pterm.NewStyle(pterm.FgYellow).Sprint(msg)
	}
	fmt.Fprintln(s.w, msg)
}

func (s *statusPrinter) interactive() bool {
	f, ok := s.w.(*os.File)
	return ok && ui.IsTerminal(f)
}

// spin runs fn behind a spinner when stderr is an interactive terminal.
func (s *statusPrinter) spin(text string, fn func() error) error {
	if s.quiet || !s.styled || !s.interactive() {
		return fn()
	}

	spinner, err := pterm.DefaultSpinner.WithWriter(s.w).WithRemoveWhenDone(true).Start(text)
	if err != nil {
		return fn()
	}
	err = fn()
	_ = spinner.Stop()
	return err
}
