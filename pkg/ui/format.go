// Package ui decides whether output gets terminal styling.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode is the user's --color choice.
type ColorMode int

const (
	// ColorAuto styles output only when writing to a capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways styles output even through pipes
	ColorAlways
	// ColorNever disables styling
	ColorNever
)

// String returns the flag value for the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ColorModeNames lists the accepted --color values.
func ColorModeNames() []string {
	return []string{"auto", "always", "never"}
}

// ParseColorMode parses a --color value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (valid: %s)", s, strings.Join(ColorModeNames(), ", "))
	}
}

// ShouldStyle reports whether output written to f should be styled.
func ShouldStyle(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}

	if !IsTerminal(f) {
		return false
	}

	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Profile returns the color profile for styled output to f. Terminals that
// report no color support, and anything that is not a terminal, get basic
// ANSI colors so a forced --color always still shows styling.
func Profile(f *os.File) termenv.Profile {
	if !IsTerminal(f) {
		return termenv.ANSI
	}
	profile := termenv.NewOutput(f).ColorProfile()
	if profile == termenv.Ascii {
		return termenv.ANSI
	}
	return profile
}
