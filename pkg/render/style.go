package render

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var defaultTheme []byte

// StyleKind names one of the styleable parts of a page.
type StyleKind string

const (
	KindDescription     StyleKind = "description"
	KindCommandName     StyleKind = "command_name"
	KindExampleText     StyleKind = "example_text"
	KindExampleCode     StyleKind = "example_code"
	KindExampleVariable StyleKind = "example_variable"
)

// Kinds lists every style kind in display order.
func Kinds() []StyleKind {
	return []StyleKind{KindDescription, KindCommandName, KindExampleText, KindExampleCode, KindExampleVariable}
}

// StyleDef describes how one kind of page text is drawn.
type StyleDef struct {
	Foreground string `yaml:"foreground,omitempty" koanf:"foreground" toml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" koanf:"background" toml:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty" koanf:"bold" toml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty" koanf:"italic" toml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty" koanf:"underline" toml:"underline,omitempty"`
}

// IsZero reports whether the definition applies no styling at all.
func (d StyleDef) IsZero() bool {
	return d == StyleDef{}
}

// StyleConfig maps every style kind to its definition. With Enabled false
// the renderer emits plain text.
type StyleConfig struct {
	Enabled bool
	Styles  map[StyleKind]StyleDef
}

type theme struct {
	Styles map[StyleKind]StyleDef `yaml:"styles"`
}

// DefaultStyle returns the built-in theme with styling enabled.
func DefaultStyle() StyleConfig {
	var t theme
	if err := yaml.Unmarshal(defaultTheme, &t); err != nil {
		panic(fmt.Sprintf("failed to parse embedded theme: %v", err))
	}
	if t.Styles == nil {
		t.Styles = make(map[StyleKind]StyleDef)
	}
	return StyleConfig{Enabled: true, Styles: t.Styles}
}

// PlainStyle returns a configuration that disables all styling.
func PlainStyle() StyleConfig {
	return StyleConfig{Enabled: false, Styles: map[StyleKind]StyleDef{}}
}

// Def returns the definition for kind, or the zero definition.
func (c StyleConfig) Def(kind StyleKind) StyleDef {
	return c.Styles[kind]
}

// WithOverrides returns a copy of c where every kind present in overrides
// replaces the existing definition as a whole.
func (c StyleConfig) WithOverrides(overrides map[string]StyleDef) StyleConfig {
	merged := make(map[StyleKind]StyleDef, len(c.Styles)+len(overrides))
	for kind, def := range c.Styles {
		merged[kind] = def
	}
	for name, def := range overrides {
		merged[StyleKind(name)] = def
	}
	return StyleConfig{Enabled: c.Enabled, Styles: merged}
}

// Validate checks that every kind is known and every color parses. An
// enabled configuration must also style placeholders differently from the
// code around them.
func (c StyleConfig) Validate() error {
	known := make(map[StyleKind]bool)
	for _, kind := range Kinds() {
		known[kind] = true
	}
	for kind, def := range c.Styles {
		if !known[kind] {
			return fmt.Errorf("unknown style %q", kind)
		}
		if _, err := ParseColor(def.Foreground); err != nil {
			return fmt.Errorf("style %s: foreground: %w", kind, err)
		}
		if _, err := ParseColor(def.Background); err != nil {
			return fmt.Errorf("style %s: background: %w", kind, err)
		}
	}
	if c.Enabled && c.Def(KindExampleVariable) == c.Def(KindExampleCode) {
		return fmt.Errorf("style %s must differ from %s", KindExampleVariable, KindExampleCode)
	}
	return nil
}

var namedColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"purple":  5,
	"cyan":    6,
	"white":   7,
}

// ParseColor converts a color name, palette number or hex value into a
// lipgloss color. The empty string yields an empty color.
func ParseColor(value string) (lipgloss.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", nil
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) != 6 && len(hex) != 3 {
			return "", fmt.Errorf("invalid hex color %q", value)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", fmt.Errorf("invalid hex color %q", value)
		}
		return lipgloss.Color(v), nil
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("palette color %d out of range 0-255", n)
		}
		return lipgloss.Color(v), nil
	}

	name := strings.ReplaceAll(v, "-", "_")
	bright := strings.HasPrefix(name, "bright_")
	if n, ok := namedColors[strings.TrimPrefix(name, "bright_")]; ok {
		if bright {
			n += 8
		}
		return lipgloss.Color(strconv.Itoa(n)), nil
	}

	return "", fmt.Errorf("unknown color %q", value)
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(r *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	// Invalid colors are rejected by Validate; here they are skipped
	if color, err := ParseColor(def.Foreground); err == nil && color != "" {
		style = style.Foreground(color)
	}
	if color, err := ParseColor(def.Background); err == nil && color != "" {
		style = style.Background(color)
	}

	return style
}
