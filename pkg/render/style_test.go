package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyle(t *testing.T) {
	style := DefaultStyle()

	assert.True(t, style.Enabled)
	assert.Equal(t, StyleDef{Foreground: "cyan"}, style.Def(KindCommandName))
	assert.Equal(t, StyleDef{Foreground: "green"}, style.Def(KindExampleText))
	assert.Equal(t, StyleDef{Foreground: "cyan"}, style.Def(KindExampleCode))
	assert.Equal(t, StyleDef{Foreground: "cyan", Underline: true}, style.Def(KindExampleVariable))
	assert.True(t, style.Def(KindDescription).IsZero())
	assert.NoError(t, style.Validate())
}

func TestWithOverridesReplacesWholeEntry(t *testing.T) {
	style := DefaultStyle().WithOverrides(map[string]StyleDef{
		"example_variable": {Foreground: "red", Bold: true},
	})

	assert.Equal(t, StyleDef{Foreground: "red", Bold: true}, style.Def(KindExampleVariable))
	assert.Equal(t, StyleDef{Foreground: "cyan"}, style.Def(KindExampleCode), "other kinds untouched")
	assert.True(t, DefaultStyle().Def(KindExampleVariable).Underline, "default style untouched")
}

func TestValidate(t *testing.T) {
	bad := DefaultStyle().WithOverrides(map[string]StyleDef{"example_code": {Foreground: "chartreuse"}})
	require.Error(t, bad.Validate())

	unknown := DefaultStyle().WithOverrides(map[string]StyleDef{"headline": {}})
	require.ErrorContains(t, unknown.Validate(), "headline")

	same := DefaultStyle().WithOverrides(map[string]StyleDef{
		"example_code":     {Foreground: "blue", Bold: true},
		"example_variable": {Foreground: "blue", Bold: true},
	})
	require.ErrorContains(t, same.Validate(), "example_variable")

	unstyled := DefaultStyle().WithOverrides(map[string]StyleDef{
		"example_code":     {},
		"example_variable": {},
	})
	require.Error(t, unstyled.Validate())

	underlined := DefaultStyle().WithOverrides(map[string]StyleDef{
		"example_code":     {Foreground: "blue"},
		"example_variable": {Foreground: "blue", Underline: true},
	})
	assert.NoError(t, underlined.Validate())

	assert.NoError(t, PlainStyle().Validate())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    lipgloss.Color
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "red", want: "1"},
		{in: "Cyan", want: "6"},
		{in: "purple", want: "5"},
		{in: "bright_blue", want: "12"},
		{in: "bright-white", want: "15"},
		{in: "208", want: "208"},
		{in: "#FF8800", want: "#ff8800"},
		{in: "#abc", want: "#abc"},
		{in: "256", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "mauve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
