package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Display.UsePager)
	assert.False(t, cfg.Display.Compact)
	assert.False(t, cfg.Updates.AutoUpdate)
	assert.Equal(t, 720, cfg.Updates.AutoUpdateIntervalHours)
	assert.Equal(t, 30*24*time.Hour, cfg.AutoUpdateInterval())
	assert.Equal(t, 60*time.Second, cfg.Updates.Timeout)
	assert.Empty(t, cfg.Directories.CustomPagesDir)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, render.DefaultStyle(), cfg.StyleConfig(true))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, 720, cfg.Updates.AutoUpdateIntervalHours)
}

func TestLoadUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
[display]
use_pager = true

[updates]
auto_update = true
auto_update_interval_hours = 24

[directories]
custom_pages_dir = "~/tldr-pages"

[style.example_variable]
foreground = "red"
bold = true
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.True(t, cfg.Display.UsePager)
	assert.False(t, cfg.Display.Compact, "unset keys keep defaults")
	assert.True(t, cfg.Updates.AutoUpdate)
	assert.Equal(t, 24*time.Hour, cfg.AutoUpdateInterval())
	assert.Equal(t, filepath.Join(home, "tldr-pages"), cfg.Directories.CustomPagesDir)

	style := cfg.StyleConfig(true)
	assert.Equal(t, render.StyleDef{Foreground: "red", Bold: true}, style.Def(render.KindExampleVariable),
		"style table replaces the default entry")
	assert.Equal(t, render.StyleDef{Foreground: "cyan"}, style.Def(render.KindExampleCode))
}

func TestLoadEnvAndOverrides(t *testing.T) {
	path := writeConfig(t, "[display]\ncompact = false\n")
	t.Setenv("TLDR_DISPLAY__COMPACT", "true")
	t.Setenv("TLDR_UPDATES__TIMEOUT", "5s")
	t.Setenv("TLDR_CACHE_DIR", "/not/a/config/key")

	cfg, err := Load(path, map[string]any{"display.use_pager": true})
	require.NoError(t, err)

	assert.True(t, cfg.Display.Compact, "env beats file")
	assert.Equal(t, 5*time.Second, cfg.Updates.Timeout)
	assert.True(t, cfg.Display.UsePager, "override applied")
}

func TestLoadOverrideBeatsEnv(t *testing.T) {
	t.Setenv("TLDR_DISPLAY__USE_PAGER", "true")

	cfg, err := Load("", map[string]any{"display.use_pager": false})
	require.NoError(t, err)
	assert.False(t, cfg.Display.UsePager)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[display\nuse_pager = yes"},
		{"unknown color", "[style.example_code]\nforeground = \"chartreuse\"\n"},
		{"unknown style kind", "[style.headline]\nbold = true\n"},
		{"placeholder styled like code", "[style.example_code]\nforeground = \"blue\"\n" +
			"[style.example_variable]\nforeground = \"blue\"\n"},
		{"bad duration", "[updates]\ntimeout = \"soon\"\n"},
		{"negative interval", "[updates]\nauto_update_interval_hours = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfig), "got %v", err)
		})
	}

	t.Run("directory as config path", func(t *testing.T) {
		_, err := Load(t.TempDir(), nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "display.use_pager", envKey("TLDR_DISPLAY__USE_PAGER"))
	assert.Equal(t, "updates.auto_update_interval_hours", envKey("TLDR_UPDATES__AUTO_UPDATE_INTERVAL_HOURS"))
	assert.Equal(t, "", envKey("TLDR_CACHE_DIR"))
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, Seed(path))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 720, cfg.Updates.AutoUpdateIntervalHours)
	assert.Equal(t, 60*time.Second, cfg.Updates.Timeout)

	err = Seed(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestDefaultContent(t *testing.T) {
	content, err := DefaultContent()
	require.NoError(t, err)

	assert.Contains(t, string(content), "[display]")
	assert.Contains(t, string(content), "auto_update_interval_hours = 720")
	assert.Contains(t, string(content), "timeout = ")
	assert.Contains(t, string(content), "60s")
}
