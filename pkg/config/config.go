// Package config loads tldr's configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the user's config.toml
//  3. TLDR_<SECTION>__<KEY> environment variables
//  4. overrides passed in by the command line
//
// A [style.<kind>] table replaces the built-in style for that kind as a
// whole; unset attributes are not inherited from the default theme.
package config

import (
	"time"

	"github.com/arthur-debert/tldr/pkg/render"
)

// Config is the fully resolved configuration.
type Config struct {
	Display     Display                    `koanf:"display"`
	Updates     Updates                    `koanf:"updates"`
	Directories Directories                `koanf:"directories"`
	Style       map[string]render.StyleDef `koanf:"style"`

	// Path is the config file that was read, empty when none existed
	Path string `koanf:"-"`
}

// Display controls how pages are shown.
type Display struct {
	UsePager bool `koanf:"use_pager"`
	Compact  bool `koanf:"compact"`
}

// Updates controls cache refreshes.
type Updates struct {
	AutoUpdate              bool          `koanf:"auto_update"`
	AutoUpdateIntervalHours int           `koanf:"auto_update_interval_hours"`
	Timeout                 time.Duration `koanf:"timeout"`
}

// Directories holds user-provided locations.
type Directories struct {
	CustomPagesDir string `koanf:"custom_pages_dir"`
}

// AutoUpdateInterval returns the maximum cache age before an automatic update.
func (c *Config) AutoUpdateInterval() time.Duration {
	return time.Duration(c.Updates.AutoUpdateIntervalHours) * time.Hour
}

// StyleConfig returns the default theme with the user's style tables
// applied. enabled switches styling on or off as a whole.
func (c *Config) StyleConfig(enabled bool) render.StyleConfig {
	style := render.DefaultStyle().WithOverrides(c.Style)
	style.Enabled = enabled
	return style
}
