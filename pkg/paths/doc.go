// Package paths resolves the directories tldr reads from and writes to.
//
// It follows the XDG Base Directory specification through adrg/xdg and
// lets two environment variables move the directories somewhere else:
//
//   - TLDR_CACHE_DIR: page cache (default: $XDG_CACHE_HOME/tldr)
//   - TLDR_CONFIG_DIR: configuration (default: $XDG_CONFIG_HOME/tldr)
//
// An override must name an existing directory. Every resolver also reports
// where the value came from so `tldr --show-paths` can print it.
package paths
