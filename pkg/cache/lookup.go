package cache

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tldr/pkg/filesystem"
	"github.com/arthur-debert/tldr/pkg/languages"
)

const (
	pageExt  = ".md"
	patchExt = ".patch.md"
)

// validPageName reports whether command names a single file inside a
// platform directory.
func validPageName(command string) bool {
	return command != "" &&
		!strings.ContainsAny(command, `/\`) &&
		!strings.Contains(command, "..") &&
		filepath.IsLocal(command+pageExt)
}

// PageLookupResult is the ordered list of files that make up one page. The
// first file is the page itself; a custom patch, when present, follows it.
type PageLookupResult struct {
	paths []string
}

// WithPage builds a result for a single file, bypassing resolution.
func WithPage(path string) *PageLookupResult {
	return &PageLookupResult{paths: []string{path}}
}

// Paths returns a copy of the page's file list.
func (r *PageLookupResult) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// FindPage resolves command to its page files. Languages are tried in
// order and, within a language, the platform directory before common. At
// each language/platform pair a custom override wins outright, a custom
// patch is appended to the official page, and otherwise the official page
// stands alone. A nil result with a nil error means no page exists.
func (c *Cache) FindPage(command string, langs []string, customDir string) (*PageLookupResult, error) {
	if !validPageName(command) {
		c.logger.Debug().Str("command", command).Msg("Rejecting page name outside the pages tree")
		return nil, nil
	}

	pagesDir, err := c.PagesDir()
	if err != nil {
		return nil, err
	}

	var override, patch string
	if customDir != "" {
		override = filepath.Join(customDir, command+pageExt)
		patch = filepath.Join(customDir, command+patchExt)
	}

	for _, lang := range langs {
		for _, platformDir := range c.platform.SearchDirs() {
			official := officialPath(pagesDir, lang, platformDir, command)

			if override != "" && filesystem.FileExists(c.fs, override) {
				c.logger.Debug().Str("path", override).Msg("Using custom page")
				return &PageLookupResult{paths: []string{override}}, nil
			}

			if !filesystem.FileExists(c.fs, official) {
				continue
			}

			if patch != "" && filesystem.FileExists(c.fs, patch) {
				c.logger.Debug().Str("page", official).Str("patch", patch).Msg("Using page with custom patch")
				return &PageLookupResult{paths: []string{official, patch}}, nil
			}

			c.logger.Debug().Str("path", official).Str("lang", lang).Msg("Found page")
			return &PageLookupResult{paths: []string{official}}, nil
		}
	}

	c.logger.Debug().Str("command", command).Strs("languages", langs).Msg("Page not found")
	return nil, nil
}

func officialPath(pagesDir, lang, platformDir, command string) string {
	dir := "pages"
	if lang != languages.Default {
		dir = "pages." + lang
	}
	return filepath.Join(pagesDir, dir, platformDir, command+pageExt)
}
