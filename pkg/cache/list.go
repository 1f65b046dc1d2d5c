package cache

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/spf13/afero"
)

// ListPages returns the sorted names of every page in every language and
// platform directory. It does not check freshness.
func (c *Cache) ListPages() ([]string, error) {
	pagesDir, err := c.PagesDir()
	if err != nil {
		return nil, err
	}

	langDirs, err := afero.ReadDir(c.fs, pagesDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCache, "could not read pages directory").
			WithDetail("path", pagesDir)
	}

	var names []string
	for _, langDir := range langDirs {
		if !langDir.IsDir() || !strings.HasPrefix(langDir.Name(), pagesPrefix) {
			continue
		}
		langPath := filepath.Join(pagesDir, langDir.Name())

		platformDirs, err := afero.ReadDir(c.fs, langPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCache, "could not read pages directory").
				WithDetail("path", langPath)
		}
		for _, platformDir := range platformDirs {
			if !platformDir.IsDir() {
				continue
			}
			platformPath := filepath.Join(langPath, platformDir.Name())

			entries, err := afero.ReadDir(c.fs, platformPath)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCache, "could not read pages directory").
					WithDetail("path", platformPath)
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), pageExt) {
					continue
				}
				names = append(names, strings.TrimSuffix(entry.Name(), pageExt))
			}
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
