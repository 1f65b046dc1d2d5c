// Package cache manages the local copy of the tldr pages archive and finds
// the page files for a command.
//
// Layout under the cache root:
//
//	<root>/tldr-main/pages/<platform>/<command>.md        English pages
//	<root>/tldr-main/pages.<lang>/<platform>/<command>.md translations
//	<root>/.tldr.lock                                      update lock
//
// The modification time of tldr-main records the last successful update.
package cache

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/filesystem"
	"github.com/arthur-debert/tldr/pkg/logging"
	"github.com/arthur-debert/tldr/pkg/paths"
	"github.com/arthur-debert/tldr/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// DefaultArchiveURL is the upstream pages archive.
	DefaultArchiveURL = "https://github.com/tldr-pages/tldr/archive/refs/heads/main.tar.gz"

	// PagesDirName is the directory the archive unpacks to.
	PagesDirName = "tldr-main"

	// MaxAge is how old the cache may get before users are told to update.
	MaxAge = 30 * 24 * time.Hour

	lockFileName = ".tldr.lock"

	defaultUserAgent = "tldr"
	defaultTimeout   = 60 * time.Second
)

// Option configures a Cache.
type Option func(*Cache)

// WithRoot pins the cache root instead of resolving it from the environment.
func WithRoot(dir string) Option {
	return func(c *Cache) {
		c.root = dir
	}
}

// WithFS sets the filesystem the cache lives on.
func WithFS(fsys afero.Fs) Option {
	return func(c *Cache) {
		c.fs = fsys
	}
}

// WithHTTPClient sets the client used to download the archive.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent with archive requests.
func WithUserAgent(ua string) Option {
	return func(c *Cache) {
		c.userAgent = ua
	}
}

// Cache is the on-disk page store for one platform.
type Cache struct {
	archiveURL string
	platform   types.Platform
	root       string
	fs         afero.Fs
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// New returns a cache for platform that downloads from archiveURL. It does
// no I/O; the root directory is resolved on first use.
func New(archiveURL string, platform types.Platform, opts ...Option) *Cache {
	c := &Cache{
		archiveURL: archiveURL,
		platform:   platform,
		fs:         filesystem.NewOS(),
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     logging.GetLogger("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform returns the platform pages are looked up for.
func (c *Cache) Platform() types.Platform {
	return c.platform
}

// FS returns the filesystem the cache reads from.
func (c *Cache) FS() afero.Fs {
	return c.fs
}

// Root returns the cache directory and where it came from.
func (c *Cache) Root() (string, paths.Source, error) {
	if c.root != "" {
		return c.root, paths.SourceExplicit, nil
	}
	return paths.CacheDir()
}

// PagesDir returns the directory holding the extracted archive.
func (c *Cache) PagesDir() (string, error) {
	root, _, err := c.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, PagesDirName), nil
}

// LastUpdate returns the time since the last successful update. The second
// result is false when the cache has never been populated.
func (c *Cache) LastUpdate() (time.Duration, bool) {
	dir, err := c.PagesDir()
	if err != nil {
		return 0, false
	}
	info, err := c.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, false
	}
	elapsed := time.Since(info.ModTime())
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, true
}

// Clear removes the pages and any leftovers of interrupted updates. The
// root and its lock file are kept. A cache that does not exist is already
// clear.
func (c *Cache) Clear() error {
	root, _, err := c.Root()
	if err != nil {
		return err
	}

	if !filesystem.DirExists(c.fs, root) {
		c.logger.Debug().Str("root", root).Msg("Cache directory does not exist, nothing to clear")
		return nil
	}

	lock, err := c.acquireLock(root)
	if err != nil {
		return err
	}
	defer lock.Release()

	entries, err := afero.ReadDir(c.fs, root)
	if err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not read cache directory").
			WithDetail("path", root)
	}
	for _, entry := range entries {
		if !isCacheArtifact(entry.Name()) {
			continue
		}
		target := filepath.Join(root, entry.Name())
		if err := c.fs.RemoveAll(target); err != nil {
			return errors.Wrap(err, errors.ErrCache, "could not delete cache directory").
				WithDetail("path", target)
		}
	}
	c.logger.Info().Str("root", root).Msg("Cleared cache")
	return nil
}

// isCacheArtifact reports whether name, an entry of the cache root, was
// written by Update.
func isCacheArtifact(name string) bool {
	return name == PagesDirName ||
		name == PagesDirName+oldSuffix ||
		strings.HasPrefix(name, tmpPrefix)
}
