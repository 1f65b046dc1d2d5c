package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/paths"
	"github.com/arthur-debert/tldr/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	t.Run("explicit root", func(t *testing.T) {
		c := New(DefaultArchiveURL, types.PlatformLinux, WithRoot("/var/cache/tldr"))

		root, source, err := c.Root()
		require.NoError(t, err)
		assert.Equal(t, "/var/cache/tldr", root)
		assert.Equal(t, paths.SourceExplicit, source)

		pagesDir, err := c.PagesDir()
		require.NoError(t, err)
		assert.Equal(t, "/var/cache/tldr/tldr-main", pagesDir)
	})

	t.Run("env override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvCacheDir, dir)

		root, source, err := New(DefaultArchiveURL, types.PlatformLinux).Root()
		require.NoError(t, err)
		assert.Equal(t, dir, root)
		assert.Equal(t, paths.SourceEnvVariable, source)
	})

	t.Run("bad env override is a config error", func(t *testing.T) {
		t.Setenv(paths.EnvCacheDir, filepath.Join(t.TempDir(), "missing"))

		c := New(DefaultArchiveURL, types.PlatformLinux)
		_, _, err := c.Root()
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))

		_, ok := c.LastUpdate()
		assert.False(t, ok)
	})
}

func TestLastUpdate(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := New(DefaultArchiveURL, types.PlatformLinux, WithRoot("/cache"), WithFS(fs))

	_, ok := c.LastUpdate()
	assert.False(t, ok, "never populated")

	require.NoError(t, fs.MkdirAll("/cache/tldr-main/pages/common", 0755))
	stamp := time.Now().Add(-2 * time.Hour)
	require.NoError(t, fs.Chtimes("/cache/tldr-main", stamp, stamp))

	age, ok := c.LastUpdate()
	require.True(t, ok)
	assert.InDelta(t, (2 * time.Hour).Seconds(), age.Seconds(), 5)
}

func TestClear(t *testing.T) {
	t.Run("missing cache is fine", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "cache")
		c := New(DefaultArchiveURL, types.PlatformLinux, WithRoot(root))

		assert.NoError(t, c.Clear())
	})

	t.Run("removes populated cache", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "cache")
		page := filepath.Join(root, PagesDirName, "pages", "common", "ls.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(page), 0755))
		require.NoError(t, os.WriteFile(page, []byte("# ls\n"), 0644))

		leftovers := []string{PagesDirName + oldSuffix, tmpPrefix + "123"}
		for _, dir := range leftovers {
			require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
		}
		unrelated := filepath.Join(root, "notes.txt")
		require.NoError(t, os.WriteFile(unrelated, []byte("mine"), 0644))

		c := New(DefaultArchiveURL, types.PlatformLinux, WithRoot(root))
		require.NoError(t, c.Clear())

		assert.NoDirExists(t, filepath.Join(root, PagesDirName))
		for _, dir := range leftovers {
			assert.NoDirExists(t, filepath.Join(root, dir))
		}
		assert.FileExists(t, unrelated)
		assert.DirExists(t, root)
		assert.FileExists(t, filepath.Join(root, lockFileName))
		_, ok := c.LastUpdate()
		assert.False(t, ok)
	})

	t.Run("in-memory filesystem", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/cache/tldr-main/pages/common/ls.md", []byte("# ls"), 0644))

		c := New(DefaultArchiveURL, types.PlatformLinux, WithRoot("/cache"), WithFS(fs))
		require.NoError(t, c.Clear())

		exists, err := afero.DirExists(fs, "/cache/tldr-main")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
