package cache

import (
	"archive/tar"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/filesystem"
	"github.com/arthur-debert/tldr/pkg/logging"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

const (
	// maxPageBytes bounds a single extracted file
	maxPageBytes = 4 << 20

	pagesPrefix = "pages"
	tmpPrefix   = ".update-"
	oldSuffix   = ".old"
)

// Update downloads the pages archive and replaces the cached pages with its
// contents. The new pages are extracted next to the current ones and swapped
// in with renames, so readers never see a partial extraction.
func (c *Cache) Update(ctx context.Context) error {
	root, _, err := c.Root()
	if err != nil {
		return err
	}
	defer logging.LogOperationStart(c.logger, "update")()

	lock, err := c.acquireLock(root)
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := c.fs.MkdirAll(root, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not create cache directory").
			WithDetail("path", root)
	}

	tmpDir, err := afero.TempDir(c.fs, root, tmpPrefix)
	if err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not create temporary directory").
			WithDetail("path", root)
	}
	// TempDir creates 0700 and the rename keeps the mode
	if err := c.fs.Chmod(tmpDir, 0o755); err != nil {
		_ = c.fs.RemoveAll(tmpDir)
		return errors.Wrap(err, errors.ErrCache, "could not set temporary directory permissions").
			WithDetail("path", tmpDir)
	}
	defer func() {
		// Gone already when the swap succeeded
		_ = c.fs.RemoveAll(tmpDir)
	}()

	body, err := c.download(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	count, err := c.extract(body, tmpDir)
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New(errors.ErrUpdate, "archive contains no pages").
			WithDetail("url", c.archiveURL)
	}
	c.logger.Debug().Int("files", count).Str("tmp", tmpDir).Msg("Extracted archive")

	return c.swap(root, tmpDir)
}

func (c *Cache) download(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.archiveURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpdate, "invalid archive URL").
			WithDetail("url", c.archiveURL)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", c.archiveURL).Msg("Downloading pages archive")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpdate, "could not download pages archive").
			WithDetail("url", c.archiveURL)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrUpdate, "could not download pages archive: HTTP %d", resp.StatusCode).
			WithDetail("url", c.archiveURL).
			WithDetail("status", resp.StatusCode)
	}

	return resp.Body, nil
}

// extract unpacks every pages*/ entry of the tar.gz stream r into dest,
// dropping the archive's top-level directory. It returns the number of
// files written.
func (c *Cache) extract(r io.Reader, dest string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrUpdate, "could not decompress pages archive")
	}
	defer func() { _ = gz.Close() }()

	count := 0
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, errors.Wrap(err, errors.ErrUpdate, "could not read pages archive")
		}

		rel, ok, err := entryPath(hdr.Name)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := c.fs.MkdirAll(target, 0o755); err != nil {
				return count, errors.Wrap(err, errors.ErrCache, "could not create page directory").
					WithDetail("path", target)
			}
		case tar.TypeReg:
			if hdr.Size > maxPageBytes {
				return count, errors.Newf(errors.ErrUpdate, "archive entry %s exceeds %d bytes", rel, maxPageBytes).
					WithDetail("size", hdr.Size)
			}
			if err := c.writeFile(target, tr); err != nil {
				return count, err
			}
			count++
		default:
			c.logger.Trace().Str("entry", hdr.Name).Msg("Skipping non-regular archive entry")
		}
	}

	return count, nil
}

// entryPath maps an archive entry name to its path inside the pages
// directory. Entries outside pages*/ are skipped; entries escaping the
// destination are rejected.
func entryPath(name string) (string, bool, error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	_, rel, found := strings.Cut(name, "/")
	if !found {
		return "", false, nil
	}

	first, _, _ := strings.Cut(rel, "/")
	if first != pagesPrefix && !strings.HasPrefix(first, pagesPrefix+".") {
		return "", false, nil
	}

	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false, errors.Newf(errors.ErrUpdate, "archive entry %q escapes the cache directory", name)
	}
	return path.Clean(rel), true, nil
}

// archiveReadError marks failures of the archive stream, as opposed to
// failures writing the extracted file.
type archiveReadError struct {
	err error
}

func (e *archiveReadError) Error() string { return e.err.Error() }
func (e *archiveReadError) Unwrap() error { return e.err }

type archiveReader struct {
	r io.Reader
}

func (a archiveReader) Read(p []byte) (int, error) {
	n, err := a.r.Read(p)
	if err != nil && err != io.EOF {
		err = &archiveReadError{err: err}
	}
	return n, err
}

func (c *Cache) writeFile(target string, r io.Reader) (err error) {
	if err := c.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not create page directory").
			WithDetail("path", filepath.Dir(target))
	}

	f, err := c.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not create page file").
			WithDetail("path", target)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, errors.ErrCache, "could not write page file").
				WithDetail("path", target)
		}
	}()

	n, err := io.Copy(f, io.LimitReader(archiveReader{r: r}, maxPageBytes+1))
	if err != nil {
		var readErr *archiveReadError
		if stderrors.As(err, &readErr) {
			return errors.Wrapf(readErr.err, errors.ErrUpdate, "could not extract %s", filepath.Base(target))
		}
		return errors.Wrap(err, errors.ErrCache, "could not write page file").
			WithDetail("path", target)
	}
	if n > maxPageBytes {
		return errors.Newf(errors.ErrUpdate, "archive entry %s exceeds %d bytes", filepath.Base(target), maxPageBytes)
	}
	return nil
}

// swap moves the freshly extracted pages into place and stamps the
// freshness marker.
func (c *Cache) swap(root, tmpDir string) error {
	current := filepath.Join(root, PagesDirName)
	old := current + oldSuffix

	if err := c.fs.RemoveAll(old); err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not remove stale pages").
			WithDetail("path", old)
	}

	hadCurrent := filesystem.DirExists(c.fs, current)
	if hadCurrent {
		if err := c.fs.Rename(current, old); err != nil {
			return errors.Wrap(err, errors.ErrCache, "could not move old pages aside").
				WithDetail("path", current)
		}
	}

	if err := c.fs.Rename(tmpDir, current); err != nil {
		if hadCurrent {
			_ = c.fs.Rename(old, current)
		}
		return errors.Wrap(err, errors.ErrCache, "could not install new pages").
			WithDetail("path", current)
	}

	if hadCurrent {
		if err := c.fs.RemoveAll(old); err != nil {
			c.logger.Warn().Err(err).Str("path", old).Msg("Could not remove old pages")
		}
	}

	now := time.Now()
	if err := c.fs.Chtimes(current, now, now); err != nil {
		return errors.Wrap(err, errors.ErrCache, "could not update cache timestamp").
			WithDetail("path", current)
	}

	c.logger.Info().Str("path", current).Msg("Pages updated")
	return nil
}
