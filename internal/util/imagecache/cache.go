// Package imagecache keeps downloaded portraits on disk keyed by URL.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	httputil "github.com/haneulpalette/haneul/internal/util/http"
)

// Cache stores fetched image bytes under dir.
type Cache struct {
	dir   string
	fetch httputil.FetchOptions
}

// DefaultDir returns the per-user cache directory for downloaded images.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "haneul", "images"), nil
}

// New returns a cache rooted at dir, or at DefaultDir when dir is empty.
func New(dir string, opts httputil.FetchOptions) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{dir: dir, fetch: opts}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// Path returns where url is stored: the first 16 bytes of its SHA-256 in hex
// plus the URL's extension, or ".img" when it has none.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))

	clean := url
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	ext := strings.ToLower(path.Ext(clean))
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+ext)
}

// Fetch returns the bytes for url, downloading them on a miss.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	p := c.Path(url)
	data, err := os.ReadFile(p) // #nosec G304 - path is derived from a hash inside the cache dir
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cached image: %w", err)
	}

	data, err = httputil.Fetch(ctx, url, c.fetch)
	if err != nil {
		return nil, err
	}
	if err := c.store(p, data); err != nil {
		return nil, err
	}
	return data, nil
}

// store writes through a temp file so readers never see a partial image.
func (c *Cache) store(p string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to store cached image: %w", err)
	}
	return nil
}
