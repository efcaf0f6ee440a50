package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageCache maps exercise names to PNG files on disk. The key is solely the
// sanitized exercise name: the same name always resolves to the same file,
// regardless of which plan requested it. Entries are never invalidated or
// expired.
type ImageCache struct {
	dir string
}

// NewImageCache opens (or creates) the cache directory.
func NewImageCache(dir string) (*ImageCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image cache dir %s: %w", dir, err)
	}
	return &ImageCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *ImageCache) Dir() string { return c.dir }

// PathFor returns the on-disk location for an exercise name. The name is
// sanitized internally, so callers may pass raw titles.
func (c *ImageCache) PathFor(name string) string {
	return filepath.Join(c.dir, SafeName(name)+".png")
}

// Exists reports whether an image for the exercise is already cached.
// Callers must check this before requesting a paid generation; a hit
// short-circuits the external call entirely.
func (c *ImageCache) Exists(name string) bool {
	_, err := os.Stat(c.PathFor(name))
	return err == nil
}

// Store writes image bytes for the exercise and returns the final path.
// Idempotent: storing the same name twice overwrites. The write goes to a
// temp file first and is renamed into place, so a partial write is never
// visible as a cache entry.
func (c *ImageCache) Store(name string, data []byte) (string, error) {
	dst := c.PathFor(name)
	tmp, err := os.CreateTemp(c.dir, ".img-*")
	if err != nil {
		return "", fmt.Errorf("creating temp image file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing image %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing image %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("renaming image into place: %w", err)
	}
	return dst, nil
}

// Read returns the cached bytes for an exercise name.
func (c *ImageCache) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(c.PathFor(name))
	if err != nil {
		return nil, fmt.Errorf("reading cached image for %q: %w", name, err)
	}
	return data, nil
}
