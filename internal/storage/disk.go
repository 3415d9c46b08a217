// internal/storage/disk.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ImageStore is the object-storage collaborator: it accepts a file and
// returns a public URL plus the identifier used as the image's id.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (id string, url string, err error)
	Remove(ctx context.Context, id string) error
}

// DiskStore persists uploads on local disk and serves them under a public
// base URL via the router's static mount.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("storage: public base URL is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create media dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save streams one upload to disk. The generated ULID doubles as the image id
// and, with the original extension, as the stored object name.
func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	id := ulid.Make().String()
	name := id + sanitizeExt(filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", "", fmt.Errorf("storage: failed to create %s: %w", dst, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst) // best-effort cleanup of the partial file
		return "", "", fmt.Errorf("storage: failed to write %s: %w", dst, err)
	}

	return id, fmt.Sprintf("%s/%s", s.baseURL, name), nil
}

// Remove deletes every stored object for an image id, best effort.
func (s *DiskStore) Remove(ctx context.Context, id string) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, id+"*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage: failed to remove %s: %w", m, err)
		}
	}
	return nil
}

// Dir returns the on-disk media directory, for the static file mount.
func (s *DiskStore) Dir() string {
	return s.dir
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif", ".avif":
		return ext
	default:
		return ".bin"
	}
}
