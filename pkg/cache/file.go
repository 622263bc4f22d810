package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries on the local filesystem, one payload file plus a
// small JSON sidecar holding the expiry. Payloads are written verbatim: graph
// artifacts are already compact binary blobs, so wrapping them in an encoded
// envelope would roughly double their size on disk.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryMeta is the sidecar contents. A zero ExpiresAt means no expiry.
type entryMeta struct {
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the payload for key, reporting a miss for absent, corrupt, or
// expired entries. Corrupt and expired entries are evicted on read.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	base := c.path(key)

	raw, err := os.ReadFile(base + ".meta")
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meta entryMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		c.evict(base)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		c.evict(base)
		return nil, false, nil
	}

	data, err := os.ReadFile(base + ".bin")
	if os.IsNotExist(err) {
		// Sidecar without payload, e.g. an interrupted Set.
		c.evict(base)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores the payload under key. A zero ttl stores the entry without
// expiry; a negative ttl produces an entry that is already expired.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var meta entryMeta
	if ttl != 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	base := c.path(key)
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return err
	}
	// Payload first: a sidecar without a payload reads as a miss, the
	// reverse would read as an unexpirable orphan.
	if err := os.WriteFile(base+".bin", data, 0644); err != nil {
		return err
	}
	return os.WriteFile(base+".meta", raw, 0644)
}

// Delete removes the entry for key; deleting an absent entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.evict(c.path(key))
	return nil
}

// Close is a no-op for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file base path. The first two hex chars of the key
// hash form a subdirectory, keeping any one directory from growing unbounded.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:])
}

func (c *FileCache) evict(base string) {
	_ = os.Remove(base + ".bin")
	_ = os.Remove(base + ".meta")
}

var _ Cache = (*FileCache)(nil)
