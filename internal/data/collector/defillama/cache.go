package defillama

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileCache keeps raw endpoint responses on disk so repeated runs within
// the TTL do not hammer the public API.
type fileCache struct {
	dir string
	ttl time.Duration
}

func newFileCache(dir string, ttl time.Duration) (*fileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileCache{dir: dir, ttl: ttl}, nil
}

func (c *fileCache) path(endpoint string) string {
	name := strings.Trim(strings.ReplaceAll(endpoint, "/", "_"), "_") + ".json"
	return filepath.Join(c.dir, name)
}

// Load returns the cached body for the endpoint, or nil when missing or
// older than the TTL.
func (c *fileCache) Load(endpoint string) []byte {
	path := c.path(endpoint)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= c.ttl {
		return nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return body
}

func (c *fileCache) Store(endpoint string, body []byte) error {
	return os.WriteFile(c.path(endpoint), body, 0o644)
}

// Clear removes every cached response.
func (c *fileCache) Clear() error {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(entry); err != nil {
			return err
		}
	}
	return nil
}
