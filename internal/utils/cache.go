package utils

import (
	"os"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type cacheItem[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache caches values derived from files. An entry is dropped as soon as
// the file's modification time or size changes.
type FileCache[V any] struct {
	items *xsync.MapOf[string, cacheItem[V]]
}

// NewFileCache creates an empty cache.
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{items: xsync.NewMapOf[string, cacheItem[V]]()}
}

// Get returns the value stored for path if the file is unchanged.
func (c *FileCache[V]) Get(path string) (V, bool) {
	var zero V

	item, ok := c.items.Load(path)
	if !ok {
		return zero, false
	}

	stat, err := os.Stat(path)
	if err != nil || !stat.ModTime().Equal(item.modTime) || stat.Size() != item.size {
		c.items.Delete(path)
		return zero, false
	}
	return item.value, true
}

// Set stores value for path together with the file's current metadata.
func (c *FileCache[V]) Set(path string, value V) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}
	c.items.Store(path, cacheItem[V]{value: value, modTime: stat.ModTime(), size: stat.Size()})
	return nil
}

// GetOrLoad returns the cached value for path or calls load and caches its
// result. Failed loads are not cached.
func (c *FileCache[V]) GetOrLoad(path string, load func(path string) (V, error)) (V, error) {
	if v, ok := c.Get(path); ok {
		return v, nil
	}
	v, err := load(path)
	if err != nil {
		return v, err
	}
	_ = c.Set(path, v) //nolint:errcheck // file vanished after load; value is still valid
	return v, nil
}

func (c *FileCache[V]) Delete(path string) { c.items.Delete(path) }

func (c *FileCache[V]) Clear() { c.items.Clear() }

func (c *FileCache[V]) Size() int { return c.items.Size() }
