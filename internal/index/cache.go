// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import "time"

// Cache reuses a loaded index across queries within a time-to-live
// window, re-reading from disk only when the window lapses or the path
// changes.
type Cache struct {
	ttl    time.Duration
	now    func() time.Time
	path   string
	loaded time.Time
	ix     *Index
}

// DefaultTTL bounds how long a loaded index is served before the file
// is re-read.
const DefaultTTL = 10 * time.Minute

// NewCache returns a cache with the given TTL; zero or negative uses
// DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// GetOrReload returns the cached index for path, loading it when the
// cache is cold, holds a different path, or has expired.
func (c *Cache) GetOrReload(path string) (*Index, error) {
	if c.ix != nil && c.path == path && c.now().Sub(c.loaded) < c.ttl {
		return c.ix, nil
	}
	ix, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ix = ix
	c.path = path
	c.loaded = c.now()
	return ix, nil
}
