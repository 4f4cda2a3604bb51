package chipflow

import "sync"

// Size is a measured width and height in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are finite and non-negative.
func (s Size) Valid() bool {
	return validWidth(s.Width) && validWidth(s.Height)
}

// SizeLookup resolves an item key to its last measured size.
type SizeLookup[K comparable] interface {
	Size(key K) (Size, bool)
}

// SizeMap is an unsynchronised SizeLookup backed by a map.
type SizeMap[K comparable] map[K]Size

// Size implements SizeLookup.
func (m SizeMap[K]) Size(key K) (Size, bool) {
	s, ok := m[key]
	return s, ok
}

// SizeCache accumulates measured sizes by key.
// Entries are only ever added or overwritten, never removed. Reads and writes
// may come from different goroutines.
type SizeCache[K comparable] struct {
	mu    sync.RWMutex
	sizes map[K]Size
}

// NewSizeCache creates an empty cache.
func NewSizeCache[K comparable]() *SizeCache[K] {
	return &SizeCache[K]{sizes: make(map[K]Size)}
}

// Size implements SizeLookup.
func (c *SizeCache[K]) Size(key K) (Size, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sizes[key]
	return s, ok
}

// Report stores a measurement for key and returns true if it differs from
// what was cached before.
func (c *SizeCache[K]) Report(key K, s Size) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	old, ok := c.sizes[key]
	if ok && old == s {
		return false
	}
	c.sizes[key] = s
	return true
}

// Len returns the number of measured keys.
func (c *SizeCache[K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sizes)
}

// Snapshot copies the cache into a SizeMap, so a whole layout pass can read
// one consistent set of sizes while measurements keep arriving.
func (c *SizeCache[K]) Snapshot() SizeMap[K] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := make(SizeMap[K], len(c.sizes))
	for k, s := range c.sizes {
		m[k] = s
	}
	return m
}
