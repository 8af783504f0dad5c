package basis

import "sync"

// Cache memoizes ChangeOfBasis values by degree. Each degree is constructed
// at most once, even under concurrent Get calls; failures are cached too.
// The zero value is not usable; call NewCache.
type Cache struct {
	mu      sync.Mutex
	entries map[int]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	cob  *ChangeOfBasis
	err  error
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]*cacheEntry)}
}

// Get returns the shared ChangeOfBasis for ydeg, building it on first use.
func (c *Cache) Get(ydeg int) (*ChangeOfBasis, error) {
	c.mu.Lock()
	e, ok := c.entries[ydeg]
	if !ok {
		e = &cacheEntry{}
		c.entries[ydeg] = e
	}
	c.mu.Unlock()

	// construction runs outside the map lock so distinct degrees build in parallel
	e.once.Do(func() {
		e.cob, e.err = New(ydeg)
	})

	return e.cob, e.err
}

// Len reports how many degrees have been requested.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
