package resource

// CachedStorage deduplicates resources by their creation descriptor.
// Requesting the same descriptor twice returns the original handle without
// invoking the create function again.
type CachedStorage[D comparable, T any] struct {
	storage *Storage[T]
	cache   map[D]Handle[T]
}

func NewCachedStorage[D comparable, T any](kind string) *CachedStorage[D, T] {
	return &CachedStorage[D, T]{
		storage: NewStorage[T](kind),
		cache:   map[D]Handle[T]{},
	}
}

// GetOrCreate returns the cached handle for the descriptor, creating the
// resource on first use. The second return value reports a cache hit.
func (c *CachedStorage[D, T]) GetOrCreate(desc D, create func(D) (T, error)) (Handle[T], bool, error) {
	if h, ok := c.cache[desc]; ok {
		return h, true, nil
	}
	value, err := create(desc)
	if err != nil {
		return Handle[T]{}, false, err
	}
	h := c.storage.Add(value)
	c.cache[desc] = h
	return h, false, nil
}

// Get resolves a previously issued handle.
func (c *CachedStorage[D, T]) Get(h Handle[T]) (*T, error) {
	return c.storage.Get(h)
}

// Remove evicts the resource and its cache entry.
func (c *CachedStorage[D, T]) Remove(h Handle[T]) (T, error) {
	value, err := c.storage.Remove(h)
	if err != nil {
		var zero T
		return zero, err
	}
	for desc, cached := range c.cache {
		if cached == h {
			delete(c.cache, desc)
			break
		}
	}
	return value, nil
}

// Evict removes every resource whose descriptor matches, handing each to
// release before its slot is recycled. Handles to evicted resources stop
// resolving; the next GetOrCreate with the same descriptor recreates the
// resource. Returns the number evicted.
func (c *CachedStorage[D, T]) Evict(match func(D) bool, release func(D, T)) int {
	n := 0
	for desc, h := range c.cache {
		if !match(desc) {
			continue
		}
		value, err := c.storage.Remove(h)
		if err != nil {
			continue
		}
		delete(c.cache, desc)
		if release != nil {
			release(desc, value)
		}
		n++
	}
	return n
}

// Len returns the number of live resources.
func (c *CachedStorage[D, T]) Len() int {
	return c.storage.Len()
}

// ForEach visits every live resource. Used for bulk teardown.
func (c *CachedStorage[D, T]) ForEach(fn func(Handle[T], *T)) {
	c.storage.ForEach(fn)
}
