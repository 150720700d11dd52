// Package resource loads fonts, images and vector images by path and shares
// them between widgets. A resource lives while at least one Handle to it is
// held; after the last Release its slot stays in the cache empty and the next
// Load constructs it again.
package resource

// entry is one cache slot. A slot with refs == 0 is weak: it keeps the path
// known but holds no resource.
type entry[T any] struct {
	value T
	refs  int
}

// Cache memoizes resources of one kind by path.
// It is not safe for concurrent use; the frame loop owns it.
type Cache[T any] struct {
	entries map[string]*entry[T]
	load    func(path string) T
	free    func(T)
	loads   int
}

// NewCache creates a cache that constructs resources with load and destroys
// them with free once nothing holds them.
func NewCache[T any](load func(path string) T, free func(T)) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		load:    load,
		free:    free,
	}
}

// Load returns a strong handle to the resource at path, constructing it if no
// live resource is cached.
func (c *Cache[T]) Load(path string) *Handle[T] {
	e, ok := c.entries[path]
	if !ok {
		e = &entry[T]{}
		c.entries[path] = e
	}
	if e.refs == 0 {
		e.value = c.load(path)
		c.loads++
	}
	e.refs++
	return &Handle[T]{cache: c, path: path, entry: e}
}

// Live reports whether a resource for path is currently held.
func (c *Cache[T]) Live(path string) bool {
	e, ok := c.entries[path]
	return ok && e.refs > 0
}

// Len returns the number of slots, weak ones included.
func (c *Cache[T]) Len() int { return len(c.entries) }

// Loads returns how many times a resource has been constructed.
func (c *Cache[T]) Loads() int { return c.loads }

func (c *Cache[T]) release(e *entry[T]) {
	e.refs--
	if e.refs > 0 {
		return
	}
	if c.free != nil {
		c.free(e.value)
	}
	var zero T
	e.value = zero
}

// Handle is one strong reference to a cached resource.
type Handle[T any] struct {
	cache    *Cache[T]
	path     string
	entry    *entry[T]
	released bool
}

// Value returns the resource. After Release it returns the zero value.
func (h *Handle[T]) Value() T {
	if h == nil || h.released {
		var zero T
		return zero
	}
	return h.entry.value
}

// Path returns the path the resource was loaded from.
func (h *Handle[T]) Path() string { return h.path }

// Clone returns another strong handle to the same resource.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released {
		return h.cache.Load(h.path)
	}
	h.entry.refs++
	return &Handle[T]{cache: h.cache, path: h.path, entry: h.entry}
}

// Release drops this reference. Releasing twice is a no-op.
func (h *Handle[T]) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.cache.release(h.entry)
}
