package wordex

import "sync"

// Cache holds compiled patterns, keyed by their expression. A Cache is safe
// for concurrent use.
type Cache struct {
	mx       sync.RWMutex
	opts     []Option
	patterns map[string]*Pattern
}

// NewCache creates a cache. opts will be used for every compilation.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		opts:     opts,
		patterns: make(map[string]*Pattern),
	}
}

// Get returns the pattern for expr, compiling it on first use. Expressions
// which fail to compile are not cached.
func (c *Cache) Get(expr string) (*Pattern, error) {
	c.mx.RLock()
	p, ok := c.patterns[expr]
	c.mx.RUnlock()
	if ok {
		return p, nil
	}
	p, err := Compile(expr, c.opts...)
	if err != nil {
		return nil, err
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	if cached, ok := c.patterns[expr]; ok {
		return cached, nil
	}
	c.patterns[expr] = p
	return p, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return len(c.patterns)
}
