package embed

import (
	"sync"

	"github.com/fwojciec/docindex"
)

// Factory creates a provider embedder for an API key.
type Factory func(apiKey string) (docindex.Embedder, error)

// Cache holds one embedder per distinct API key. It is owned by whoever
// configures the process and passed to the code that needs embedders.
type Cache struct {
	factory Factory

	mu      sync.Mutex
	clients map[string]docindex.Embedder
}

// NewCache returns an empty Cache that builds embedders with factory.
func NewCache(factory Factory) *Cache {
	return &Cache{
		factory: factory,
		clients: make(map[string]docindex.Embedder),
	}
}

// Get returns the embedder for apiKey, creating it on first use.
// A factory error is returned as is and nothing is cached.
func (c *Cache) Get(apiKey string) (docindex.Embedder, error) {
	if apiKey == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "API key required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.clients[apiKey]; ok {
		return e, nil
	}
	e, err := c.factory(apiKey)
	if err != nil {
		return nil, err
	}
	c.clients[apiKey] = e
	return e, nil
}

// Len returns the number of cached embedders.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
