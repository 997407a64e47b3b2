package clauses

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"copyck/internal/logging"
	"copyck/internal/ty"
)

// Cache memoizes a generator. Generation is deterministic in (goal, binders),
// so a recorded emission can be replayed into any later sink.
type Cache struct {
	inner   Generator
	entries *lru.Cache[string, []Clause]
}

// NewCache wraps inner with an LRU holding at most size emissions.
func NewCache(inner Generator, size int) (*Cache, error) {
	entries, err := lru.New[string, []Clause](size)
	if err != nil {
		return nil, fmt.Errorf("create clause cache: %w", err)
	}
	return &Cache{inner: inner, entries: entries}, nil
}

// AddClauses implements Generator.
func (c *Cache) AddClauses(sink Sink, ref ty.TraitRef, binders ty.Binders) {
	key := ref.Key() + "|" + binders.String()
	recorded, ok := c.entries.Get(key)
	if !ok {
		var mem MemorySink
		c.inner.AddClauses(&mem, ref, binders)
		recorded = mem.Clauses
		c.entries.Add(key, recorded)
		logging.Get(logging.CategoryCache).Debug("cached %s (%d entries)", ref, c.Len())
	} else {
		logging.Get(logging.CategoryCache).Debug("cache hit for %s", ref)
	}
	for _, clause := range recorded {
		replay(sink, clause)
	}
}

// Len returns the number of cached emissions.
func (c *Cache) Len() int {
	return c.entries.Len()
}
