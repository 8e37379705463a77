package generator

import (
	"strconv"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// Source produces a basis for a category id. *Generator and *Cached both satisfy it.
type Source interface {
	Generate(id int) (geometry.Set, error)
}

// Cached memoizes successful generations per category id. Catalog entries are
// immutable, so entries never expire. Failures are not cached.
type Cached struct {
	gen   Source
	cache *gocache.Cache

	hits, misses atomic.Int64
}

// NewCached wraps gen with an in-memory cache.
func NewCached(gen Source) *Cached {
	return &Cached{
		gen:   gen,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Generate returns the cached basis for id, generating it on first use.
func (c *Cached) Generate(id int) (geometry.Set, error) {
	key := strconv.Itoa(id)
	if v, found := c.cache.Get(key); found {
		c.hits.Add(1)
		return v.(geometry.Set), nil
	}
	c.misses.Add(1)
	set, err := c.gen.Generate(id)
	if err != nil {
		return geometry.Set{}, err
	}
	c.cache.Set(key, set, gocache.NoExpiration)
	return set, nil
}

// Len reports how many bases are cached.
func (c *Cached) Len() int { return c.cache.ItemCount() }

// Stats reports cache hits and misses since creation.
func (c *Cached) Stats() (hits, misses int64) { return c.hits.Load(), c.misses.Load() }

// Flush drops every cached basis.
func (c *Cached) Flush() { c.cache.Flush() }
