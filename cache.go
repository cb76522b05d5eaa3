package blog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cainhappyfish/blog/catalog"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("not found")

// CatalogCache keeps the last built catalog for a TTL and rebuilds it from
// the source on the first read after expiry.
type CatalogCache struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	fetched time.Time
	ttl     time.Duration
	source  catalog.Source
	opts    []catalog.Option
	now     func() time.Time
}

// NewCatalogCache creates a CatalogCache backed by src.
func NewCatalogCache(src catalog.Source, ttl time.Duration, opts ...catalog.Option) *CatalogCache {
	return &CatalogCache{source: src, ttl: ttl, opts: opts, now: time.Now}
}

func (c *CatalogCache) valid() bool {
	return c.catalog != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh build.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.catalog = nil
	c.mu.Unlock()
}

// Catalog returns the cached catalog, building it first if the cache is
// empty or stale. It tries a read lock first and only takes the write lock
// when a rebuild is needed.
func (c *CatalogCache) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c.mu.RLock()
	if c.valid() {
		cat := c.catalog
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.catalog, nil
	}
	cat, err := catalog.BuildFrom(ctx, c.source, c.opts...)
	if err != nil {
		return nil, err
	}
	c.catalog = cat
	c.fetched = c.now()
	return cat, nil
}

// Warm builds the catalog eagerly and logs the result.
func (c *CatalogCache) Warm(ctx context.Context, logger *slog.Logger) error {
	cat, err := c.Catalog(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog ready", "posts", cat.Len(), "categories", len(catalog.Categories(cat)))
	return nil
}

// Post returns a single post by slug.
func (c *CatalogCache) Post(ctx context.Context, slug string) (catalog.Post, error) {
	cat, err := c.Catalog(ctx)
	if err != nil {
		return catalog.Post{}, err
	}
	p, ok := cat.BySlug(slug)
	if !ok {
		return catalog.Post{}, ErrNotFound
	}
	return p, nil
}
