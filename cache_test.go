package blog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cainhappyfish/blog/catalog"
)

// countingSource counts how many times the catalog was rebuilt.
type countingSource struct {
	docs  []catalog.Document
	calls atomic.Int32
}

func (s *countingSource) Documents(ctx context.Context) ([]catalog.Document, error) {
	s.calls.Add(1)
	return s.docs, nil
}

func post(slug, title, date string) catalog.Document {
	return catalog.TextDocument(slug+".md", "---\ntitle: "+title+"\ndate: "+date+"\n---\nbody\n")
}

func TestCatalogCacheReusesWithinTTL(t *testing.T) {
	src := &countingSource{docs: []catalog.Document{post("a", "A", "2024-01-01")}}
	c := NewCatalogCache(src, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := c.Catalog(context.Background()); err != nil {
			t.Fatalf("Catalog failed: %v", err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected one build, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Catalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected rebuild after ttl, got %d builds", got)
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	src := &countingSource{docs: []catalog.Document{post("a", "A", "2024-01-01")}}
	c := NewCatalogCache(src, time.Hour)
	if _, err := c.Catalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.Invalidate()
	if _, err := c.Catalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected rebuild after invalidate, got %d builds", got)
	}
}

func TestCatalogCachePost(t *testing.T) {
	src := catalog.StaticSource{post("hello", "Hello", "2024-02-02")}
	c := NewCatalogCache(src, time.Hour)

	p, err := c.Post(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if p.Title != "Hello" {
		t.Fatalf("title = %q", p.Title)
	}
	if _, err := c.Post(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogCacheCancelledBuild(t *testing.T) {
	c := NewCatalogCache(catalog.StaticSource{post("a", "A", "2024-01-01")}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Catalog(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
