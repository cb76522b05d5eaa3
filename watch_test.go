package blog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cainhappyfish/blog/catalog"
)

func TestWatchPostsInvalidatesCatalog(t *testing.T) {
	dir := t.TempDir()
	write := func(name, title string) {
		t.Helper()
		body := "---\ntitle: " + title + "\ndate: 2024-01-01\n---\nbody\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("first.md", "First")

	app := New(SiteConfig{PostsDir: dir, SessionSecret: "secret", CatalogTTL: time.Hour}, stubViews(),
		WithContent(&SiteContent{}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err := app.Setup(); err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- app.WatchPosts(ctx) }()

	cat, err := app.Cache.Catalog(ctx)
	if err != nil || cat.Len() != 1 {
		t.Fatalf("initial catalog: len=%d err=%v", cat.Len(), err)
	}

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	write("second.md", "Second")

	deadline := time.Now().Add(3 * time.Second)
	for {
		cat, err = app.Cache.Catalog(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if cat.Len() == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("catalog was not rebuilt after a post changed")
		}
		time.Sleep(50 * time.Millisecond)
	}
	if _, ok := cat.BySlug("second"); !ok {
		t.Fatalf("new post missing from %v", catalog.Categories(cat))
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("WatchPosts returned %v", err)
	}
}

func TestWatchPostsBeforeSetup(t *testing.T) {
	app := New(SiteConfig{}, stubViews())
	if err := app.WatchPosts(context.Background()); err == nil {
		t.Fatal("expected error before Setup")
	}
}
