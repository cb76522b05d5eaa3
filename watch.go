package blog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups bursts of editor writes into one rebuild.
const watchDebounce = 300 * time.Millisecond

// WatchPosts invalidates the catalog cache whenever a Markdown file in
// PostsDir changes, so edits show up without waiting for the TTL. It blocks
// until ctx is done.
func (a *App) WatchPosts(ctx context.Context) error {
	if a.Cache == nil {
		return fmt.Errorf("blog: WatchPosts called before Setup")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("blog: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(a.Config.PostsDir); err != nil {
		return fmt.Errorf("blog: watch %s: %w", a.Config.PostsDir, err)
	}
	a.Logger.Info("watching posts", "dir", a.Config.PostsDir)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			a.Logger.Debug("post changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				a.Cache.Invalidate()
				a.Logger.Info("catalog invalidated", "reason", "posts changed")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("watcher error", "err", err)
		}
	}
}
