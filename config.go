package blog

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/cainhappyfish/blog/catalog"
)

// SiteConfig holds all configuration for a site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD and the post author default

	Addr        string // Listen address (default ":3000")
	PostsDir    string // Markdown posts directory (default "content/blogs")
	ContentFile string // Site content YAML (default "content/site.yaml")
	GalleryDir  string // Gallery photo directory (default "content/gallery")

	SessionSecret string // Required: cookie session secret
	CookieSecure  bool   // Set true for HTTPS

	CatalogTTL       time.Duration // How long a built catalog is reused (default 5min)
	BuildConcurrency int           // Parallel document loads (default 8)
	LatestCount      int           // Posts shown on the home page (default 3)
	DefaultTheme     string        // "light" or "dark" (default "light")
	ThumbnailWidth   int           // Gallery thumbnail width in px (default 480)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "content/blogs"
	}
	if c.ContentFile == "" {
		c.ContentFile = "content/site.yaml"
	}
	if c.GalleryDir == "" {
		c.GalleryDir = "content/gallery"
	}
	if c.CatalogTTL == 0 {
		c.CatalogTTL = 5 * time.Minute
	}
	if c.BuildConcurrency <= 0 {
		c.BuildConcurrency = 8
	}
	if c.LatestCount <= 0 {
		c.LatestCount = 3
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = "light"
	}
	if c.ThumbnailWidth <= 0 {
		c.ThumbnailWidth = 480
	}
}

// PostDefaults returns the catalog defaults, using Author when set.
func (c SiteConfig) PostDefaults() catalog.Defaults {
	d := catalog.DefaultValues()
	if c.Author != "" {
		d.Author = c.Author
	}
	return d
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource replaces the posts directory as the catalog's document source.
func WithSource(src catalog.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithContent supplies site content instead of reading ContentFile.
func WithContent(content *SiteContent) Option {
	return func(a *App) {
		a.Content = content
	}
}

// WithGalleryFS serves gallery photos from fsys instead of GalleryDir.
func WithGalleryFS(fsys fs.FS) Option {
	return func(a *App) {
		a.galleryFS = fsys
	}
}

// WithLogger sets the application logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Logger = l
		}
	}
}
