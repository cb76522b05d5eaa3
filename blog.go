// Package blog is a personal blog and portfolio site built with Go, Echo, and templ.
// Posts are Markdown files with a small front-matter header; they are
// collected into a date-ordered catalog and served next to static personal
// content (profile, friends, gallery).
//
// Users provide their own templ components via the ViewFuncs struct, and the
// package handles the handler logic, middleware, and catalog maintenance.
package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/cainhappyfish/blog/catalog"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home        func(page Page, latest []catalog.Post) templ.Component
	Blogs       func(page Page, posts []catalog.Post, categories []string, active string) templ.Component
	BlogList    func(page Page, posts []catalog.Post, categories []string, active string) templ.Component
	Post        func(page Page, post catalog.Post, related []catalog.Post) templ.Component
	About       func(page Page) templ.Component
	Friends     func(page Page, friends []Friend, active string) templ.Component
	Gallery     func(page Page) templ.Component
	NotFound    func(page Page) templ.Component
	ServerError func(page Page) templ.Component
}

// App is the central application. It wires together the catalog cache,
// site content, handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Cache   *CatalogCache
	Content *SiteContent
	Views   ViewFuncs
	Logger  *slog.Logger

	thumbLimiter *RequestLimiter
	thumbs       *thumbnailCache
	source       catalog.Source
	galleryFS    fs.FS
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    slog.Default(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup loads content, prepares the catalog cache, and registers middleware
// and routes. Start calls it; tests may call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("blog: SessionSecret is required")
	}

	if a.Content == nil {
		content, err := LoadContent(a.Config.ContentFile)
		if err != nil {
			return fmt.Errorf("blog: load content: %w", err)
		}
		a.Content = content
	}

	if a.source == nil {
		a.source = catalog.NewFSSource(os.DirFS(a.Config.PostsDir), ".")
	}
	if a.galleryFS == nil {
		a.galleryFS = os.DirFS(a.Config.GalleryDir)
	}

	a.Cache = NewCatalogCache(a.source, a.Config.CatalogTTL,
		catalog.WithDefaults(a.Config.PostDefaults()),
		catalog.WithConcurrency(a.Config.BuildConcurrency),
		catalog.WithLogger(a.Logger.With("component", "catalog")),
	)
	a.thumbLimiter = NewRequestLimiter(60, time.Minute)
	a.thumbs = newThumbnailCache(a.galleryFS, a.Config.ThumbnailWidth, 128)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up, builds the catalog once, and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Cache.Warm(context.Background(), a.Logger); err != nil {
		return fmt.Errorf("blog: build catalog: %w", err)
	}
	a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Bundled assets (style.css, app.js) under /static/.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(embeddedFS)))))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/blogs/", a.handleBlogs)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/about/", a.handleAbout)
	e.GET("/friends/", a.handleFriends)
	e.GET("/gallery/", a.handleGallery)
	e.GET("/gallery/photo/:file", a.handlePhoto)
	e.GET("/gallery/thumb/:file", a.handleThumbnail)

	// Theme preference
	e.GET("/theme.css", a.handleThemeCSS)
	e.POST("/theme/", a.handleThemeToggle)

	// Feeds and JSON
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/posts", a.handleAPIPosts)
	e.GET("/api/categories", a.handleAPICategories)
	e.GET("/api/danmaku", a.handleAPIDanmaku)
}

// Close releases background resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.thumbLimiter != nil {
		a.thumbLimiter.Stop()
	}
	return nil
}
