package blog

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cainhappyfish/blog/theme"
)

const (
	sessionName = "site_prefs"
	themeKey    = "theme"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/gallery/thumb/") || strings.HasPrefix(path, "/gallery/photo/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:  middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup: "header:X-CSRF-Token,form:_csrf",
		CookieName:  "_csrf",
		CookiePath:  "/",
		CookieSameSite: func() http.SameSite {
			return http.SameSiteLaxMode
		}(),
		CookieSecure: a.Config.CookieSecure,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				strings.HasPrefix(path, "/static/") ||
				strings.HasPrefix(path, "/api/") ||
				strings.HasPrefix(path, "/gallery/thumb/") ||
				strings.HasPrefix(path, "/gallery/photo/") ||
				path == "/blog" ||
				path == "/theme.css" ||
				path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt"
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"), strings.HasPrefix(path, "/gallery/thumb/"), strings.HasPrefix(path, "/gallery/photo/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasPrefix(path, "/static/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/theme.css" || strings.HasPrefix(path, "/theme/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			// Pages embed the theme and a CSRF token, so they are per-visitor.
			c.Response().Header().Set("Cache-Control", "private, max-age=0, must-revalidate")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// currentTheme resolves the visitor's theme: saved preference, then the
// prefers-color-scheme client hint, then the configured default.
func (a *App) currentTheme(c echo.Context) theme.Theme {
	stored := ""
	if sess, err := session.Get(sessionName, c); err == nil {
		stored, _ = sess.Values[themeKey].(string)
	}
	hint := c.Request().Header.Get("Sec-CH-Prefers-Color-Scheme")
	fallback, _ := theme.Parse(a.Config.DefaultTheme)
	return theme.Resolve(stored, strings.Trim(hint, `"`), fallback)
}

func saveTheme(c echo.Context, t theme.Theme) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[themeKey] = string(t)
	return sess.Save(c.Request(), c.Response())
}

func (a *App) handleThemeCSS(c echo.Context) error {
	c.Response().Header().Set("Vary", "Cookie, Sec-CH-Prefers-Color-Scheme")
	c.Response().Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(theme.CSSVariables(a.currentTheme(c))))
}

// handleThemeToggle flips the saved theme, or sets it when the form carries
// an explicit "theme" value, then sends the visitor back where they were.
func (a *App) handleThemeToggle(c echo.Context) error {
	next := a.currentTheme(c).Toggle()
	if explicit := c.FormValue("theme"); explicit != "" {
		t, ok := theme.Parse(explicit)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown theme")
		}
		next = t
	}
	if err := saveTheme(c, next); err != nil {
		return err
	}
	if isHTMX(c) {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, safeReturnPath(c.FormValue("return")))
}

// safeReturnPath only allows site-relative paths.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return u.RequestURI()
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
