package blog

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/cainhappyfish/blog/catalog"
)

// relatedLimit caps the related posts shown under an article.
const relatedLimit = 3

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// page builds the shared view data for the current request.
func (a *App) page(c echo.Context, title, description string) Page {
	if title == "" {
		title = a.Config.Name
	} else {
		title = title + " | " + a.Config.Name
	}
	if description == "" {
		description = a.Config.Description
	}
	return Page{
		Meta: PageMeta{
			Title:       title,
			Description: description,
			URL:         BuildURL(a.Config.URL, c.Request().URL.Path),
			OGType:      "website",
		},
		Site:      a.Config,
		Content:   a.Content,
		Theme:     a.currentTheme(c),
		CSRFToken: CsrfToken(c),
		Path:      c.Request().URL.Path,
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func (a *App) handleHome(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	p := a.page(c, "", "")
	p.Meta.JSONLD = WebsiteJsonLD(a.Config)
	return Render(c, a.Views.Home(p, catalog.Latest(cat, a.Config.LatestCount)))
}

func (a *App) handleBlogs(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	category := strings.TrimSpace(c.QueryParam("category"))
	tag := strings.TrimSpace(c.QueryParam("tag"))

	var posts []catalog.Post
	switch {
	case category != "":
		posts = catalog.FilterByCategory(cat, category)
	case tag != "":
		posts = catalog.FilterByTag(cat, tag)
	default:
		posts = cat.Posts()
	}
	categories := catalog.Categories(cat)

	p := a.page(c, a.Content.BlogsIntro.Title, a.Content.BlogsIntro.Description)
	if isHTMX(c) && c.QueryParam("partial") == "list" {
		return Render(c, a.Views.BlogList(p, posts, categories, category))
	}
	return Render(c, a.Views.Blogs(p, posts, categories, category))
}

func (a *App) handlePost(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	post, ok := cat.BySlug(c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, "404", "")))
	}
	related := FilterRelatedPosts(post, cat.Posts())
	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}
	p := a.page(c, post.Title, post.Summary)
	p.Meta.OGType = "article"
	p.Meta.JSONLD = BlogPostingJsonLD(post, a.Config)
	return Render(c, a.Views.Post(p, post, related))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(a.page(c, "About", a.Content.Profile.Description)))
}

func (a *App) handleFriends(c echo.Context) error {
	active := strings.TrimSpace(c.QueryParam("category"))
	p := a.page(c, a.Content.Friends.Title, a.Content.Friends.Description)
	return Render(c, a.Views.Friends(p, a.Content.ActiveFriends(active), active))
}

func (a *App) handleGallery(c echo.Context) error {
	return Render(c, a.Views.Gallery(a.page(c, "Gallery", "")))
}

func (a *App) handleSitemap(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, cat.Posts())
}

func (a *App) handleFeed(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, cat.Posts())
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", strings.TrimSuffix(a.Config.URL, "/"))
	return c.String(http.StatusOK, body)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blogs/")
}

// postJSON is the public JSON shape of a post.
type postJSON struct {
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	Author   string   `json:"author"`
	ReadTime string   `json:"readTime"`
	Cover    string   `json:"cover,omitempty"`
	Slug     string   `json:"slug"`
	Link     string   `json:"link"`
}

func toPostJSON(p catalog.Post) postJSON {
	return postJSON{
		Title:    p.Title,
		Date:     p.Date,
		Category: p.Category,
		Tags:     p.Tags,
		Summary:  p.Summary,
		Author:   p.Author,
		ReadTime: p.ReadTime,
		Cover:    p.Cover,
		Slug:     p.Slug,
		Link:     p.Link(),
	}
}

func (a *App) handleAPIPosts(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	var posts []catalog.Post
	if category := c.QueryParam("category"); category != "" {
		posts = catalog.FilterByCategory(cat, category)
	} else {
		posts = cat.Posts()
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		posts = catalog.Latest(catalog.New(posts), n)
	}
	out := make([]postJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostJSON(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleAPICategories(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, catalog.Categories(cat))
}

func (a *App) handleAPIDanmaku(c echo.Context) error {
	msgs := a.Content.Danmaku
	if msgs == nil {
		msgs = []string{}
	}
	return c.JSON(http.StatusOK, msgs)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, "404", "")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, "500", "")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
