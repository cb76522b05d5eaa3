package blog

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cainhappyfish/blog/catalog"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func buildSitemap(base string, posts []catalog.Post) sitemapURLSet {
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "blogs")},
		{Loc: BuildURL(base, "about")},
		{Loc: BuildURL(base, "friends")},
		{Loc: BuildURL(base, "gallery")},
	}
	if len(posts) > 0 {
		urls[1].LastMod = lastMod(posts[0].Date)
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.Slug),
			LastMod: lastMod(p.Date),
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

// lastMod drops dates the sitemap format would reject.
func lastMod(date string) string {
	if _, err := time.Parse(catalog.DateLayout, date); err != nil {
		return ""
	}
	return date
}

func (a *App) renderSitemap(c echo.Context, posts []catalog.Post) error {
	sitemap := buildSitemap(a.Config.URL, posts)
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
