package blog

import "github.com/cainhappyfish/blog/theme"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Page is the request-scoped data every view receives.
type Page struct {
	Meta      PageMeta
	Site      SiteConfig
	Content   *SiteContent
	Theme     theme.Theme
	CSRFToken string
	Path      string
}
