// Package scaffold renders the starter file for a new post.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/cainhappyfish/blog"
	"github.com/cainhappyfish/blog/catalog"
)

// Templates contains the scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var postTemplate = template.Must(template.New("post.md.tmpl").Funcs(template.FuncMap{
	"quote": func(s string) string { return `"` + s + `"` },
}).ParseFS(Templates, "templates/post.md.tmpl"))

// DefaultValues are the front-matter defaults for a new post. They differ
// from the catalog's read-side defaults in the category.
func DefaultValues() catalog.Defaults {
	d := catalog.DefaultValues()
	d.Category = "技术分享"
	return d
}

// Post holds the front-matter values for a new post.
type Post struct {
	Title    string
	Date     string
	Category string
	Tags     []string
	Summary  string
	Author   string
	ReadTime string
	Cover    string
}

// Normalize fills empty fields from d, dates the post today (in now's
// location) when no date is given, and cleans the tag list. Commas are
// removed from tags since they separate list items in the header.
func (p *Post) Normalize(d catalog.Defaults, now time.Time) {
	if p.Date == "" {
		p.Date = now.Format(catalog.DateLayout)
	}
	if p.Category == "" {
		p.Category = d.Category
	}
	if p.Author == "" {
		p.Author = d.Author
	}
	if p.ReadTime == "" {
		p.ReadTime = d.ReadTime
	}
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = strings.ReplaceAll(t, ",", "")
	}
	p.Tags = blog.FilterEmpty(tags)
}

// Validate checks the fields the catalog requires and rejects values the
// header parser would not read back as written.
func (p Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("scaffold: title is required")
	}
	fields := []struct{ name, value string }{
		{"title", p.Title},
		{"category", p.Category},
		{"summary", p.Summary},
		{"author", p.Author},
		{"readTime", p.ReadTime},
		{"cover", p.Cover},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("scaffold: %s must be a single line", f.name)
		}
		if v := strings.TrimSpace(f.value); strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
			return fmt.Errorf("scaffold: %s %q would be read back as a list", f.name, f.value)
		}
	}
	for _, t := range p.Tags {
		if strings.ContainsAny(t, "\r\n[]") {
			return fmt.Errorf("scaffold: tag %q contains a line break or bracket", t)
		}
	}
	if _, err := time.Parse(catalog.DateLayout, p.Date); err != nil {
		return fmt.Errorf("scaffold: date %q is not YYYY-MM-DD", p.Date)
	}
	return nil
}

// Render writes the post file for p to w.
func Render(w io.Writer, p Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := postTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("scaffold: execute template: %w", err)
	}
	return nil
}
