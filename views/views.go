// Package views is the bundled look of the blog: html/template pages wrapped
// as templ components so they plug into blog.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/cainhappyfish/blog"
	"github.com/cainhappyfish/blog/catalog"
	"github.com/cainhappyfish/blog/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatDate": catalog.FormatDate,
	"pathEscape": blog.PathEscape,
	"joinTags":   blog.JoinTags,
	"jsonld":     func(s string) template.JS { return template.JS(s) },
	"isActive": func(current, path string) bool {
		if path == "/" {
			return current == "/"
		}
		return strings.HasPrefix(current, path)
	},
	"stars": func(level int) string {
		if level < 0 {
			level = 0
		}
		if level > 5 {
			level = 5
		}
		return strings.Repeat("★", level) + strings.Repeat("☆", 5-level)
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

// postView is a post with its body already rendered.
type postView struct {
	catalog.Post
	HTML template.HTML
}

type pageData struct {
	Page       blog.Page
	Posts      []catalog.Post
	Post       postView
	Related    []catalog.Post
	Categories []string
	Active     string
	Friends    []blog.Friend
}

// component executes the named template into a buffer first so a failing
// template never leaves a half-written page.
func component(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Default returns the bundled views.
func Default() blog.ViewFuncs {
	return blog.ViewFuncs{
		Home: func(page blog.Page, latest []catalog.Post) templ.Component {
			return component("home", pageData{Page: page, Posts: latest})
		},
		Blogs: func(page blog.Page, posts []catalog.Post, categories []string, active string) templ.Component {
			return component("blogs", pageData{Page: page, Posts: posts, Categories: categories, Active: active})
		},
		BlogList: func(page blog.Page, posts []catalog.Post, categories []string, active string) templ.Component {
			return component("bloglist", pageData{Page: page, Posts: posts, Categories: categories, Active: active})
		},
		Post: Post,
		About: func(page blog.Page) templ.Component {
			return component("about", pageData{Page: page})
		},
		Friends: func(page blog.Page, friends []blog.Friend, active string) templ.Component {
			return component("friends", pageData{Page: page, Friends: friends, Active: active})
		},
		Gallery: func(page blog.Page) templ.Component {
			return component("gallery", pageData{Page: page})
		},
		NotFound: func(page blog.Page) templ.Component {
			return component("notfound", pageData{Page: page})
		},
		ServerError: func(page blog.Page) templ.Component {
			return component("servererror", pageData{Page: page})
		},
	}
}

// Post renders a single article. The body is converted from Markdown at
// render time.
func Post(page blog.Page, post catalog.Post, related []catalog.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := markdown.Render(post.Body)
		if err != nil {
			return err
		}
		data := pageData{
			Page:    page,
			Post:    postView{Post: post, HTML: template.HTML(body)},
			Related: related,
		}
		return component("post", data).Render(ctx, w)
	})
}
