// Package catalog turns a set of Markdown documents into an immutable,
// date-ordered collection of posts.
package catalog

import (
	"context"
	"log/slog"
	"maps"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cainhappyfish/blog/frontmatter"
)

// DateLayout is the only accepted post date format.
const DateLayout = "2006-01-02"

// Post is the typed projection of one document.
type Post struct {
	Title    string
	Date     string
	Category string
	Tags     []string
	Summary  string
	Author   string
	ReadTime string
	Cover    string
	HasCover bool
	Slug     string

	// Body is the Markdown following the header.
	Body string
	// Extra holds every header key, recognized or not.
	Extra frontmatter.FrontMatter
}

// clone returns p with its own Tags and Extra. Catalog accessors hand out
// clones so callers cannot reach the shared backing data.
func (p Post) clone() Post {
	p.Tags = slices.Clone(p.Tags)
	p.Extra = maps.Clone(p.Extra)
	return p
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.clone()
	}
	return out
}

// Link returns the site-relative URL of the post page.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Defaults are the values used for optional fields a header leaves out.
type Defaults struct {
	Category string
	Summary  string
	Author   string
	ReadTime string
}

// DefaultValues returns the stock defaults.
func DefaultValues() Defaults {
	return Defaults{
		Category: "未分类",
		Summary:  "",
		Author:   "破酥",
		ReadTime: "5分钟",
	}
}

// Document is a named source of raw Markdown text.
type Document struct {
	Path string
	Load func(ctx context.Context) (string, error)
}

// Catalog is the sorted set of valid posts. It is never mutated after Build
// returns and may be shared between goroutines.
type Catalog struct {
	posts []Post
}

// New returns a catalog holding posts in the given order. Callers that want
// date ordering should use Build.
func New(posts []Post) *Catalog {
	return &Catalog{posts: clonePosts(posts)}
}

// Posts returns a copy of the ordered posts.
func (c *Catalog) Posts() []Post {
	if c == nil {
		return nil
	}
	return clonePosts(c.posts)
}

// Len returns the number of posts.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.posts)
}

// BySlug returns the post with the given slug.
func (c *Catalog) BySlug(slug string) (Post, bool) {
	if c == nil {
		return Post{}, false
	}
	for _, p := range c.posts {
		if p.Slug == slug {
			return p.clone(), true
		}
	}
	return Post{}, false
}

type options struct {
	defaults    Defaults
	concurrency int
	logger      *slog.Logger
}

// Option configures Build.
type Option func(*options)

// WithDefaults overrides the optional field defaults.
func WithDefaults(d Defaults) Option {
	return func(o *options) { o.defaults = d }
}

// WithConcurrency bounds how many documents are loaded at once (default 8).
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger used to report skipped documents.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build loads every document, parses its header and returns the posts sorted
// by date, newest first. A document that fails to load or lacks a title or
// date is skipped. The only error is cancellation of ctx.
func Build(ctx context.Context, docs []Document, opts ...Option) (*Catalog, error) {
	o := options{
		defaults:    DefaultValues(),
		concurrency: 8,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Results are written by index so the input order survives the fan-out.
	results := make([]*Post, len(docs))
	var mu sync.Mutex
	skipped := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, ok := loadPost(gctx, doc, o)
			if !ok {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			results[i] = &post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(docs))
	for _, p := range results {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	sortByDate(posts)

	o.logger.Debug("catalog built", "documents", len(docs), "posts", len(posts), "skipped", skipped)
	return &Catalog{posts: posts}, nil
}

// BuildFrom enumerates src and builds a catalog from its documents.
func BuildFrom(ctx context.Context, src Source, opts ...Option) (*Catalog, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return Build(ctx, docs, opts...)
}

func loadPost(ctx context.Context, doc Document, o options) (Post, bool) {
	if doc.Load == nil {
		o.logger.Error("document has no loader", "path", doc.Path)
		return Post{}, false
	}
	raw, err := doc.Load(ctx)
	if err != nil {
		o.logger.Error("error loading document", "path", doc.Path, "err", err)
		return Post{}, false
	}
	fm, body := frontmatter.Parse(raw)
	post, ok := project(fm, body, SlugFromPath(doc.Path), o.defaults)
	if !ok {
		o.logger.Debug("document skipped: title or date missing", "path", doc.Path)
	}
	return post, ok
}

// project maps a parsed header to a Post. Only scalar values count for
// scalar fields; a scalar tags value becomes a one-element list.
func project(fm frontmatter.FrontMatter, body, slug string, d Defaults) (Post, bool) {
	title, _ := fm.Scalar("title")
	date, _ := fm.Scalar("date")
	if title == "" || date == "" {
		return Post{}, false
	}
	p := Post{
		Title:    title,
		Date:     date,
		Category: scalarOr(fm, "category", d.Category),
		Summary:  scalarOr(fm, "summary", d.Summary),
		Author:   scalarOr(fm, "author", d.Author),
		ReadTime: scalarOr(fm, "readTime", d.ReadTime),
		Tags:     []string{},
		Slug:     slug,
		Body:     body,
		Extra:    fm,
	}
	if tags, ok := fm.Sequence("tags"); ok {
		p.Tags = tags
	} else if tag, ok := fm.Scalar("tags"); ok && tag != "" {
		p.Tags = []string{tag}
	}
	if cover, ok := fm.Scalar("cover"); ok && cover != "" {
		p.Cover = cover
		p.HasCover = true
	}
	return p, true
}

func scalarOr(fm frontmatter.FrontMatter, key, fallback string) string {
	if v, ok := fm.Scalar(key); ok && v != "" {
		return v
	}
	return fallback
}

// SlugFromPath returns the final path segment without its extension.
func SlugFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// sortByDate orders posts newest first. Unparseable dates go last; equal
// dates keep their relative order.
func sortByDate(posts []Post) {
	keys := make([]time.Time, len(posts))
	valid := make([]bool, len(posts))
	for i, p := range posts {
		if t, err := time.Parse(DateLayout, p.Date); err == nil {
			keys[i] = t
			valid[i] = true
		}
	}
	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if valid[ia] != valid[ib] {
			return valid[ia]
		}
		return keys[ia].After(keys[ib])
	})
	sorted := make([]Post, len(posts))
	for i, j := range idx {
		sorted[i] = posts[j]
	}
	copy(posts, sorted)
}
