package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cainhappyfish/blog"
	"github.com/cainhappyfish/blog/catalog"
	"github.com/cainhappyfish/blog/theme"
)

func testPage() blog.Page {
	content := &blog.SiteContent{
		Profile:  blog.Profile{Name: "破酥", Title: "Go developer"},
		BlogInfo: blog.BlogInfo{Title: "破酥的博客"},
		Nav:      []blog.NavItem{{Name: "首页", Path: "/"}, {Name: "Blogs", Path: "/blogs/"}},
		Gallery: []blog.PhotoCategory{{
			Title:  "旅行",
			Photos: []blog.Photo{{File: "sea.jpg", Title: "海"}},
		}},
	}
	return blog.Page{
		Meta:      blog.PageMeta{Title: "Test | Blog", URL: "http://localhost:3000/", OGType: "website"},
		Site:      blog.SiteConfig{Name: "Blog", Author: "破酥"},
		Content:   content,
		Theme:     theme.Dark,
		CSRFToken: "tok",
		Path:      "/blogs/",
	}
}

func renderString(t *testing.T, fn func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func samplePost() catalog.Post {
	return catalog.Post{
		Title:    "Hello <World>",
		Date:     "2024-01-02",
		Category: "技术分享",
		Tags:     []string{"go", "web"},
		Summary:  "A summary",
		Author:   "破酥",
		ReadTime: "5分钟",
		Slug:     "hello",
		Body:     "# Heading\n\nSome **bold** text.\n",
	}
}

func TestHomeListsLatestPosts(t *testing.T) {
	v := Default()
	out := renderString(t, func(buf *bytes.Buffer) error {
		return v.Home(testPage(), []catalog.Post{samplePost()}).Render(context.Background(), buf)
	})
	for _, want := range []string{
		`data-theme="dark"`,
		"Hello &lt;World&gt;",
		`href="/blog/hello/"`,
		"2024年1月2日",
		"破酥的博客",
		`name="_csrf" value="tok"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home output missing %q", want)
		}
	}
}

func TestPostRendersMarkdownBody(t *testing.T) {
	page := testPage()
	page.Meta.JSONLD = `{"@type":"BlogPosting"}`
	out := renderString(t, func(buf *bytes.Buffer) error {
		return Post(page, samplePost(), nil).Render(context.Background(), buf)
	})
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %s", out)
	}
	if !strings.Contains(out, `<h1 id="heading">Heading</h1>`) {
		t.Errorf("expected heading with id")
	}
	if !strings.Contains(out, `{"@type":"BlogPosting"}`) {
		t.Errorf("expected raw json-ld block")
	}
	if strings.Contains(out, "相关文章") {
		t.Errorf("related section should be hidden without related posts")
	}
}

func TestBlogListMarksActiveCategory(t *testing.T) {
	v := Default()
	out := renderString(t, func(buf *bytes.Buffer) error {
		return v.Blogs(testPage(), []catalog.Post{samplePost()}, []string{"技术分享", "生活"}, "生活").Render(context.Background(), buf)
	})
	if !strings.Contains(out, `class="active">生活</a>`) {
		t.Errorf("expected active category link")
	}
	if !strings.Contains(out, `id="post-list"`) {
		t.Errorf("expected post list container")
	}
}

func TestBlogListPartialHasNoLayout(t *testing.T) {
	v := Default()
	out := renderString(t, func(buf *bytes.Buffer) error {
		return v.BlogList(testPage(), nil, nil, "").Render(context.Background(), buf)
	})
	if strings.Contains(out, "<html") {
		t.Errorf("partial should not include the layout")
	}
	if !strings.Contains(out, "还没有文章") {
		t.Errorf("expected empty state, got %q", out)
	}
}

func TestGalleryUsesThumbnailRoutes(t *testing.T) {
	v := Default()
	out := renderString(t, func(buf *bytes.Buffer) error {
		return v.Gallery(testPage()).Render(context.Background(), buf)
	})
	if !strings.Contains(out, `src="/gallery/thumb/sea.jpg"`) {
		t.Errorf("expected thumbnail src")
	}
	if !strings.Contains(out, `href="/gallery/photo/sea.jpg"`) {
		t.Errorf("expected full photo link")
	}
}

func TestErrorPages(t *testing.T) {
	v := Default()
	notFound := renderString(t, func(buf *bytes.Buffer) error {
		return v.NotFound(testPage()).Render(context.Background(), buf)
	})
	if !strings.Contains(notFound, "404") {
		t.Errorf("expected 404 page")
	}
	serverErr := renderString(t, func(buf *bytes.Buffer) error {
		return v.ServerError(testPage()).Render(context.Background(), buf)
	})
	if !strings.Contains(serverErr, "500") {
		t.Errorf("expected 500 page")
	}
}

func TestPagesRenderWithoutContent(t *testing.T) {
	page := testPage()
	page.Content = nil
	v := Default()
	renderString(t, func(buf *bytes.Buffer) error {
		return v.About(page).Render(context.Background(), buf)
	})
	renderString(t, func(buf *bytes.Buffer) error {
		return v.Friends(page, nil, "").Render(context.Background(), buf)
	})
}
