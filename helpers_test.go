package blog

import (
	"encoding/json"
	"testing"

	"github.com/cainhappyfish/blog/catalog"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":   "hello-world",
		"  Go 1.24 notes": "go-1-24-notes",
		"中文标题":            "",
		"trailing---":     "trailing",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://blog.example", "blog", "hello"); got != "https://blog.example/blog/hello/" {
		t.Fatalf("BuildURL = %q", got)
	}
	if got := BuildURL("https://blog.example/sub/", "about"); got != "https://blog.example/sub/about/" {
		t.Fatalf("BuildURL with base path = %q", got)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := catalog.Post{Slug: "a", Category: "Go", Tags: []string{"Web"}}
	posts := []catalog.Post{
		current,
		{Slug: "b", Category: "Go"},
		{Slug: "c", Category: "生活", Tags: []string{" web "}},
		{Slug: "d", Category: "生活", Tags: []string{"travel"}},
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 2 || related[0].Slug != "b" || related[1].Slug != "c" {
		t.Fatalf("related = %+v", related)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := catalog.Post{
		Title:    "Hello",
		Date:     "2024-01-02",
		Category: "Go",
		Author:   "破酥",
		Slug:     "hello",
		Tags:     []string{"go", "web"},
		Cover:    "/img/c.png",
		HasCover: true,
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(post, SiteConfig{Name: "Blog", URL: "https://blog.example", Author: "site"})), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data["url"] != "https://blog.example/blog/hello/" {
		t.Fatalf("url = %v", data["url"])
	}
	if author := data["author"].(map[string]any); author["name"] != "破酥" {
		t.Fatalf("post author should win, got %v", author["name"])
	}
	if data["keywords"] != "go, web" || data["articleSection"] != "Go" || data["image"] != "/img/c.png" {
		t.Fatalf("unexpected json-ld %v", data)
	}
}

func TestBuildFeed(t *testing.T) {
	posts := []catalog.Post{
		{Title: "New", Date: "2024-03-01", Category: "Go", Tags: []string{"go"}, Author: "破酥", Slug: "new"},
		{Title: "Odd", Date: "someday", Category: "生活", Slug: "odd"},
	}
	feed := buildFeed(SiteConfig{Name: "Blog", URL: "https://blog.example"}, posts)
	items := feed.Channel.Items
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].PubDate == "" || items[1].PubDate != "" {
		t.Fatalf("pubDate should only be set for valid dates: %q %q", items[0].PubDate, items[1].PubDate)
	}
	if items[0].Creator != "破酥" {
		t.Fatalf("creator = %q", items[0].Creator)
	}
	if len(items[0].Categories) != 2 || items[0].Categories[0] != "Go" {
		t.Fatalf("categories = %v", items[0].Categories)
	}
}

func TestBuildFeedLimit(t *testing.T) {
	posts := make([]catalog.Post, feedLimit+5)
	for i := range posts {
		posts[i] = catalog.Post{Title: "p", Date: "2024-01-01", Slug: "p"}
	}
	if got := len(buildFeed(SiteConfig{URL: "https://blog.example"}, posts).Channel.Items); got != feedLimit {
		t.Fatalf("items = %d, want %d", got, feedLimit)
	}
}

func TestBuildSitemap(t *testing.T) {
	posts := []catalog.Post{
		{Slug: "new", Date: "2024-03-01"},
		{Slug: "odd", Date: "someday"},
	}
	sm := buildSitemap("https://blog.example", posts)
	if len(sm.URLs) != 7 {
		t.Fatalf("urls = %d", len(sm.URLs))
	}
	if sm.URLs[1].LastMod != "2024-03-01" {
		t.Fatalf("blogs lastmod = %q", sm.URLs[1].LastMod)
	}
	last := sm.URLs[len(sm.URLs)-1]
	if last.Loc != "https://blog.example/blog/odd/" || last.LastMod != "" {
		t.Fatalf("invalid dates should have no lastmod: %+v", last)
	}
}
