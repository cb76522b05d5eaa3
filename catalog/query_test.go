package catalog

import (
	"reflect"
	"testing"
)

func sample() *Catalog {
	return New([]Post{
		{Slug: "e", Date: "2025-05-01", Category: "前端技术", Tags: []string{"Vue"}},
		{Slug: "d", Date: "2025-04-01", Category: "生活", Tags: []string{"life"}},
		{Slug: "c", Date: "2025-03-01", Category: "前端技术", Tags: []string{"css", "vue"}},
		{Slug: "b", Date: "2025-02-01", Category: "Backend"},
		{Slug: "a", Date: "2025-01-01", Category: "前端技术"},
	})
}

func slugs(posts []Post) []string {
	out := []string{}
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestLatest(t *testing.T) {
	c := sample()
	if got := slugs(Latest(c, 2)); !reflect.DeepEqual(got, []string{"e", "d"}) {
		t.Fatalf("expected first two posts, got %v", got)
	}
	if got := Latest(c, 0); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for n=0, got %#v", got)
	}
	if got := Latest(c, -3); len(got) != 0 {
		t.Fatalf("expected empty slice for negative n")
	}
	small := New(c.Posts()[:3])
	if got := Latest(small, 100); len(got) != 3 {
		t.Fatalf("expected whole catalog, got %d", len(got))
	}
}

func TestFilterByCategory(t *testing.T) {
	c := sample()
	if got := slugs(FilterByCategory(c, "前端技术")); !reflect.DeepEqual(got, []string{"e", "c", "a"}) {
		t.Fatalf("unexpected filter result %v", got)
	}
	if got := FilterByCategory(c, "前端"); len(got) != 0 {
		t.Fatalf("expected exact match only, got %v", slugs(got))
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sample())
	want := []string{"Backend", "前端技术", "生活"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := Categories(New(nil)); got == nil || len(got) != 0 {
		t.Fatalf("expected empty categories for empty catalog")
	}
}

func TestTagsAndFilterByTag(t *testing.T) {
	c := sample()
	if got := Tags(c); !reflect.DeepEqual(got, []string{"Vue", "css", "life", "vue"}) {
		t.Fatalf("unexpected tags %v", got)
	}
	if got := slugs(FilterByTag(c, "VUE")); !reflect.DeepEqual(got, []string{"e", "c"}) {
		t.Fatalf("unexpected tag filter %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-01-02"); got != "2024年1月2日" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDate("soon"); got != "soon" {
		t.Fatalf("expected unparseable input unchanged, got %q", got)
	}
}

func TestQueriesOnNilCatalog(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || len(Latest(c, 3)) != 0 || len(FilterByCategory(c, "x")) != 0 {
		t.Fatalf("expected nil catalog to behave as empty")
	}
}
