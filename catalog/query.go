package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterByCategory returns the posts whose category equals category exactly,
// in catalog order.
func FilterByCategory(c *Catalog, category string) []Post {
	out := []Post{}
	if c == nil {
		return out
	}
	for _, p := range c.posts {
		if p.Category == category {
			out = append(out, p.clone())
		}
	}
	return out
}

// Categories returns the distinct categories in byte-wise ascending order.
func Categories(c *Catalog) []string {
	if c == nil {
		return []string{}
	}
	set := make(map[string]struct{})
	for _, p := range c.posts {
		set[p.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for cat := range set {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Latest returns the first n posts. n <= 0 yields an empty slice.
func Latest(c *Catalog, n int) []Post {
	if c == nil || n <= 0 {
		return []Post{}
	}
	if n > len(c.posts) {
		n = len(c.posts)
	}
	return clonePosts(c.posts[:n])
}

// Tags returns the distinct tags of all posts, sorted.
func Tags(c *Catalog) []string {
	if c == nil {
		return []string{}
	}
	set := make(map[string]struct{})
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if t = strings.TrimSpace(t); t != "" {
				set[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterByTag returns the posts carrying tag, compared case-insensitively.
func FilterByTag(c *Catalog, tag string) []Post {
	out := []Post{}
	if c == nil {
		return out
	}
	want := strings.ToLower(strings.TrimSpace(tag))
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == want {
				out = append(out, p.clone())
				break
			}
		}
	}
	return out
}

// FormatDate renders a YYYY-MM-DD date in long Chinese form, e.g. 2024年1月2日.
// Other input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
