package blog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Content validation errors.
var (
	ErrFriendMissingURL    = errors.New("friend url is required")
	ErrFriendMissingName   = errors.New("friend name is required")
	ErrFriendUnknownGroup  = errors.New("friend category is not declared")
	ErrFriendInvalidStatus = errors.New("friend status must be 'active' or 'inactive'")
	ErrTimelineInvalidType = errors.New("timeline type must be one of: work, project, education")
	ErrPhotoMissingSource  = errors.New("photo needs a file or url")
)

// SiteContent is the static personal content shown around the posts.
type SiteContent struct {
	Profile    Profile         `yaml:"profile"`
	HomeNav    []NavItem       `yaml:"homeNav"`
	Nav        []NavItem       `yaml:"nav"`
	BlogInfo   BlogInfo        `yaml:"blogInfo"`
	BlogsIntro Section         `yaml:"blogsIntroduction"`
	Timeline   []TimelineItem  `yaml:"timeline"`
	Hobbies    []Hobby         `yaml:"hobbies"`
	Gallery    []PhotoCategory `yaml:"gallery"`
	Friends    FriendsPage     `yaml:"friends"`
	Danmaku    []string        `yaml:"danmaku"`
}

// Profile describes the site owner.
type Profile struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Avatar      string   `yaml:"avatar"`
	Skills      []string `yaml:"skills"`
	Contact     Contact  `yaml:"contact"`
}

// Contact lists ways to reach someone.
type Contact struct {
	Email  string `yaml:"email"`
	GitHub string `yaml:"github"`
	Blog   string `yaml:"blog"`
}

// NavItem is one navigation link.
type NavItem struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Icon string `yaml:"icon"`
}

// BlogInfo is the site header branding.
type BlogInfo struct {
	Title       string `yaml:"title"`
	Logo        string `yaml:"logo"`
	Description string `yaml:"description"`
}

// Section is a titled block of text with optional bullet points.
type Section struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// TimelineItem is one entry of the about page timeline.
type TimelineItem struct {
	Title       string   `yaml:"title"`
	Company     string   `yaml:"company"`
	Period      string   `yaml:"period"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
	Type        string   `yaml:"type"` // work, project or education
	Icon        string   `yaml:"icon"`
}

// Hobby is an interest card on the about page.
type Hobby struct {
	Name        string   `yaml:"name"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Level       int      `yaml:"level"` // 1-5
	Tags        []string `yaml:"tags"`
}

// PhotoCategory groups gallery photos.
type PhotoCategory struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
	Photos      []Photo `yaml:"photos"`
}

// Photo is either a file under the gallery directory or an external URL.
type Photo struct {
	File        string `yaml:"file"`
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
}

// Src returns the URL the full-size photo is served from.
func (p Photo) Src() string {
	if p.File != "" {
		return "/gallery/photo/" + PathEscape(p.File)
	}
	return p.URL
}

// Thumb returns the thumbnail URL, or the full URL for external photos.
func (p Photo) Thumb() string {
	if p.File != "" {
		return "/gallery/thumb/" + PathEscape(p.File)
	}
	return p.URL
}

// FriendsPage is the friend-links page.
type FriendsPage struct {
	Title       string           `yaml:"title"`
	Subtitle    string           `yaml:"subtitle"`
	Description string           `yaml:"description"`
	Categories  []FriendCategory `yaml:"categories"`
	Friends     []Friend         `yaml:"friends"`
	Apply       ApplyInfo        `yaml:"apply"`
}

// FriendCategory is a tab on the friends page.
type FriendCategory struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Friend is one linked site.
type Friend struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Avatar      string   `yaml:"avatar"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Status      string   `yaml:"status"` // active or inactive
	AddTime     string   `yaml:"addTime"`
}

// ApplyInfo explains how to request a friend link.
type ApplyInfo struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Requirements []string `yaml:"requirements"`
	Email        string   `yaml:"email"`
}

// ActiveFriends returns active friends, limited to category when it is non-empty.
func (c *SiteContent) ActiveFriends(category string) []Friend {
	var out []Friend
	for _, f := range c.Friends.Friends {
		if f.Status == "inactive" {
			continue
		}
		if category != "" && f.Category != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

// LocalPhoto reports whether file is listed as a gallery photo.
func (c *SiteContent) LocalPhoto(file string) bool {
	for _, cat := range c.Gallery {
		for _, p := range cat.Photos {
			if p.File != "" && p.File == file {
				return true
			}
		}
	}
	return false
}

func (c *SiteContent) setDefaults() {
	if len(c.Nav) == 0 {
		c.Nav = []NavItem{
			{Name: "首页", Path: "/", Icon: "🏠"},
			{Name: "Blogs", Path: "/blogs/", Icon: "📝"},
			{Name: "关于", Path: "/about/", Icon: "👤"},
			{Name: "朋友", Path: "/friends/", Icon: "👥"},
		}
	}
	if len(c.HomeNav) == 0 {
		c.HomeNav = c.Nav
	}
	if c.BlogsIntro.Title == "" {
		c.BlogsIntro.Title = "Blogs"
	}
	if c.Friends.Title == "" {
		c.Friends.Title = "朋友"
	}
	for i := range c.Friends.Friends {
		if c.Friends.Friends[i].Status == "" {
			c.Friends.Friends[i].Status = "active"
		}
	}
}

// Validate checks the content for broken references.
func (c *SiteContent) Validate() error {
	var errs []error
	groups := make(map[string]struct{}, len(c.Friends.Categories))
	for _, g := range c.Friends.Categories {
		groups[g.Key] = struct{}{}
	}
	for i, f := range c.Friends.Friends {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("friends[%d]: %w", i, ErrFriendMissingName))
		}
		if f.URL == "" {
			errs = append(errs, fmt.Errorf("friends[%d] %q: %w", i, f.Name, ErrFriendMissingURL))
		}
		if f.Status != "" && f.Status != "active" && f.Status != "inactive" {
			errs = append(errs, fmt.Errorf("friends[%d] %q: %w", i, f.Name, ErrFriendInvalidStatus))
		}
		if len(groups) > 0 && f.Category != "" {
			if _, ok := groups[f.Category]; !ok {
				errs = append(errs, fmt.Errorf("friends[%d] %q: %w: %s", i, f.Name, ErrFriendUnknownGroup, f.Category))
			}
		}
	}
	for i, item := range c.Timeline {
		switch item.Type {
		case "", "work", "project", "education":
		default:
			errs = append(errs, fmt.Errorf("timeline[%d] %q: %w", i, item.Title, ErrTimelineInvalidType))
		}
	}
	for i, cat := range c.Gallery {
		for j, p := range cat.Photos {
			if p.File == "" && p.URL == "" {
				errs = append(errs, fmt.Errorf("gallery[%d].photos[%d]: %w", i, j, ErrPhotoMissingSource))
			}
		}
	}
	return errors.Join(errs...)
}

// DecodeContent reads YAML content from r. Unknown keys are rejected.
func DecodeContent(r io.Reader) (*SiteContent, error) {
	var c SiteContent
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &c, nil
}

// LoadContent reads the content file at path. A missing file yields the
// default content.
func LoadContent(path string) (*SiteContent, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c := &SiteContent{}
			c.setDefaults()
			return c, nil
		}
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	return DecodeContent(f)
}
