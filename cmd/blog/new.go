package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cainhappyfish/blog"
	"github.com/cainhappyfish/blog/scaffold"
)

var newPost scaffold.Post

var newCmd = &cobra.Command{
	Use:   "new [slug]",
	Short: "Create a new post",
	Long: `Create posts_dir/<slug>.md from the post template. The slug becomes the
post URL and is normalized to lowercase words joined by dashes; without an
argument it is derived from --title. Existing files are never overwritten.`,
	Example: `  blog new my-first-post --title "我的第一篇文章" --tags go,web
  blog new --title "Hello Echo"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := ""
		if len(args) == 1 {
			raw = args[0]
		}
		path, err := createPost(appCfg.PostsDir, raw, newPost, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
		return nil
	},
}

func init() {
	f := newCmd.Flags()
	f.StringVar(&newPost.Title, "title", "", "post title (required)")
	f.StringVar(&newPost.Date, "date", "", "publish date as YYYY-MM-DD (default today)")
	f.StringVar(&newPost.Category, "category", "", "post category (default 技术分享)")
	f.StringSliceVar(&newPost.Tags, "tags", nil, "comma separated tags")
	f.StringVar(&newPost.Summary, "summary", "", "short summary")
	f.StringVar(&newPost.Author, "author", "", "author (default 破酥)")
	f.StringVar(&newPost.ReadTime, "read-time", "", "estimated reading time (default 5分钟)")
	f.StringVar(&newPost.Cover, "cover", "", "cover image path")
}

// postSlug picks the file name for a new post: the slugified argument, or the
// slugified title when no argument is given. Slugify drops non-ASCII text, so
// a non-empty argument that slugifies to "" is used as written.
func postSlug(arg, title string) (string, error) {
	arg = strings.TrimSuffix(strings.TrimSpace(arg), ".md")
	if strings.ContainsAny(arg, `/\`) {
		return "", fmt.Errorf("invalid slug %q", arg)
	}
	source := arg
	if source == "" {
		source = title
	}
	slug := blog.Slugify(source)
	if slug == "" {
		slug = arg
	}
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from title %q; pass one as an argument", title)
	}
	if slug == "." || slug == ".." {
		return "", fmt.Errorf("invalid slug %q", slug)
	}
	return slug, nil
}

// createPost writes the scaffolded post and returns its path.
func createPost(dir, arg string, p scaffold.Post, now time.Time) (string, error) {
	slug, err := postSlug(arg, p.Title)
	if err != nil {
		return "", err
	}
	p.Normalize(scaffold.DefaultValues(), now)
	if err := p.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("file %s already exists", path)
	}
	if err != nil {
		return "", err
	}
	if err := scaffold.Render(f, p); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}
