package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cainhappyfish/blog/catalog"
)

var (
	postsCategory string
	postsLimit    int
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		posts := cat.Posts()
		if postsCategory != "" {
			posts = catalog.FilterByCategory(cat, postsCategory)
		}
		if postsLimit > 0 {
			posts = catalog.Latest(catalog.New(posts), postsLimit)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSLUG\tCATEGORY\tTITLE")
		for _, p := range posts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, p.Slug, p.Category, p.Title)
		}
		return w.Flush()
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List post categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		for _, c := range catalog.Categories(cat) {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	postsCmd.Flags().StringVar(&postsCategory, "category", "", "only posts in this category")
	postsCmd.Flags().IntVar(&postsLimit, "limit", 0, "show at most this many posts")
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	site := appCfg.site()
	src := catalog.NewFSSource(os.DirFS(appCfg.PostsDir), ".")
	return catalog.BuildFrom(cmd.Context(), src,
		catalog.WithDefaults(site.PostDefaults()),
		catalog.WithConcurrency(appCfg.BuildConcurrency),
		catalog.WithLogger(logger),
	)
}
