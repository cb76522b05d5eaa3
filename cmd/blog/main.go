package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cainhappyfish/blog"
)

// version is set at build time via ldflags.
var version = "dev"

// fileConfig mirrors blog.SiteConfig with the keys accepted in blog.yaml and
// BLOG_* environment variables.
type fileConfig struct {
	Name             string        `mapstructure:"name"`
	URL              string        `mapstructure:"url"`
	Description      string        `mapstructure:"description"`
	Author           string        `mapstructure:"author"`
	Addr             string        `mapstructure:"addr"`
	PostsDir         string        `mapstructure:"posts_dir"`
	ContentFile      string        `mapstructure:"content_file"`
	GalleryDir       string        `mapstructure:"gallery_dir"`
	SessionSecret    string        `mapstructure:"session_secret"`
	CookieSecure     bool          `mapstructure:"cookie_secure"`
	CatalogTTL       time.Duration `mapstructure:"catalog_ttl"`
	BuildConcurrency int           `mapstructure:"build_concurrency"`
	LatestCount      int           `mapstructure:"latest_count"`
	DefaultTheme     string        `mapstructure:"default_theme"`
	ThumbnailWidth   int           `mapstructure:"thumbnail_width"`
	LogLevel         string        `mapstructure:"log_level"`
}

func (c fileConfig) site() blog.SiteConfig {
	return blog.SiteConfig{
		Name:             c.Name,
		URL:              c.URL,
		Description:      c.Description,
		Author:           c.Author,
		Addr:             c.Addr,
		PostsDir:         c.PostsDir,
		ContentFile:      c.ContentFile,
		GalleryDir:       c.GalleryDir,
		SessionSecret:    c.SessionSecret,
		CookieSecure:     c.CookieSecure,
		CatalogTTL:       c.CatalogTTL,
		BuildConcurrency: c.BuildConcurrency,
		LatestCount:      c.LatestCount,
		DefaultTheme:     c.DefaultTheme,
		ThumbnailWidth:   c.ThumbnailWidth,
	}
}

var (
	cfgFile string
	appCfg  fileConfig
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "blog",
	Short:         "A personal blog built with Go, Echo, and templ",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blog %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./blog.yaml)")
	flags.String("posts-dir", "content/blogs", "directory holding Markdown posts")
	flags.String("content-file", "content/site.yaml", "site content YAML file")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd, newCmd, postsCmd, categoriesCmd, versionCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("posts_dir", "content/blogs")
	v.SetDefault("content_file", "content/site.yaml")
	v.SetDefault("gallery_dir", "content/gallery")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("catalog_ttl", "5m")
	v.SetDefault("build_concurrency", 8)
	v.SetDefault("latest_count", 3)
	v.SetDefault("default_theme", "light")
	v.SetDefault("thumbnail_width", 480)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"posts_dir":    "posts-dir",
		"content_file": "content-file",
		"log_level":    "log-level",
		"addr":         "addr",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	logger = blog.NewLogger(appCfg.LogLevel, os.Stderr)
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
