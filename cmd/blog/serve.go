package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cainhappyfish/blog"
	"github.com/cainhappyfish/blog/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog server",
	Long: `The serve command loads the site content, builds the post catalog, and
serves the site until interrupted. With --watch the catalog is rebuilt as
soon as a post changes instead of after the cache TTL.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "listen address")
	serveCmd.Flags().Bool("watch", false, "rebuild the catalog when posts change")
}

func runServe(cmd *cobra.Command, args []string) error {
	app := blog.New(appCfg.site(), views.Default(), blog.WithLogger(logger))
	defer app.Close()
	if err := app.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		go func() {
			if err := app.WatchPosts(ctx); err != nil {
				logger.Error("watch posts", "err", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}
