package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/brewkeeper/brewkeeper/internal/config"
	"github.com/brewkeeper/brewkeeper/internal/preferences"
	"github.com/brewkeeper/brewkeeper/internal/server"
)

func serveCmd() *cobra.Command {
	var port int
	var dev bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = appCtx.settings.Port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, appCtx, port, dev)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default $BREWKEEPER_PORT or 8080)")
	cmd.Flags().BoolVar(&dev, "dev", false, "disable response compression")
	return cmd
}

// serve runs the HTTP server and the preferences file watcher until ctx is
// cancelled or either of them fails.
func serve(ctx context.Context, a *app, port int, dev bool) error {
	watcher, err := config.NewWatcher(a.settings.PrefsPath, a.filePrefs, a.log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:        port,
		Log:         a.log,
		Inventory:   a.items,
		Recipes:     a.recipes,
		Preferences: preferences.NewStore(a.db.Conn(), watcher.Current, a.log),
		Defaults:    watcher.Current,
		APIToken:    a.settings.APIToken,
		DevMode:     dev,
	})
	if a.settings.APIToken == "" {
		a.log.Warn().Msg("BREWKEEPER_API_TOKEN is not set; the API accepts unauthenticated requests")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
