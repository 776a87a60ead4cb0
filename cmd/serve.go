package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/server"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the resolution server",
	Long:  `start the resolution server and reconcile the tv library in the background`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		cfg := mustConfig(log)

		lockPath := cfg.Storage.FilePath + ".lock"
		lock := flock.New(lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			log.Fatalw("failed to acquire lock", zap.String("lock", lockPath), zap.Error(err))
		}
		if !ok {
			log.Fatalw("another server is already using the database", zap.String("lock", lockPath))
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warnw("failed to release lock", zap.Error(err))
			}
		}()

		m := mustManager(ctx, log, cfg)

		g, ctx := errgroup.WithContext(ctx)
		if cfg.Library.TVDir != "" {
			g.Go(func() error {
				return m.Run(ctx)
			})
		} else {
			log.Warnw("library.tv is not set, library reconcile is disabled")
		}

		g.Go(func() error {
			return server.New(log, m).Serve(ctx, cfg.Server.Port)
		})

		if err := g.Wait(); err != nil {
			log.Errorw("server stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
