package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/controller/server"
	"github.com/m-mizutani/kokoro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func serveCommand() *cli.Command {
	var (
		cfg  = newConfig()
		addr string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Aliases:     []string{"a"},
			Usage:       "Listen address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("KOKORO_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, cfg.flags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the heart-board JSON API",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			agg, err := cfg.newAggregator(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = cfg.local.Close()
			}()

			agg.Prewarm(ctx)
			logging.From(ctx).Info("cache prewarmed", "size", agg.CacheLen())

			ctrl := server.New(cfg.newBoard(agg), agg)
			srv := &http.Server{Addr: addr, Handler: ctrl.Router()}

			logging.From(ctx).Info("starting server", "addr", addr)

			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "server failed", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return eg.Wait()
		},
	}
}
