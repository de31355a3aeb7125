package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/repository"
	"github.com/m-mizutani/kokoro/pkg/source"
	"github.com/m-mizutani/kokoro/pkg/usecase/aggregator"
	"github.com/m-mizutani/kokoro/pkg/usecase/board"
	"github.com/m-mizutani/kokoro/pkg/usecase/layout"
	"github.com/m-mizutani/kokoro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values shared by the commands
type config struct {
	logLevel string

	hitokoto *source.Hitokoto
	quotable *source.Quotable
	local    *source.Local
	registry *source.Registry
}

// newConfig builds the source instances whose flags the commands expose. The
// registry order is the aggregator's rotation order.
func newConfig() *config {
	hitokoto := source.NewHitokoto()
	quotable := source.NewQuotable()
	local := source.NewLocal()

	return &config{
		hitokoto: hitokoto,
		quotable: quotable,
		local:    local,
		registry: source.NewRegistry(hitokoto, quotable, local),
	}
}

// baseFlags returns flags every command carries
func (cfg *config) baseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug shows per-source fetch failures)",
			Value:       "info",
			Sources:     cli.EnvVars("KOKORO_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// flags returns the base flags plus every source flag
func (cfg *config) flags() []cli.Flag {
	return append(cfg.baseFlags(), cfg.registry.Flags()...)
}

// loggerContext installs a logger built from the parsed flags
func (cfg *config) loggerContext(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newAggregator initializes the sources and builds the aggregator. The local
// source doubles as the unconditional fallback.
func (cfg *config) newAggregator(ctx context.Context) (*aggregator.UseCase, error) {
	if err := cfg.registry.Init(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sources")
	}
	return aggregator.New(cfg.registry.Sources(), cfg.local), nil
}

// newBoard builds a board over an in-memory repository
func (cfg *config) newBoard(agg *aggregator.UseCase) *board.UseCase {
	return board.New(repository.NewMemory(), agg, layout.New())
}
