package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"
)

func quoteCommand() *cli.Command {
	var (
		cfg   = newConfig()
		count int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"n"},
			Usage:       "Number of quotes to fetch",
			Value:       1,
			Destination: &count,
		},
	}
	flags = append(flags, cfg.flags()...)

	return &cli.Command{
		Name:  "quote",
		Usage: "Fetch quotes to stdout",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			agg, err := cfg.newAggregator(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = cfg.local.Close()
			}()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr))
			s.Suffix = " fetching quotes..."

			for i := int64(0); i < count; i++ {
				s.Start()
				text := agg.NextQuote(ctx)
				s.Stop()

				if i > 0 {
					fmt.Fprintln(c.Root().Writer)
				}
				fmt.Fprintln(c.Root().Writer, text)
			}
			return nil
		},
	}
}
