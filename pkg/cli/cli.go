package cli

import (
	"context"

	"github.com/m-mizutani/kokoro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "kokoro",
		Usage: "Heart-board quote service",
		Commands: []*cli.Command{
			serveCommand(),
			quoteCommand(),
			layoutCommand(),
			boardCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
