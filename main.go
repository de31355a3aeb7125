package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/kokoro/pkg/cli"
)

func main() {
	// A missing .env file is fine; flags and environment still apply.
	_ = godotenv.Load()

	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(err.Code)
	}
}
