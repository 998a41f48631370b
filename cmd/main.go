package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/userdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "userdeck",
		Usage:    "Manage a scratch list of users from the terminal",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.Setup,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
