package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/userdeck/internal/services"
	"github.com/desertthunder/userdeck/internal/shared"
	"github.com/desertthunder/userdeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	r.logger.Info("starting TUI", "config", r.configPath)

	orch := r.newOrchestrator(ctx, services.NewSimulated(r.logger))
	return ui.Run(ui.Options{
		Context:      ctx,
		Orchestrator: orch,
		Logger:       r.logger,
		Title:        r.config.UI.Title,
		Palette:      ui.PaletteFromConfig(r.config.UI.Colors),
	})
}
