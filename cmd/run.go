package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/userdeck/internal/formatter"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/script"
	"github.com/desertthunder/userdeck/internal/services"
	"github.com/desertthunder/userdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// stepOutput is one line of `run --each --format json`.
type stepOutput struct {
	Step     int             `json:"step"`
	Intent   string          `json:"intent"`
	Elapsed  string          `json:"elapsed"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// Run replays an intent script and prints the final state, or the state after every step with --each.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("script")
	if path == "" {
		return fmt.Errorf("%w: script path is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	r.logger.Debug("loaded script", "path", path, "name", s.Name, "steps", len(s.Steps))

	sim := services.NewSimulated(r.logger)
	runner := script.NewRunner(r.newOrchestrator(ctx, sim), sim, r.logger)

	opts := renderOpts{
		format: format,
		render: cmd.Bool("render"),
		style:  cmd.String("style"),
		width:  int(cmd.Int("width")),
	}

	var each func(script.Result) error
	if cmd.Bool("each") {
		each = func(res script.Result) error {
			return r.writeStep(res, opts)
		}
	}

	last, err := runner.Run(s, each)
	if err != nil {
		return err
	}
	r.logger.Info("script finished", "steps", len(s.Steps), "elapsed", runner.Elapsed())

	if each != nil {
		return nil
	}
	return r.writeSnapshot(last.Snapshot, opts)
}

type renderOpts struct {
	format formatter.Format
	render bool
	style  string
	width  int
}

func (r *Runner) writeStep(res script.Result, opts renderOpts) error {
	if opts.format == formatter.FormatJSON {
		return r.writeJSON(stepOutput{
			Step:     res.Index + 1,
			Intent:   res.Step.String(),
			Elapsed:  res.Elapsed.String(),
			Snapshot: res.Snapshot,
		}, false)
	}

	header := fmt.Sprintf("step %d: %s (t=%s)", res.Index+1, res.Step, res.Elapsed)
	if err := r.writePlain("%s\n%s\n", header, strings.Repeat("─", len([]rune(header)))); err != nil {
		return err
	}
	if err := r.writeSnapshot(res.Snapshot, opts); err != nil {
		return err
	}
	return r.writePlain("\n")
}

func (r *Runner) writeSnapshot(snap models.Snapshot, opts renderOpts) error {
	data, err := formatter.Export(snap, opts.format, r.config.UI.Title)
	if err != nil {
		return err
	}

	if opts.format == formatter.FormatMarkdown && opts.render {
		out, err := formatter.RenderMarkdown(data, opts.style, opts.width)
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	}

	if err := r.writeBytes(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		return r.writePlain("\n")
	}
	return nil
}
