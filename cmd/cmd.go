// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/userdeck/internal/formatter"
	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// tuiCommand launches the interactive interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui", "interactive"},
		Usage:   "Launch the interactive terminal interface",
		Action:  r.TUI,
	}
}

// runCommand replays an intent script without a terminal
func runCommand(r *Runner) *cli.Command {
	formats := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		formats[i] = string(f)
	}

	return &cli.Command{
		Name:  "run",
		Usage: "Replay a YAML intent script and print the resulting state",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "script"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (" + strings.Join(formats, ", ") + ")",
				Value:   string(formatter.FormatPlain),
			},
			&cli.BoolFlag{
				Name:  "each",
				Usage: "Print the state after every step",
			},
			&cli.BoolFlag{
				Name:  "render",
				Usage: "Render markdown output for the terminal",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Markdown style used with --render (dark, light, notty, ascii)",
				Value: "notty",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Wrap width used with --render",
				Value: 100,
			},
		},
		Action: r.Run,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration to the --config path",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}
