package commands

import (
	"context"

	"github.com/urfave/cli/v3"
)

// NewApp builds the command tree. Hooks that touch the process (logging,
// config loading) are added by the caller.
func NewApp(flags *Flags, version string) *cli.Command {
	app := &cli.Command{
		Name:      "backscroll",
		Usage:     "Scroll back through terminal output and cite lines from it",
		UsageText: "backscroll [global options] [command] [command options] [FILE...]",
		Description: `backscroll loads terminal output into a scrollback buffer and opens a
serial-terminal style history viewer on it. Search it, page through it and
select a range of lines to quote back to the remote side.

Run 'backscroll FILE...' to browse session logs.
Run 'backscroll run -- CMD' to capture a command's output first.
Run 'backscroll keys' for the viewer keys.`,
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("BACKSCROLL_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/backscroll.log)",
				Sources:     cli.EnvVars("BACKSCROLL_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BACKSCROLL_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("BACKSCROLL_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	viewCmd := NewViewCmd(flags)

	app = viewCmd.Register(app)
	app = NewRunCmd(flags).Register(app)
	app = NewKeysCmd(flags).Register(app)
	app = NewInitCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	// Register view flags on root command
	app.Flags = append(app.Flags, viewCmd.Flags()...)

	// Browsing files is the default action when no subcommand is given
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return cli.ShowAppHelp(c)
		}
		return viewCmd.Run(ctx, c)
	}

	return app
}
