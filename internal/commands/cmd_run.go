package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/backscroll/internal/capture"
	"github.com/colonyops/backscroll/internal/printer"
)

type RunCmd struct {
	flags *Flags
	out   outputFlags
	quiet bool
	dir   string
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags, out: outputFlags{history: -1}}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a command and browse its output when it exits",
		UsageText: "backscroll run [options] -- COMMAND [ARGS...]",
		Description: `Runs COMMAND on a pseudo terminal sized like the current one, capturing
everything it prints. Output is echoed while the command runs unless --quiet
is given. When the command exits the history viewer opens on the captured
output.

The command's exit status becomes backscroll's exit status.`,
		Flags: append(cmd.out.flags(false),
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "do not echo output while the command runs",
				Destination: &cmd.quiet,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "working directory for the command",
				Destination: &cmd.dir,
			},
		),
		Action: cmd.run,
	})
	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	argv := c.Args().Slice()
	if len(argv) == 0 {
		return errors.New("no command given. Run 'backscroll run --help' for usage")
	}

	cfg := cmd.out.apply(cmd.flags.Config)
	width, height := terminalSize()

	target, err := newCaptureTarget(cfg, width, height)
	if err != nil {
		return err
	}

	var echo io.Writer
	if !cmd.quiet {
		echo = os.Stdout
	}

	code, err := capture.Run(ctx, capture.RunOptions{
		Argv: argv,
		Dir:  cmd.dir,
		Rows: uint16(height),
		Cols: uint16(target.store.Width()),
		Echo: echo,
	}, target.splitter)
	if err != nil {
		return err
	}

	log.Debug().
		Strs("argv", argv).
		Int("exit_code", code).
		Int("rows", target.splitter.Rows()).
		Msg("command finished")

	session := &viewSession{
		cfg:    cfg,
		source: strings.Join(argv, " "),
		target: target,
		width:  width,
		stdout: c.Root().Writer,
	}
	result, err := session.run(ctx)
	if err != nil {
		return err
	}
	report(ctx, cfg, result)

	if code != 0 {
		printer.Ctx(ctx).Warnf("%s exited with status %d", argv[0], code)
		return cli.Exit("", code)
	}
	return nil
}
