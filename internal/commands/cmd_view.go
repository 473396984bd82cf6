package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/backscroll/internal/capture"
)

type ViewCmd struct {
	flags *Flags
	out   outputFlags
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags, out: outputFlags{history: -1}}
}

// Flags returns the view flags for the root command, where view is the
// default action.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return cmd.out.flags(true)
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Browse captured terminal output and cite lines from it",
		UsageText: "backscroll view [options] FILE|GLOB...",
		Description: `Loads one or more session logs into the history buffer and opens the
history viewer on it. Arguments may be doublestar globs such as 'logs/**/*.log';
matches are read in sorted order. Use '-' to read standard input.

Lines selected with the citation keys are quoted and written to the outbound
target once the range is complete.`,
		Flags:         cmd.out.flags(false),
		ShellComplete: CaptureFileCompleter(),
		Action:        cmd.Run,
	})
	return app
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return errors.New("no capture files given. Run 'backscroll view --help' for usage")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	cfg := cmd.out.apply(cmd.flags.Config)
	width, height := terminalSize()

	target, err := newCaptureTarget(cfg, width, height)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if path == "-" {
			err = capture.ReadFrom(ctx, os.Stdin, target.splitter)
		} else {
			err = capture.ReadFile(ctx, path, target.splitter)
		}
		if err != nil {
			return err
		}
	}

	log.Debug().
		Strs("paths", paths).
		Int("lines", target.splitter.Lines()).
		Int("rows", target.splitter.Rows()).
		Msg("captured files")

	session := &viewSession{
		cfg:    cfg,
		source: strings.Join(paths, ","),
		target: target,
		width:  width,
		stdout: c.Root().Writer,
	}
	result, err := session.run(ctx)
	if err != nil {
		return err
	}
	report(ctx, cfg, result)
	return nil
}

// expandPaths resolves glob arguments. Plain paths are kept as given so a
// missing file is reported by the reader, not silently dropped.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == "-" || !hasMeta(arg) {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
