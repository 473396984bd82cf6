package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/backscroll/internal/capture"
	"github.com/colonyops/backscroll/internal/core/cite"
	"github.com/colonyops/backscroll/internal/core/config"
	"github.com/colonyops/backscroll/internal/core/linestore"
	"github.com/colonyops/backscroll/internal/core/logging"
	"github.com/colonyops/backscroll/internal/core/outbound"
	"github.com/colonyops/backscroll/internal/printer"
	"github.com/colonyops/backscroll/internal/tui/viewer"
	"github.com/colonyops/backscroll/pkg/utils"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

// outputFlags are the per-invocation overrides shared by view and run.
type outputFlags struct {
	history int
	target  string
	charset string
}

// flags returns the override flags. Local flags are not passed down to
// subcommands, which declare their own.
func (o *outputFlags) flags(local bool) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "history",
			Local:       local,
			Usage:       "history lines to keep (overrides history.lines, 0 disables)",
			Value:       -1,
			DefaultText: "from config",
			Destination: &o.history,
		},
		&cli.StringFlag{
			Name:        "target",
			Local:       local,
			Aliases:     []string{"t"},
			Usage:       "where cited lines go: stdout or a file, FIFO or device path",
			Sources:     cli.EnvVars("BACKSCROLL_TARGET"),
			Destination: &o.target,
		},
		&cli.StringFlag{
			Name:        "charset",
			Local:       local,
			Usage:       "character set cited lines are encoded in",
			Sources:     cli.EnvVars("BACKSCROLL_CHARSET"),
			Destination: &o.charset,
		},
	}
}

// apply copies the overrides that were set onto cfg.
func (o outputFlags) apply(cfg *config.Config) config.Config {
	out := *cfg
	if o.history >= 0 {
		lines := o.history
		out.History.Lines = &lines
	}
	if o.target != "" {
		out.Outbound.Target = o.target
	}
	if o.charset != "" {
		out.Outbound.Charset = o.charset
	}
	return out
}

// terminalSize reports the size of the controlling terminal, falling back
// to 80x24 when stdout is not one.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackCols, fallbackRows
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackCols, fallbackRows
	}
	return w, h
}

// captureTarget is a store sized for the terminal plus the splitter that
// fills it.
type captureTarget struct {
	store    *linestore.Store
	splitter *capture.Splitter
	rows     int
}

func newCaptureTarget(cfg config.Config, cols, rows int) (*captureTarget, error) {
	if cfg.Capture.Columns > 0 {
		cols = cfg.Capture.Columns
	}

	store, err := linestore.New(cfg.HistoryLines(), cols)
	if err != nil {
		return nil, fmt.Errorf("create line store: %w", err)
	}

	viewport := cfg.History.Viewport
	if viewport == 0 {
		viewport = max(rows-1, 1)
	}

	sp := capture.NewSplitter(store, capture.Options{
		TabWidth: cfg.Capture.TabWidth,
		Viewport: viewport,
	})
	return &captureTarget{store: store, splitter: sp, rows: rows}, nil
}

// openSink returns the sink for target and a function that finishes it.
// Standard output is buffered until finish so nothing is written under the
// viewer's alternate screen.
func openSink(target string, appendOut bool, stdout io.Writer, logger zerolog.Logger) (*outbound.WriterSink, func() error, error) {
	if target == "" || target == config.TargetStdout {
		held := utils.NewDeferredWriter(stdout)
		sink := outbound.NewWriterSink(held, logger)
		finish := func() error {
			sink.Flush()
			return held.Flush()
		}
		return sink, finish, nil
	}

	flag := os.O_WRONLY | os.O_CREATE
	if appendOut {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}

	f, err := os.OpenFile(target, flag, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open outbound target: %w", err)
	}

	sink := outbound.NewWriterSink(f, logger)
	finish := func() error {
		sink.Flush()
		return f.Close()
	}
	return sink, finish, nil
}

// viewSession runs one viewer over a filled store.
type viewSession struct {
	cfg    config.Config
	source string
	target *captureTarget
	width  int
	stdout io.Writer
}

func (s *viewSession) run(ctx context.Context) (viewer.Result, error) {
	ctx = logging.WithSessionID(ctx, uuid.NewString())
	ctx = logging.WithSource(ctx, s.source)
	logger := logging.Component("viewer").Hook(logging.ContextHook{})

	enc, err := outbound.NewEncoder(s.cfg.Outbound.Charset)
	if err != nil {
		return viewer.Result{}, err
	}

	sink, finish, err := openSink(s.cfg.Outbound.Target, s.cfg.AppendOutput(), s.stdout, logger)
	if err != nil {
		return viewer.Result{}, err
	}

	logger.Info().Ctx(ctx).
		Int("history", s.target.store.Capacity()).
		Int("filled", s.target.store.Filled()).
		Int("rows", s.target.splitter.Rows()).
		Str("target", s.cfg.Outbound.Target).
		Msg("viewer session started")

	m := viewer.New(viewer.Deps{
		Store:   s.target.store,
		Sink:    sink,
		Encoder: enc,
		Format: cite.Format{
			Prefix:     s.cfg.QuotePrefix(),
			LineEnding: s.cfg.LineEnding(),
		},
		MaxPattern: s.cfg.Search.MaxPattern,
		Keys:       viewer.DefaultKeyMap(),
		Logger:     logger,
		Ctx:        ctx,
	}, s.width, s.target.rows)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	// Keys come from the terminal even when the capture was piped in.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		if tty, err := os.Open("/dev/tty"); err == nil {
			defer func() { _ = tty.Close() }()
			opts = append(opts, tea.WithInput(tty))
		}
	}

	finalModel, runErr := tea.NewProgram(m, opts...).Run()
	if err := finish(); err != nil {
		logger.Error().Ctx(ctx).Err(err).Msg("failed to finish outbound target")
		if runErr == nil {
			runErr = fmt.Errorf("finish outbound target: %w", err)
		}
	}
	if runErr != nil {
		return viewer.Result{}, fmt.Errorf("run viewer: %w", runErr)
	}

	result := finalModel.(viewer.Model).Result()
	logger.Info().Ctx(ctx).
		Bool("cited", result.Cited).
		Int("lines", result.Lines).
		Int("bytes", sink.Sent()).
		Bool("aborted", result.Aborted).
		Msg("viewer session ended")
	return result, result.Err
}

// report prints the outcome of a session to the terminal. Nothing is
// printed for stdout targets, where the citation itself is the output.
func report(ctx context.Context, cfg config.Config, result viewer.Result) {
	if !result.Cited || cfg.Outbound.Target == config.TargetStdout {
		return
	}
	printer.Ctx(ctx).Successf("Cited lines %d-%d (%d lines) to %s", result.Start, result.End, result.Lines, cfg.Outbound.Target)
}
