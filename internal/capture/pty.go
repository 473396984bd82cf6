package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// drainTimeout bounds how long output is read after the command exits. A
// background child holding the terminal open would otherwise block forever.
const drainTimeout = 2 * time.Second

// RunOptions describes a command to capture.
type RunOptions struct {
	Argv []string
	Dir  string
	Env  []string // appended to the current environment
	Rows uint16
	Cols uint16
	// Echo, when set, receives the raw output as it arrives.
	Echo io.Writer
}

// Run starts opts.Argv on a pseudo terminal and feeds its output into sp.
// It returns once the command has exited and its output is read. A non-zero
// exit status is returned as the exit code, not as an error.
func Run(ctx context.Context, opts RunOptions, sp *Splitter) (int, error) {
	if len(opts.Argv) == 0 {
		return 0, errors.New("no command given")
	}
	if opts.Rows == 0 {
		opts.Rows = 24
	}
	if opts.Cols == 0 {
		opts.Cols = uint16(sp.store.Width())
	}

	cmd := exec.CommandContext(ctx, opts.Argv[0], opts.Argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("COLUMNS=%d", opts.Cols),
		fmt.Sprintf("LINES=%d", opts.Rows),
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols})
	if err != nil {
		return 0, fmt.Errorf("start %s: %w", opts.Argv[0], err)
	}
	defer func() { _ = ptmx.Close() }()

	var out io.Writer = sp
	if opts.Echo != nil {
		out = io.MultiWriter(sp, opts.Echo)
	}

	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				_, _ = out.Write(buf[:n])
			}
			if readErr != nil {
				// EIO once the last writer has gone, or a closed master
				return
			}
		}
	}()

	waitErr := cmd.Wait()

	select {
	case <-copyDone:
	case <-time.After(drainTimeout):
		_ = ptmx.Close()
		<-copyDone
	}
	sp.Flush()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && ctx.Err() == nil {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("wait for %s: %w", opts.Argv[0], waitErr)
	}
	return 0, nil
}
