package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

const readChunk = 32 * 1024

// ReadFrom copies r into sp until EOF or until ctx is done, then flushes
// the last partial line.
func ReadFrom(ctx context.Context, r io.Reader, sp *Splitter) error {
	buf := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		if n > 0 {
			_, _ = sp.Write(buf[:n])
		}
		if err != nil {
			sp.Flush()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read capture: %w", err)
		}
	}
}

// ReadFile loads a saved session log into sp.
func ReadFile(ctx context.Context, path string, sp *Splitter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open capture file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := ReadFrom(ctx, f, sp); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
