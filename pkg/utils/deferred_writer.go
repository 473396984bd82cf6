// Package utils holds small io helpers.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory and passes them to its destination
// only on Flush. It lets output meant for a terminal wait until a full
// screen program has released it. Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	dst io.Writer
	buf bytes.Buffer
}

// NewDeferredWriter returns a writer that flushes to dst.
func NewDeferredWriter(dst io.Writer) *DeferredWriter {
	return &DeferredWriter{dst: dst}
}

// Write stores data in the internal buffer.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Len is the number of bytes waiting.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush writes everything held to the destination and clears the buffer.
// Bytes the destination did not accept are dropped.
func (d *DeferredWriter) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 || d.dst == nil {
		d.buf.Reset()
		return nil
	}

	_, err := d.buf.WriteTo(d.dst)
	d.buf.Reset()
	return err
}
