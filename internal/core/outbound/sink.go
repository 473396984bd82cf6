// Package outbound carries bytes toward the remote side of a session.
package outbound

import (
	"bufio"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Sink accepts bytes for the remote peer. Send does not report failures;
// a sink deals with its own I/O errors.
type Sink interface {
	Send(b byte)
}

// WriterSink buffers bytes onto an io.Writer. Write errors are logged once
// and later bytes are dropped.
type WriterSink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	logger zerolog.Logger
	failed bool
	sent   int
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer, logger zerolog.Logger) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), logger: logger}
}

// Send implements Sink.
func (s *WriterSink) Send(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return
	}
	if err := s.w.WriteByte(b); err != nil {
		s.fail(err)
		return
	}
	s.sent++
}

// Flush pushes buffered bytes to the writer.
func (s *WriterSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return
	}
	if err := s.w.Flush(); err != nil {
		s.fail(err)
	}
}

// Sent is the number of bytes accepted.
func (s *WriterSink) Sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

func (s *WriterSink) fail(err error) {
	s.failed = true
	s.logger.Error().Err(err).Int("sent", s.sent).Msg("outbound write failed, dropping further output")
}

// Recorder is an in-memory Sink.
type Recorder struct {
	buf []byte
}

// Send implements Sink.
func (r *Recorder) Send(b byte) {
	r.buf = append(r.buf, b)
}

// Bytes returns everything sent so far.
func (r *Recorder) Bytes() []byte {
	return r.buf
}

// String returns everything sent so far.
func (r *Recorder) String() string {
	return string(r.buf)
}

// SendString pushes every byte of s into sink.
func SendString(sink Sink, s string) {
	for i := 0; i < len(s); i++ {
		sink.Send(s[i])
	}
}
