package httpbody

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"dqx0.com/go/httpbody/internal/http1"
)

// Serialize writes b to sink exactly once.
//
// Strict bodies are written as a single operation. Streamed bodies are
// copied chunk by chunk in source order, one in-flight write at a time; a
// declared length is validated against the running total. Chunked bodies are
// framed as "<hex size>\r\n<bytes>\r\n" per non-empty chunk with a single
// "0\r\n\r\n" terminator; empty source chunks are skipped so they cannot be
// mistaken for the terminator.
//
// The body's source is released on every exit path. Write failures surface
// as ErrSinkWrite, source failures as ErrSourceRead; nothing is retried, and
// bytes already on the wire stay there.
func Serialize(ctx context.Context, b Body, sink io.Writer) error {
	if err := b.take(); err != nil {
		return err
	}
	switch t := b.(type) {
	case *Strict:
		return writeStrict(sink, t.Bytes)
	case *Streamed:
		st := &streamer{src: t.Source, sink: sink, declared: t.Length}
		return st.run(ctx)
	case *Chunked:
		st := &streamer{src: t.Source, sink: sink, declared: -1, chunked: true}
		return st.run(ctx)
	default:
		return fmt.Errorf("httpbody: unknown body variant %T", b)
	}
}

func writeStrict(sink io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := sink.Write(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: %v", ErrSinkWrite, io.ErrShortWrite)
	}
	return nil
}

type streamState int

const (
	stateIdle streamState = iota
	stateStreaming
	stateTerminated
)

// streamer drives one Streamed or Chunked body. Idle until the first pull,
// Streaming while chunks flow, Terminated on source exhaustion or the first
// failure; no transition leaves Terminated.
type streamer struct {
	src      Source
	sink     io.Writer
	declared int64 // -1 when unknown
	chunked  bool

	state   streamState
	written int64
}

func (s *streamer) run(ctx context.Context) (err error) {
	if s.state == stateTerminated {
		return ErrBodyConsumed
	}
	defer func() {
		s.state = stateTerminated
		err = multierr.Append(err, s.src.Close())
	}()
	for {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		p, rerr := s.src.Next(ctx)
		if len(p) > 0 {
			s.state = stateStreaming
			if werr := s.writeChunk(p); werr != nil {
				return werr
			}
		}
		switch {
		case rerr == nil:
			continue
		case rerr == io.EOF:
			return s.finish()
		case errors.Is(rerr, context.Canceled) || errors.Is(rerr, context.DeadlineExceeded):
			return rerr
		default:
			return fmt.Errorf("%w: %v", ErrSourceRead, rerr)
		}
	}
}

// writeChunk writes one non-empty chunk and flushes it through a buffering
// sink, preserving backpressure: the next pull does not happen until this
// chunk is fully written.
func (s *streamer) writeChunk(p []byte) error {
	if s.chunked {
		if _, err := http1.WriteChunk(s.sink, p); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
	} else {
		n, err := s.sink.Write(p)
		s.written += int64(n)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
		if n != len(p) {
			return fmt.Errorf("%w: %v", ErrSinkWrite, io.ErrShortWrite)
		}
		if s.declared >= 0 && s.written > s.declared {
			return fmt.Errorf("%w: wrote %d bytes, declared %d", ErrLengthMismatch, s.written, s.declared)
		}
	}
	return s.flush()
}

func (s *streamer) finish() error {
	if s.chunked {
		if err := http1.EndChunked(s.sink); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
		return s.flush()
	}
	if s.declared >= 0 && s.written != s.declared {
		return fmt.Errorf("%w: wrote %d bytes, declared %d", ErrLengthMismatch, s.written, s.declared)
	}
	return nil
}

func (s *streamer) flush() error {
	f, ok := s.sink.(Flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}
