package httpbody

import (
	"context"
	"io"

	"github.com/valyala/bytebufferpool"
)

// readerChunkSize is the read size for reader-backed sources. Close to a
// typical socket write buffer; larger chunks just sit in the bufio layer.
const readerChunkSize = 32 << 10

// Source is a pull-based provider of body byte chunks.
//
// Next returns the next chunk, or io.EOF after the final one. The returned
// slice is only valid until the following Next or Close call. A Source has
// at-most-one-consumer semantics and is not restartable: once drained it
// keeps returning io.EOF.
//
// Close releases the underlying resource (file handle, buffer, stream) and
// must be safe to call more than once. After Close, Next returns io.EOF.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

type bytesSource struct {
	b    []byte
	done bool
}

// NewBytesSource returns a Source yielding b as a single chunk.
func NewBytesSource(b []byte) Source {
	return &bytesSource{b: b}
}

func (s *bytesSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.b, nil
}

func (s *bytesSource) Close() error {
	s.done = true
	return nil
}

type readerSource struct {
	r io.Reader
	// buf holds the chunk most recently handed to the consumer; it is
	// returned to the pool on the next pull or on Close.
	buf    *bytebufferpool.ByteBuffer
	rerr   error // deferred read error, reported after its partial chunk
	closed bool
}

// NewReaderSource returns a Source that pulls chunks from r. Reads go into
// pooled buffers, so a chunk is only valid until the next pull. If r is an
// io.Closer it is closed when the source is released.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{r: r}
}

func (s *readerSource) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.rerr != nil {
		err := s.rerr
		s.rerr = nil
		return nil, err
	}
	if s.buf == nil {
		s.buf = bytebufferpool.Get()
	}
	if cap(s.buf.B) < readerChunkSize {
		s.buf.B = make([]byte, readerChunkSize)
	}
	p := s.buf.B[:readerChunkSize]
	n, err := s.r.Read(p)
	if n > 0 {
		if err != nil && err != io.EOF {
			s.rerr = err // report after the bytes we did get
		} else if err == io.EOF {
			s.rerr = io.EOF
		}
		return p[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

func (s *readerSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.buf != nil {
		bytebufferpool.Put(s.buf)
		s.buf = nil
	}
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type chanSource struct {
	ch     <-chan []byte
	closed bool
}

// NewChanSource returns a Source fed by ch. The sequence ends when ch is
// closed. Next blocks on the channel, so ctx cancellation is the consumer's
// way out of a stalled producer.
func NewChanSource(ch <-chan []byte) Source {
	return &chanSource{ch: ch}
}

func (s *chanSource) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, io.EOF
	}
	select {
	case p, ok := <-s.ch:
		if !ok {
			s.closed = true
			return nil, io.EOF
		}
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *chanSource) Close() error {
	s.closed = true
	return nil
}
