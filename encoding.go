package httpbody

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// GzipBody wraps b's byte stream through a gzip compressor. The result is a
// Chunked body, since the compressed length is unknown until the stream
// ends, and the returned Header carries Content-Encoding: gzip. b is
// consumed by the wrapping and cannot be serialized separately afterwards.
func GzipBody(b Body) (*Chunked, Header, error) {
	src, ct, err := takeSource(b)
	if err != nil {
		return nil, nil, err
	}
	es := &encodedSource{src: src}
	es.w = gzip.NewWriter(&es.buf)
	h := Header{}
	h.Set("Content-Encoding", "gzip")
	return NewChunked(es, ct), h, nil
}

// BrotliBody is GzipBody with brotli ("br") encoding.
func BrotliBody(b Body) (*Chunked, Header, error) {
	src, ct, err := takeSource(b)
	if err != nil {
		return nil, nil, err
	}
	es := &encodedSource{src: src}
	es.w = brotli.NewWriter(&es.buf)
	h := Header{}
	h.Set("Content-Encoding", "br")
	return NewChunked(es, ct), h, nil
}

// takeSource consumes b and exposes its bytes as a Source, whatever the
// variant. The declared length, if any, is dropped: it describes the
// identity encoding, not the compressed stream.
func takeSource(b Body) (Source, string, error) {
	if err := b.take(); err != nil {
		return nil, "", err
	}
	switch t := b.(type) {
	case *Strict:
		return NewBytesSource(t.Bytes), t.ContentType, nil
	case *Streamed:
		return t.Source, t.ContentType, nil
	case *Chunked:
		return t.Source, t.ContentType, nil
	default:
		return nil, "", fmt.Errorf("httpbody: unknown body variant %T", b)
	}
}

// encodedSource pulls from src, feeds bytes through a compressor, and
// yields whatever compressed output has accumulated. Compressors buffer
// internally, so one pull may consume several input chunks before any
// output appears; the final chunk is produced by closing the compressor.
type encodedSource struct {
	src    Source
	buf    bytes.Buffer
	w      io.WriteCloser
	done   bool
	closed bool
}

func (s *encodedSource) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, io.EOF
	}
	s.buf.Reset()
	for !s.done && s.buf.Len() == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.src.Next(ctx)
		if len(p) > 0 {
			if _, werr := s.w.Write(p); werr != nil {
				return nil, werr
			}
		}
		if err == io.EOF {
			if cerr := s.w.Close(); cerr != nil {
				return nil, cerr
			}
			s.done = true
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if s.buf.Len() == 0 {
		return nil, io.EOF
	}
	return s.buf.Bytes(), nil
}

func (s *encodedSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.src.Close()
}
