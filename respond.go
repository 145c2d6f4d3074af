package httpbody

import (
	"context"
	"fmt"
	"io"

	"dqx0.com/go/httpbody/internal/http1"
)

// ResponseHeader is the status and header set for one response,
// independent of the body variant. Length and encoding headers are derived
// from the body at write time; caller-supplied ones are discarded rather
// than trusted.
type ResponseHeader struct {
	Status int
	Header Header
}

// WriteResponse writes a full HTTP/1.1 response: status line, headers, then
// the serialized body. Framing headers derived from the body override any
// caller-supplied Content-Length or Transfer-Encoding. The connection is
// always marked close: without a declared length that is the framing the
// client relies on, and keep-alive negotiation is out of scope here.
func WriteResponse(ctx context.Context, w io.Writer, rh ResponseHeader, b Body) error {
	status := rh.Status
	if status == 0 {
		status = 200
	}
	h := rh.Header.Clone()
	h.Del("Content-Length")
	h.Del("Transfer-Encoding")
	h.Merge(FramingHeaders(b))
	if err := http1.WriteStatusLine(w, status, ""); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	if err := http1.WriteHeaders(w, map[string][]string(h), false); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	if err := Serialize(ctx, b, w); err != nil {
		return err
	}
	if f, ok := w.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
	}
	return nil
}
