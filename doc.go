// Package httpbody represents HTTP/1.1 response bodies and serializes
// them onto a connection with the correct framing.
//
// A body is one of three variants:
//   - Strict: fully materialized bytes, length always known.
//   - Streamed: pull-based chunk source with an optionally declared length.
//   - Chunked: pull-based chunk source framed with chunked transfer encoding.
//
// FramingHeaders derives Content-Length / Transfer-Encoding / Content-Type
// from the variant alone; Serialize performs the single-pass write. Both are
// independent of any real socket, so framing decisions stay unit-testable.
//
// Quick start:
//
//	b := httpbody.NewStrict([]byte("hello"), "text/plain; charset=utf-8")
//	h := httpbody.FramingHeaders(b) // Content-Length: 5, Content-Type: ...
//	err := httpbody.Serialize(ctx, b, conn)
//
// Streaming with chunked transfer encoding:
//
//	src := httpbody.NewReaderSource(r)
//	b := httpbody.NewChunked(src, "application/octet-stream")
//	err := httpbody.WriteResponse(ctx, conn, httpbody.ResponseHeader{Status: 200}, b)
//
// Bodies are single-use: a second Serialize on the same body reports
// ErrBodyConsumed instead of replaying data. Sources are released on every
// exit path, including cancellation and write failures.
package httpbody
