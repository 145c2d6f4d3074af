package httpbody

// Body is one of Strict, Streamed, or Chunked. Exactly one variant is active
// per response; there is no implicit conversion between them. A body is
// consumed at most once: after Serialize has taken it, further attempts fail
// with ErrBodyConsumed.
type Body interface {
	// ContentLength reports the declared body length in bytes, or -1 when
	// unknown.
	ContentLength() int64

	contentType() string
	take() error
}

// Strict is a response body fully materialized in memory. Its length is
// always known.
type Strict struct {
	Bytes       []byte
	ContentType string

	consumed bool
}

// NewStrict builds a fully materialized body. ct may be empty.
func NewStrict(b []byte, ct string) *Strict {
	return &Strict{Bytes: b, ContentType: ct}
}

func (b *Strict) ContentLength() int64 { return int64(len(b.Bytes)) }

func (b *Strict) contentType() string { return b.ContentType }

func (b *Strict) take() error {
	if b.consumed {
		return ErrBodyConsumed
	}
	b.consumed = true
	return nil
}

// Streamed is a response body produced incrementally from a Source. Length
// is the declared byte count, or -1 when unknown. Computing a length by
// draining the source defeats streaming; callers supply it from metadata
// (e.g. a file size) or not at all.
type Streamed struct {
	Source      Source
	Length      int64
	ContentType string

	consumed bool
}

// NewStreamed builds a streamed body. length < 0 means unknown; ct may be
// empty. If the declared length does not match what src produces, Serialize
// fails with ErrLengthMismatch.
func NewStreamed(src Source, length int64, ct string) *Streamed {
	if length < 0 {
		length = -1
	}
	return &Streamed{Source: src, Length: length, ContentType: ct}
}

func (b *Streamed) ContentLength() int64 { return b.Length }

func (b *Streamed) contentType() string { return b.ContentType }

func (b *Streamed) take() error {
	if b.consumed {
		return ErrBodyConsumed
	}
	b.consumed = true
	return nil
}

// Chunked is a response body framed with chunked transfer encoding. Its
// length is always unknown.
type Chunked struct {
	Source      Source
	ContentType string

	consumed bool
}

// NewChunked builds a chunked body. ct may be empty.
func NewChunked(src Source, ct string) *Chunked {
	return &Chunked{Source: src, ContentType: ct}
}

func (b *Chunked) ContentLength() int64 { return -1 }

func (b *Chunked) contentType() string { return b.ContentType }

func (b *Chunked) take() error {
	if b.consumed {
		return ErrBodyConsumed
	}
	b.consumed = true
	return nil
}
