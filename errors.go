package httpbody

import "errors"

var (
	// ErrSinkWrite reports an I/O failure writing to the connection. Fatal to
	// the current response; bytes already written are not retracted.
	ErrSinkWrite = errors.New("httpbody: sink write failed")

	// ErrSourceRead reports a failure pulling the next chunk from a body
	// source. The response is aborted without a chunked terminator, since
	// writing one would misrepresent success.
	ErrSourceRead = errors.New("httpbody: source read failed")

	// ErrLengthMismatch reports that a Streamed body produced a byte count
	// different from its declared length.
	ErrLengthMismatch = errors.New("httpbody: declared length mismatch")

	// ErrBodyConsumed reports a second serialization attempt on a body whose
	// single-pass source has already been taken.
	ErrBodyConsumed = errors.New("httpbody: body already consumed")
)
