package httpbody

// Flusher is implemented by sinks that buffer writes (e.g. *bufio.Writer).
// Serialize flushes after every chunk of a streamed or chunked body so data
// reaches the client without waiting for the buffer to fill.
type Flusher interface {
	Flush() error
}
