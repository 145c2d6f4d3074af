package http1

import (
	"fmt"
	"io"
	"strings"
)

// WriteStatusLine writes "HTTP/1.1 <status> <reason>\r\n". An empty reason
// falls back to the standard phrase for the code.
func WriteStatusLine(w io.Writer, status int, reason string) error {
	if reason == "" {
		reason = defaultReason(status)
	}
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", status, reason)
	return err
}

// WriteHeaders writes hdr followed by the Connection header and the blank
// line ending the header block. Values are sanitized against CR/LF
// injection. Keys should be canonicalized by the caller; any caller-supplied
// Connection entry is skipped.
func WriteHeaders(w io.Writer, hdr map[string][]string, keepAlive bool) error {
	for k, vv := range hdr {
		if k == "Connection" {
			continue
		}
		for _, v := range vv {
			if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, sanitizeHeaderValue(v)); err != nil {
				return err
			}
		}
	}
	conn := "close"
	if keepAlive {
		conn = "keep-alive"
	}
	if _, err := fmt.Fprintf(w, "Connection: %s\r\n\r\n", conn); err != nil {
		return err
	}
	return nil
}

// WriteChunk writes one chunk for chunked transfer encoding:
// "<lowercase hex size>\r\n<bytes>\r\n". Empty chunks are dropped so they
// are never confused with the terminator.
func WriteChunk(w io.Writer, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := fmt.Fprintf(w, "%x\r\n", len(p)); err != nil {
		return 0, err
	}
	if _, err := w.Write(p); err != nil {
		return 0, err
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

// EndChunked writes the terminating zero-length chunk.
func EndChunked(w io.Writer) error {
	_, err := io.WriteString(w, "0\r\n\r\n")
	return err
}

func defaultReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 206:
		return "Partial Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	case 503:
		return "Service Unavailable"
	default:
		return ""
	}
}

func sanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	// Remove CR/LF and other control chars except HTAB
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
