package httpbody

import (
	"net/textproto"
	"strconv"
)

// Header maps canonicalized names to values. Keys are case-insensitive on
// access; Set overwrites, so the last writer wins.
type Header map[string][]string

func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}
	k := textproto.CanonicalMIMEHeaderKey(key)
	if vv, ok := h[k]; ok && len(vv) > 0 {
		return vv[0]
	}
	return ""
}

func (h Header) Set(key, value string) {
	if h == nil {
		return
	}
	h[textproto.CanonicalMIMEHeaderKey(key)] = []string{value}
}

func (h Header) Add(key, value string) {
	if h == nil {
		return
	}
	k := textproto.CanonicalMIMEHeaderKey(key)
	h[k] = append(h[k], value)
}

func (h Header) Del(key string) {
	if h == nil {
		return
	}
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// Clone returns a deep copy. Cloning a nil Header returns an empty one.
func (h Header) Clone() Header {
	c := make(Header, len(h))
	for k, vv := range h {
		c[k] = append([]string(nil), vv...)
	}
	return c
}

// Merge copies every entry of o into h, replacing existing values.
func (h Header) Merge(o Header) {
	for k, vv := range o {
		h[k] = append([]string(nil), vv...)
	}
}

// FramingHeaders derives the length/encoding headers implied by the body
// variant. Content-Length and Transfer-Encoding: chunked are mutually
// exclusive by construction: only one branch can emit either.
//
//	Strict                -> Content-Length: len(Bytes)
//	Streamed, Length >= 0 -> Content-Length: Length
//	Streamed, unknown     -> neither (close-terminated framing)
//	Chunked               -> Transfer-Encoding: chunked
//
// Content-Type is added whenever the body declares one.
func FramingHeaders(b Body) Header {
	h := Header{}
	switch t := b.(type) {
	case *Strict:
		h.Set("Content-Length", strconv.Itoa(len(t.Bytes)))
	case *Streamed:
		if t.Length >= 0 {
			h.Set("Content-Length", strconv.FormatInt(t.Length, 10))
		}
	case *Chunked:
		h.Set("Transfer-Encoding", "chunked")
	}
	if ct := b.contentType(); ct != "" {
		h.Set("Content-Type", ct)
	}
	return h
}
