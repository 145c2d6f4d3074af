package httpbody

import (
	"strings"
	"testing"
)

func TestHeaderCanonicalization(t *testing.T) {
	h := Header{}
	h.Add("x-foo", "a")
	h.Add("X-Foo", "b")
	if got := h.Get("X-FOO"); got != "a" {
		t.Fatalf("Get canonical = %q, want %q", got, "a")
	}
	if got := len(h["X-Foo"]); got != 2 {
		t.Fatalf("len values = %d, want 2", got)
	}
	h.Set("content-type", "text/plain")
	if got := h.Get("Content-Type"); got != "text/plain" {
		t.Fatalf("content-type = %q", got)
	}
	h.Del("x-foo")
	if got := h.Get("X-Foo"); got != "" {
		t.Fatalf("after Del, got %q, want empty", got)
	}
}

func TestHeaderCloneMerge(t *testing.T) {
	h := Header{}
	h.Set("X-A", "1")
	c := h.Clone()
	c.Set("X-A", "2")
	if h.Get("X-A") != "1" {
		t.Fatal("Clone shares storage with original")
	}
	h.Merge(Header{"X-A": {"3"}, "X-B": {"4"}})
	if h.Get("X-A") != "3" || h.Get("X-B") != "4" {
		t.Fatalf("after Merge: %v", h)
	}
}

func TestFramingHeaders_Strict(t *testing.T) {
	h := FramingHeaders(NewStrict([]byte("Hello World"), "text/plain"))
	if got := h.Get("Content-Length"); got != "11" {
		t.Fatalf("Content-Length = %q, want 11", got)
	}
	if got := h.Get("Content-Type"); got != "text/plain" {
		t.Fatalf("Content-Type = %q", got)
	}
	if h.Get("Transfer-Encoding") != "" {
		t.Fatal("Strict body must not get Transfer-Encoding")
	}
}

func TestFramingHeaders_StrictEmptyType(t *testing.T) {
	h := FramingHeaders(NewStrict(nil, ""))
	if got := h.Get("Content-Length"); got != "0" {
		t.Fatalf("Content-Length = %q, want 0", got)
	}
	if h.Get("Content-Type") != "" {
		t.Fatal("unexpected Content-Type")
	}
}

func TestFramingHeaders_StreamedKnown(t *testing.T) {
	h := FramingHeaders(NewStreamed(NewBytesSource([]byte("abc")), 3, "application/json"))
	if got := h.Get("Content-Length"); got != "3" {
		t.Fatalf("Content-Length = %q, want 3", got)
	}
	if h.Get("Transfer-Encoding") != "" {
		t.Fatal("known-length Streamed must not get Transfer-Encoding")
	}
}

func TestFramingHeaders_StreamedUnknown(t *testing.T) {
	h := FramingHeaders(NewStreamed(NewBytesSource([]byte("abc")), -1, "text/html"))
	if h.Get("Content-Length") != "" {
		t.Fatal("unknown-length Streamed must not get Content-Length")
	}
	if h.Get("Transfer-Encoding") != "" {
		t.Fatal("unknown-length Streamed must not get Transfer-Encoding")
	}
	if got := h.Get("Content-Type"); got != "text/html" {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestFramingHeaders_Chunked(t *testing.T) {
	h := FramingHeaders(NewChunked(NewBytesSource([]byte("abc")), ""))
	if got := h.Get("Transfer-Encoding"); got != "chunked" {
		t.Fatalf("Transfer-Encoding = %q, want chunked", got)
	}
	if h.Get("Content-Length") != "" {
		t.Fatal("Chunked body must not get Content-Length")
	}
}

// Content-Length and chunked transfer are mutually exclusive for every
// variant and length combination.
func TestFramingHeaders_Exclusive(t *testing.T) {
	bodies := []Body{
		NewStrict([]byte("x"), ""),
		NewStreamed(NewBytesSource(nil), 0, ""),
		NewStreamed(NewBytesSource(nil), 10, ""),
		NewStreamed(NewBytesSource(nil), -1, ""),
		NewChunked(NewBytesSource(nil), ""),
	}
	for _, b := range bodies {
		h := FramingHeaders(b)
		cl := h.Get("Content-Length") != ""
		te := strings.EqualFold(h.Get("Transfer-Encoding"), "chunked")
		if cl && te {
			t.Fatalf("%T: both Content-Length and Transfer-Encoding set", b)
		}
	}
}
