package httpbody

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func drain(t *testing.T, src Source) []byte {
	t.Helper()
	var out bytes.Buffer
	for {
		p, err := src.Next(context.Background())
		out.Write(p)
		if err == io.EOF {
			return out.Bytes()
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
}

func TestBytesSource(t *testing.T) {
	src := NewBytesSource([]byte("abc"))
	p, err := src.Next(context.Background())
	if err != nil || string(p) != "abc" {
		t.Fatalf("Next = %q, %v", p, err)
	}
	if _, err := src.Next(context.Background()); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReaderSource(t *testing.T) {
	big := strings.Repeat("z", readerChunkSize+100)
	got := drain(t, NewReaderSource(strings.NewReader(big)))
	if string(got) != big {
		t.Fatalf("drained %d bytes, want %d", len(got), len(big))
	}
}

type closerReader struct {
	io.Reader
	closed bool
}

func (c *closerReader) Close() error {
	c.closed = true
	return nil
}

func TestReaderSourceClosesUnderlying(t *testing.T) {
	cr := &closerReader{Reader: strings.NewReader("data")}
	src := NewReaderSource(cr)
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !cr.closed {
		t.Fatal("underlying reader not closed")
	}
	if _, err := src.Next(context.Background()); err != io.EOF {
		t.Fatalf("Next after Close = %v, want io.EOF", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestChanSource(t *testing.T) {
	ch := make(chan []byte, 2)
	ch <- []byte("a")
	ch <- []byte("b")
	close(ch)
	if got := drain(t, NewChanSource(ch)); string(got) != "ab" {
		t.Fatalf("drained %q", got)
	}
}

func TestChanSourceCancellation(t *testing.T) {
	src := NewChanSource(make(chan []byte)) // stalled producer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := src.Next(ctx)
		done <- err
	}()
	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
