// Command httpbody-demo serves one response per connection. With -file it
// streams that file as an attachment; otherwise it sends a short chunked
// greeting. Requests are not parsed: the demo only exercises the
// response-writing side.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"net"

	"go.uber.org/zap"

	"dqx0.com/go/httpbody"
	"dqx0.com/go/httpbody/internal/obs"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	file := flag.String("file", "", "file to serve; empty for a chunked greeting")
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()
	logger := obs.NewZapLogger(zl, obs.Info)
	meter := obs.LogMeter{L: obs.NewZapLogger(zl, obs.Debug)}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal(err)
	}
	logger.Logf(obs.Info, "listening on %s", ln.Addr())
	for {
		c, err := ln.Accept()
		if err != nil {
			log.Fatal(err)
		}
		go serve(c, *file, logger, meter)
	}
}

func serve(c net.Conn, file string, logger obs.Logger, meter obs.Meter) {
	defer c.Close()
	id := httpbody.NewResponseID()
	ctx := httpbody.WithResponseID(context.Background(), id)

	body, extra, err := buildBody(file)
	if err != nil {
		logger.Logf(obs.Error, "response %s: build body: %v", id, err)
		return
	}
	rh := httpbody.ResponseHeader{Status: 200, Header: httpbody.Header{}}
	rh.Header.Merge(extra)

	bw := bufio.NewWriter(c)
	if err := httpbody.WriteResponse(ctx, bw, rh, body); err != nil {
		logger.Logf(obs.Error, "response %s: %v", id, err)
		return
	}
	meter.Counter("responses_total", 1)
	if n := body.ContentLength(); n >= 0 {
		meter.Histogram("body_bytes", float64(n))
	}
	logger.Logf(obs.Info, "response %s: served %s", id, c.RemoteAddr())
}

func buildBody(file string) (httpbody.Body, httpbody.Header, error) {
	if file == "" {
		ch := make(chan []byte, 3)
		ch <- []byte("hello ")
		ch <- []byte("from ")
		ch <- []byte("httpbody\n")
		close(ch)
		return httpbody.NewChunked(httpbody.NewChanSource(ch), "text/plain; charset=utf-8"), httpbody.Header{}, nil
	}
	b, h, err := httpbody.SendFile(file, httpbody.FileOptions{SniffType: true})
	if err != nil {
		return nil, nil, err
	}
	return b, h, nil
}
