package httpbody

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIMETypes maps lowercase filename extensions (with leading dot) to media
// types. Lookups fall back to the platform mime table, so a nil MIMETypes is
// usable as-is.
type MIMETypes map[string]string

// Lookup resolves the media type for a filename by extension. Returns ""
// when neither the table nor the platform knows the extension.
func (m MIMETypes) Lookup(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if ct, ok := m[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// FileOptions adjusts SendFile. The zero value serves the file as an
// attachment named after its base name, with the type resolved by extension.
type FileOptions struct {
	// Filename overrides the name used for type lookup and the
	// Content-Disposition header.
	Filename string
	// Inline suppresses the attachment disposition so clients may render
	// the file in place.
	Inline bool
	// Types is the extension lookup table; nil uses the platform table.
	Types MIMETypes
	// SniffType enables content-based detection when the extension lookup
	// misses. This reads the head of the file, so leave it off when the
	// stat-only guarantee matters.
	SniffType bool
}

// SendFile builds a Streamed body for the file at path. The declared length
// comes from file metadata; the file itself is opened lazily on the first
// pull, so construction performs no I/O beyond the stat (and the optional
// type sniff). The returned Header carries the Content-Disposition entry,
// if any.
func SendFile(path string, opts FileOptions) (*Streamed, Header, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if fi.IsDir() {
		return nil, nil, fmt.Errorf("httpbody: %s is a directory", path)
	}
	name := opts.Filename
	if name == "" {
		name = filepath.Base(path)
	}
	ct := opts.Types.Lookup(name)
	if ct == "" && opts.SniffType {
		if mt, derr := mimetype.DetectFile(path); derr == nil {
			ct = mt.String()
		}
	}
	h := Header{}
	if !opts.Inline {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	}
	return NewStreamed(&fileSource{path: path}, fi.Size(), ct), h, nil
}

// fileSource opens its file on the first pull and streams it through a
// readerSource. Close releases the file handle on every path, including the
// never-opened one.
type fileSource struct {
	path   string
	src    Source
	closed bool
}

func (s *fileSource) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, io.EOF
	}
	if s.src == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, err
		}
		s.src = NewReaderSource(f)
	}
	return s.src.Next(ctx)
}

func (s *fileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.src != nil {
		return s.src.Close()
	}
	return nil
}
