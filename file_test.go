package httpbody

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte{'p'}, size), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestSendFile_Attachment(t *testing.T) {
	path := writeTemp(t, "report.pdf", 2048)
	b, extra, err := SendFile(path, FileOptions{})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if b.Length != 2048 {
		t.Fatalf("Length = %d, want 2048", b.Length)
	}
	if got := FramingHeaders(b).Get("Content-Length"); got != "2048" {
		t.Fatalf("Content-Length = %q, want 2048", got)
	}
	if got := extra.Get("Content-Disposition"); got != "attachment; filename=report.pdf" {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if got := b.ContentType; got != "application/pdf" {
		t.Fatalf("ContentType = %q, want application/pdf", got)
	}
}

func TestSendFile_Inline(t *testing.T) {
	path := writeTemp(t, "page.html", 10)
	_, extra, err := SendFile(path, FileOptions{Inline: true})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if got := extra.Get("Content-Disposition"); got != "" {
		t.Fatalf("inline response carries disposition %q", got)
	}
}

func TestSendFile_CustomTypesAndFilename(t *testing.T) {
	path := writeTemp(t, "data.bin", 4)
	types := MIMETypes{".custom": "application/x-custom"}
	b, extra, err := SendFile(path, FileOptions{Filename: "export.custom", Types: types})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if b.ContentType != "application/x-custom" {
		t.Fatalf("ContentType = %q", b.ContentType)
	}
	if got := extra.Get("Content-Disposition"); got != "attachment; filename=export.custom" {
		t.Fatalf("Content-Disposition = %q", got)
	}
}

func TestSendFile_StreamsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	if err := os.WriteFile(path, []byte("file bytes"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, _, err := SendFile(path, FileOptions{})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	var sink bytes.Buffer
	if err := Serialize(context.Background(), b, &sink); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if sink.String() != "file bytes" {
		t.Fatalf("sink = %q", sink.String())
	}
}

func TestSendFile_Directory(t *testing.T) {
	if _, _, err := SendFile(t.TempDir(), FileOptions{}); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestSendFile_Missing(t *testing.T) {
	if _, _, err := SendFile(filepath.Join(t.TempDir(), "nope"), FileOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSourceCloseWithoutOpen(t *testing.T) {
	path := writeTemp(t, "never.txt", 1)
	b, _, err := SendFile(path, FileOptions{})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if err := b.Source.Close(); err != nil {
		t.Fatalf("Close before first pull: %v", err)
	}
}
