package httpwire

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	rw := NewResponseWriter(&buf, "Bot")
	if err := rw.WriteError(StatusNotFound); err != nil {
		t.Fatalf("error: %v", err)
	}
	want := "HTTP/1.0 404 Not Found\r\nServer: Bot\r\n\r\n<h1>404 Not Found</h1>"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if rw.BytesWritten() != len(want) {
		t.Errorf("bytes written: got %d, want %d", rw.BytesWritten(), len(want))
	}
}

func TestWriteRedirect(t *testing.T) {
	var buf bytes.Buffer
	rw := NewResponseWriter(&buf, "Bot")
	if err := rw.WriteRedirect("/bienvenue.html"); err != nil {
		t.Fatalf("error: %v", err)
	}
	want := "HTTP/1.0 301 Permanently Moved\r\nServer: Bot\r\nLocation: /bienvenue.html\r\n\r\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteFileHeader(t *testing.T) {
	var buf bytes.Buffer
	rw := NewResponseWriter(&buf, "Bot")
	if err := rw.WriteFileHeader(StatusOK, "page.html", 123); err != nil {
		t.Fatalf("error: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "HTTP/1.0 200 OK\r\nServer: Bot\r\n") {
		t.Errorf("bad status/server lines: %q", got)
	}
	if !strings.Contains(got, "Content-Type: text/html; charset=utf-8\r\n") {
		t.Errorf("missing content type: %q", got)
	}
	if !strings.Contains(got, "Content-Length: 123\r\n") {
		t.Errorf("missing content length: %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\n") {
		t.Errorf("header block not terminated: %q", got)
	}
	if strings.Count(got, "\r\n\r\n") != 1 {
		t.Errorf("terminator emitted more than once: %q", got)
	}
}

func TestDefaultServerName(t *testing.T) {
	var buf bytes.Buffer
	rw := NewResponseWriter(&buf, "")
	if err := rw.WriteStatus(StatusOK, true); err != nil {
		t.Fatalf("error: %v", err)
	}
	if !strings.Contains(buf.String(), "Server: Bot\r\n") {
		t.Errorf("got %q", buf.String())
	}
}

func TestCopyBodyChunked(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 3*BodyChunkSize+17)
	var buf bytes.Buffer
	rw := NewResponseWriter(&buf, "Bot")
	if err := rw.CopyBody(bytes.NewReader(payload)); err != nil {
		t.Fatalf("error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Errorf("body not byte-identical: got %d bytes, want %d", buf.Len(), len(payload))
	}
	if rw.BytesWritten() != len(payload) {
		t.Errorf("bytes written: got %d, want %d", rw.BytesWritten(), len(payload))
	}
}

func TestContentTypeFallback(t *testing.T) {
	if ct := ContentType("Makefile"); ct != "application/octet-stream" {
		t.Errorf("got %q, want application/octet-stream", ct)
	}
}

func TestIsErrorStatus(t *testing.T) {
	if IsErrorStatus(StatusOK) || IsErrorStatus(StatusNoContent) || IsErrorStatus(StatusMovedPermanently) {
		t.Error("success statuses classified as errors")
	}
	if !IsErrorStatus(StatusNotFound) || !IsErrorStatus(StatusInternal) {
		t.Error("error statuses not classified")
	}
}
