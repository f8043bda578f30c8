package httpwire

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func reqReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadRequest(t *testing.T) {
	req, err := ReadRequest(reqReader("GET /index.html HTTP/1.0\r\nHost: localhost\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.Verb != "GET" {
		t.Errorf("verb: got %q, want GET", req.Verb)
	}
	if req.Target != "index.html" {
		t.Errorf("target: got %q, want index.html", req.Target)
	}
	if req.ContentLength != -1 {
		t.Errorf("content length: got %d, want -1", req.ContentLength)
	}
}

func TestReadRequestEmptyTarget(t *testing.T) {
	req, err := ReadRequest(reqReader("GET / HTTP/1.0\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.Target != "" {
		t.Errorf("target: got %q, want empty", req.Target)
	}
}

func TestReadRequestNoLeadingSlash(t *testing.T) {
	req, err := ReadRequest(reqReader("GET notes.txt HTTP/1.0\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.Target != "notes.txt" {
		t.Errorf("target: got %q, want notes.txt", req.Target)
	}
}

func TestReadRequestExtraTokensIgnored(t *testing.T) {
	req, err := ReadRequest(reqReader("GET /a.txt HTTP/1.0 junk trailing\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.Verb != "GET" || req.Target != "a.txt" {
		t.Errorf("got %q %q, want GET a.txt", req.Verb, req.Target)
	}
}

func TestReadRequestContentLength(t *testing.T) {
	req, err := ReadRequest(reqReader("POST /log.txt HTTP/1.0\r\ncontent-length: 42\r\nHost: x\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.ContentLength != 42 {
		t.Errorf("content length: got %d, want 42", req.ContentLength)
	}
}

func TestReadRequestBadContentLengthIgnored(t *testing.T) {
	req, err := ReadRequest(reqReader("POST /x HTTP/1.0\r\nContent-Length: nope\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if req.ContentLength != -1 {
		t.Errorf("content length: got %d, want -1", req.ContentLength)
	}
}

func TestReadRequestShortLine(t *testing.T) {
	req, err := ReadRequest(reqReader("GET\r\n\r\n"))
	if !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("error: got %v, want ErrMalformedRequest", err)
	}
	if req == nil || req.Verb != "GET" {
		t.Errorf("partial request not returned for logging: %+v", req)
	}
}

func TestReadRequestEmptyStream(t *testing.T) {
	_, err := ReadRequest(reqReader(""))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("error: got %v, want io.EOF", err)
	}
}

func TestReadRequestLeavesBodyUnread(t *testing.T) {
	r := reqReader("POST /f HTTP/1.0\r\nContent-Length: 4\r\n\r\nbody")
	if _, err := ReadRequest(r); err != nil {
		t.Fatalf("error: %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "body" {
		t.Errorf("body consumed by header drain: %q left", rest)
	}
}

func TestReadLineBareLF(t *testing.T) {
	line, err := ReadLine(reqReader("hello\n"))
	if err != nil || line != "hello" {
		t.Errorf("got %q, %v", line, err)
	}
}
