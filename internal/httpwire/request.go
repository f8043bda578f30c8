package httpwire

import (
	"bufio"
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedRequest marks a request line with fewer than two tokens.
// The caller answers 400 without dispatching.
var ErrMalformedRequest = errors.New("malformed request line")

// Request is one parsed request line.
//
// Target is the request path with the leading '/' stripped, so it resolves
// relative to the server root. ContentLength is -1 when the client sent no
// Content-Length header.
type Request struct {
	Verb          string
	Target        string
	ContentLength int
}

// ReadRequest reads exactly one request line and drains the header block
// up to the blank line. Header values are never interpreted, with one
// exception: Content-Length is captured when present so the body copy can
// stop at an exact byte count instead of waiting out the idle timeout.
//
// A stream that ends before a request line yields the read error; a
// request line with fewer than two tokens yields ErrMalformedRequest
// (the partial Request is still returned for logging).
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := ReadLine(r)
	if err != nil {
		return nil, err
	}

	req := &Request{ContentLength: -1}
	fields := strings.Split(line, " ")
	if len(fields) < 2 || fields[0] == "" {
		req.Verb = fields[0]
		drainHeaders(r, req)
		return req, ErrMalformedRequest
	}

	req.Verb = fields[0]
	// Remaining tokens (typically the protocol version) are ignored.
	req.Target = strings.TrimPrefix(fields[1], "/")
	drainHeaders(r, req)
	return req, nil
}

// drainHeaders discards header lines until a blank line or a read error
// (peer gone, idle timeout). Errors are not reported: the request line is
// already in hand and a missing terminator only means there is nothing
// left to skip.
func drainHeaders(r *bufio.Reader, req *Request) {
	for {
		line, err := ReadLine(r)
		if err != nil || line == "" {
			return
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 0 {
				req.ContentLength = n
			}
		}
	}
}

// ReadLine reads one CRLF (or bare LF) terminated line, without the
// terminator. A partial line truncated by EOF is still returned.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
