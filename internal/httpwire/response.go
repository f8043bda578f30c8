package httpwire

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
)

// protocolVersion is emitted on every status line.
const protocolVersion = "HTTP/1.0"

// BodyChunkSize is the read size used when streaming file contents.
const BodyChunkSize = 1024

const fallbackContentType = "application/octet-stream"

// ResponseWriter frames one response onto a connection: status line, the
// fixed Server header, optional body headers, the blank-line terminator,
// and optionally a body. It never buffers (only complete lines are
// written) and counts bytes written for the request log.
type ResponseWriter struct {
	w          io.Writer
	serverName string
	written    int
}

func NewResponseWriter(w io.Writer, serverName string) *ResponseWriter {
	if serverName == "" {
		serverName = "Bot"
	}
	return &ResponseWriter{w: w, serverName: serverName}
}

// BytesWritten reports the total bytes written so far.
func (rw *ResponseWriter) BytesWritten() int { return rw.written }

func (rw *ResponseWriter) write(p []byte) error {
	n, err := rw.w.Write(p)
	rw.written += n
	return err
}

// WriteStatus emits the status line and the Server header. When terminate
// is true the header block is closed immediately; otherwise the caller
// must append further headers and emit the terminator exactly once.
func (rw *ResponseWriter) WriteStatus(status string, terminate bool) error {
	h := protocolVersion + " " + status + "\r\n"
	h += "Server: " + rw.serverName + "\r\n"
	if terminate {
		h += "\r\n"
	}
	return rw.write([]byte(h))
}

// WriteError sends a bare status response whose body is the status text
// wrapped in a heading tag. Domain outcomes (404, 400, 204, ...) and real
// failures are framed identically.
func (rw *ResponseWriter) WriteError(status string) error {
	if err := rw.WriteStatus(status, true); err != nil {
		return err
	}
	return rw.write([]byte("<h1>" + status + "</h1>"))
}

// WriteRedirect sends a permanent redirect to target. No body.
func (rw *ResponseWriter) WriteRedirect(target string) error {
	if err := rw.WriteStatus(StatusMovedPermanently, false); err != nil {
		return err
	}
	return rw.write([]byte("Location: " + target + "\r\n\r\n"))
}

// WriteFileHeader emits the full header block for a file response:
// content type guessed from name, content length, terminator. The body
// (if any) follows via CopyBody.
func (rw *ResponseWriter) WriteFileHeader(status, name string, size int64) error {
	if err := rw.WriteStatus(status, false); err != nil {
		return err
	}
	h := "Content-Type: " + ContentType(name) + "\r\n"
	h += fmt.Sprintf("Content-Length: %d\r\n", size)
	h += "\r\n"
	return rw.write([]byte(h))
}

// CopyBody streams r to the connection in fixed-size chunks until EOF.
func (rw *ResponseWriter) CopyBody(r io.Reader) error {
	buf := make([]byte, BodyChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := rw.write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ContentType guesses the media type from the file extension. Unknown
// extensions fall back to a generic octet-stream; detection never aborts
// a response.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return fallbackContentType
}
