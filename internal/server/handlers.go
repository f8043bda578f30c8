package server

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gnomino/TP-HTTP/internal/fsops"
	"github.com/Gnomino/TP-HTTP/internal/httpwire"
)

// Each handler returns the status it sent (for the request log) plus an
// error only for unexpected I/O failures. Domain outcomes (not-found,
// bad-request, no-content) are ordinary responses, not errors.

// resolve maps a request target onto the filesystem. Targets are used as
// given, relative to the configured root; sandboxing is out of scope.
func (s *Server) resolve(target string) string {
	if s.cfg.RootDir == "" || s.cfg.RootDir == "." {
		return filepath.FromSlash(target)
	}
	return filepath.Join(s.cfg.RootDir, filepath.FromSlash(target))
}

// handleGet serves GET and, with headOnly, HEAD: same target resolution,
// same header block, only GET streams the body.
func (s *Server) handleGet(rw *httpwire.ResponseWriter, target string, headOnly bool) (string, error) {
	if target == "" {
		// Empty path: redirect to the welcome resource, filesystem untouched.
		return httpwire.StatusMovedPermanently, rw.WriteRedirect(s.cfg.WelcomePath)
	}

	path := s.resolve(target)
	st, err := fsops.Stat(path)
	if err != nil {
		return "", err
	}
	if !st.Exists || st.IsDir {
		if headOnly {
			// Same header block as the GET error, but HEAD never writes
			// body bytes.
			return httpwire.StatusNotFound, rw.WriteStatus(httpwire.StatusNotFound, true)
		}
		return httpwire.StatusNotFound, rw.WriteError(httpwire.StatusNotFound)
	}

	if err := rw.WriteFileHeader(httpwire.StatusOK, path, st.Size); err != nil {
		return httpwire.StatusOK, err
	}
	if headOnly {
		return httpwire.StatusOK, nil
	}

	f, err := os.Open(path)
	if err != nil {
		// Header already sent. Report locally, no rollback.
		log.Printf("open %s: %v", path, err)
		return httpwire.StatusOK, nil
	}
	defer f.Close()
	if err := rw.CopyBody(f); err != nil {
		log.Printf("send %s: %v", path, err)
	}
	return httpwire.StatusOK, nil
}

func (s *Server) handleDelete(rw *httpwire.ResponseWriter, target string) (string, error) {
	path := s.resolve(target)
	st, err := fsops.Stat(path)
	if err != nil {
		return "", err
	}
	switch {
	case !st.Exists:
		return httpwire.StatusNotFound, rw.WriteError(httpwire.StatusNotFound)
	case st.IsDir:
		return httpwire.StatusBadRequest, rw.WriteError(httpwire.StatusBadRequest)
	}
	if err := os.Remove(path); err != nil {
		log.Printf("delete %s: %v", path, err)
		return httpwire.StatusInternal, rw.WriteError(httpwire.StatusInternal)
	}
	return httpwire.StatusNoContent, rw.WriteError(httpwire.StatusNoContent)
}

// handleWrite serves POST (append) and PUT (truncate). The body is copied
// line by line until Content-Length bytes have been consumed when the
// client sent that header, or until the idle-read deadline fires, which
// is the protocol's fallback end-of-body signal.
func (s *Server) handleWrite(rw *httpwire.ResponseWriter, br *bufio.Reader, req *httpwire.Request, le *LogEntry, appendMode bool) (string, error) {
	path := s.resolve(req.Target)
	f, created, err := fsops.OpenWrite(path, appendMode)
	if err != nil {
		return "", err
	}
	le.ReqBytes = copyBody(f, br, req.ContentLength)
	if err := f.Close(); err != nil {
		return "", err
	}
	if created {
		return httpwire.StatusCreated, rw.WriteError(httpwire.StatusCreated)
	}
	return httpwire.StatusOK, rw.WriteError(httpwire.StatusOK)
}

// copyBody writes each body line plus a line terminator to f and returns
// the number of request bytes consumed. Read or write failures end the
// loop silently; the caller always flushes and closes f before responding.
func copyBody(f *os.File, br *bufio.Reader, contentLength int) int {
	consumed := 0
	for {
		if contentLength >= 0 && consumed >= contentLength {
			return consumed
		}
		raw, err := br.ReadString('\n')
		if raw != "" {
			consumed += len(raw)
			line := strings.TrimRight(raw, "\r\n")
			if _, werr := f.WriteString(line + "\n"); werr != nil {
				log.Printf("write %s: %v", f.Name(), werr)
				return consumed
			}
		}
		if err != nil {
			// Timeout, EOF or peer reset: the body is exhausted.
			return consumed
		}
	}
}
