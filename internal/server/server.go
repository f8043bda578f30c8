package server

import (
	"bufio"
	"errors"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/Gnomino/TP-HTTP/internal/config"
	"github.com/Gnomino/TP-HTTP/internal/httpwire"
)

// Server owns the listening socket and processes connections strictly one
// at a time: a connection is fully handled (parse, dispatch, respond,
// close) before the next accept. The loop's core responsibility is fault
// isolation between connections: a bad connection is logged and dropped,
// the server keeps running.
type Server struct {
	cfg   config.Config
	logs  *logHub
	stats *statsHub

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

func New(cfg config.Config) *Server {
	return &Server{
		cfg:   cfg,
		logs:  newLogHub(cfg.LogBuffer),
		stats: newStatsHub(),
	}
}

// Serve accepts and handles connections until the listener is closed.
// Accept errors other than closure are logged and the loop continues.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("server closed")
	}
	s.ln = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("accept: %v", err)
			// A persistent accept failure (e.g. out of descriptors)
			// must not turn into a hot loop.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		s.handleConn(conn)
	}
}

// Close stops the listener. The in-flight connection, if any, finishes
// normally because the loop is sequential.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// Stats returns a snapshot of the request counters.
func (s *Server) Stats() StatsSnapshot { return s.stats.snapshot() }

// RecentLog returns up to limit of the most recent request records.
func (s *Server) RecentLog(limit int) []LogEntry { return s.logs.snapshot(limit) }

// idleConn refreshes the read deadline before every read, so the timeout
// bounds idle time rather than total connection time. For POST/PUT bodies
// without a Content-Length header this deadline is the end-of-body signal.
type idleConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleConn) Read(p []byte) (int, error) {
	_ = c.SetReadDeadline(time.Now().Add(c.timeout))
	return c.Conn.Read(p)
}

// handleConn runs one full request/response cycle. The connection is
// closed on every path.
func (s *Server) handleConn(conn net.Conn) {
	start := time.Now()
	defer conn.Close()

	le := LogEntry{TimeUnixMs: start.UnixMilli()}
	if addr := conn.RemoteAddr(); addr != nil {
		le.RemoteAddr = addr.String()
	}

	br := bufio.NewReader(&idleConn{Conn: conn, timeout: s.cfg.IdleTimeout()})
	rw := httpwire.NewResponseWriter(conn, s.cfg.ServerName)

	req, err := httpwire.ReadRequest(br)
	if err != nil {
		if errors.Is(err, httpwire.ErrMalformedRequest) {
			// Too few tokens to dispatch: answer 400 instead of indexing
			// into a request line that is not there.
			le.Verb = req.Verb
			le.Status = httpwire.StatusBadRequest
			_ = rw.WriteError(httpwire.StatusBadRequest)
		} else {
			// Peer closed or stalled before sending a request line. No
			// response is attempted; only complete lines go on the wire.
			le.Status = "-"
			le.Info = err.Error()
		}
		s.finish(&le, rw, start)
		return
	}

	le.Verb = req.Verb
	le.Target = req.Target

	status, derr := s.dispatch(rw, br, req, &le)
	if derr != nil {
		le.Info = derr.Error()
		if status == "" {
			// Nothing framed yet: the stream is still writable, so the
			// failure maps to a generic 500.
			status = httpwire.StatusInternal
			_ = rw.WriteError(status)
		}
	}
	le.Status = status
	s.finish(&le, rw, start)
}

func (s *Server) dispatch(rw *httpwire.ResponseWriter, br *bufio.Reader, req *httpwire.Request, le *LogEntry) (string, error) {
	switch req.Verb {
	case "GET":
		return s.handleGet(rw, req.Target, false)
	case "HEAD":
		return s.handleGet(rw, req.Target, true)
	case "DELETE":
		return s.handleDelete(rw, req.Target)
	case "POST":
		return s.handleWrite(rw, br, req, le, true)
	case "PUT":
		return s.handleWrite(rw, br, req, le, false)
	default:
		return httpwire.StatusNotImplemented, rw.WriteError(httpwire.StatusNotImplemented)
	}
}

func (s *Server) finish(le *LogEntry, rw *httpwire.ResponseWriter, start time.Time) {
	le.RespBytes = rw.BytesWritten()
	le.DurationMs = time.Since(start).Milliseconds()
	s.record(*le)
}

func (s *Server) logConsole(le LogEntry) {
	status := le.Status
	switch {
	case strings.HasPrefix(status, "2"):
		status = color.GreenString(status)
	case strings.HasPrefix(status, "3"):
		status = color.CyanString(status)
	default:
		status = color.RedString(status)
	}
	verb := le.Verb
	if verb == "" {
		verb = "-"
	}
	log.Printf("%s %s /%s -> %s (%d ms, %d bytes)",
		le.RemoteAddr, color.YellowString(verb), le.Target, status, le.DurationMs, le.RespBytes)
}
