package server

import (
	"sync"
	"time"

	"github.com/Gnomino/TP-HTTP/internal/httpwire"
)

// StatsSnapshot is a point-in-time copy of the collected counters, used
// for the shutdown summary.
type StatsSnapshot struct {
	StartedUnix int64
	UptimeSec   int64
	TotalReq    uint64
	TotalErr    uint64
	BytesIn     uint64
	BytesOut    uint64
	AvgMs       uint64
	ByVerb      map[string]uint64
}

// statsHub keeps lightweight request counters.
//
// It is intentionally simple and dependency-free. The mutex is not needed
// while the dispatch loop stays sequential, but keeps the hub safe should
// a concurrent accept loop ever be introduced.
type statsHub struct {
	mu sync.Mutex

	started time.Time

	totalReq   uint64
	totalErr   uint64
	bytesIn    uint64
	bytesOut   uint64
	totalDurMs uint64

	byVerb map[string]uint64
}

func newStatsHub() *statsHub {
	return &statsHub{
		started: time.Now(),
		byVerb:  make(map[string]uint64),
	}
}

func (h *statsHub) add(verb, status string, reqBytes, respBytes int, durMs int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalReq++
	if verb == "" {
		verb = "-"
	}
	h.byVerb[verb]++

	if status == "" || status == "-" || httpwire.IsErrorStatus(status) {
		h.totalErr++
	}
	if reqBytes > 0 {
		h.bytesIn += uint64(reqBytes)
	}
	if respBytes > 0 {
		h.bytesOut += uint64(respBytes)
	}
	if durMs > 0 {
		h.totalDurMs += uint64(durMs)
	}
}

func (h *statsHub) snapshot() StatsSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	by := make(map[string]uint64, len(h.byVerb))
	for v, c := range h.byVerb {
		by[v] = c
	}

	avg := uint64(0)
	if h.totalReq > 0 {
		avg = h.totalDurMs / h.totalReq
	}

	return StatsSnapshot{
		StartedUnix: h.started.Unix(),
		UptimeSec:   int64(now.Sub(h.started).Seconds()),
		TotalReq:    h.totalReq,
		TotalErr:    h.totalErr,
		BytesIn:     h.bytesIn,
		BytesOut:    h.bytesOut,
		AvgMs:       avg,
		ByVerb:      by,
	}
}
