package server

func (s *Server) record(le LogEntry) {
	if s.cfg.LogRequests {
		s.logs.add(le)
		s.logConsole(le)
	}
	if s.stats != nil {
		s.stats.add(le.Verb, le.Status, le.ReqBytes, le.RespBytes, le.DurationMs)
	}
}
