package httpwire

// Wire statuses in the full "<code> <phrase>" form written on the status
// line. The 301 phrase is non-standard but is the server's established
// wire format.
const (
	StatusOK               = "200 OK"
	StatusCreated          = "201 Created"
	StatusNoContent        = "204 No Content"
	StatusMovedPermanently = "301 Permanently Moved"
	StatusBadRequest       = "400 Bad Request"
	StatusNotFound         = "404 Not Found"
	StatusInternal         = "500 Internal Server Error"
	StatusNotImplemented   = "501 Not Implemented"
)

// IsErrorStatus reports whether a status is a 4xx/5xx outcome.
func IsErrorStatus(status string) bool {
	return len(status) > 0 && (status[0] == '4' || status[0] == '5')
}
