package middleware

import "net/http"

// responseRecorder tracks the status and byte count of a response while
// passing writes through. SSE streams write for the lifetime of the
// connection, so bytes is the total pushed to that subscriber.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	started bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(code int) {
	if !rr.started {
		rr.status = code
		rr.started = true
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.started = true
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += int64(n)
	return n, err
}

// Flush is needed by the stream handler's flusher check.
func (rr *responseRecorder) Flush() {
	if f, ok := rr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach SetWriteDeadline on the
// underlying writer.
func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}
