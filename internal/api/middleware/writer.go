package middleware

import "net/http"

// captureWriter records the status code and body size so middleware can
// report on a response after the handler has written it. Handlers that
// never call WriteHeader implicitly answer 200.
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func capture(w http.ResponseWriter) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += int64(n)
	return n, err
}
