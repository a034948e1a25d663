package logs

import "net/http"

// RespLogger captures status and bytes written.
type RespLogger struct {
	http.ResponseWriter
	Status      int
	Bytes       int
	wroteHeader bool
}

func (l *RespLogger) WriteHeader(code int) {
	if !l.wroteHeader {
		l.Status = code
		l.wroteHeader = true
	}
	l.ResponseWriter.WriteHeader(code)
}

// Write forwards the response body to the underlying writer and tracks
// how many bytes have been sent so Bytes mirrors the payload size.
func (l *RespLogger) Write(b []byte) (int, error) {
	l.wroteHeader = true
	n, err := l.ResponseWriter.Write(b)
	l.Bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (l *RespLogger) Unwrap() http.ResponseWriter {
	return l.ResponseWriter
}
