// Package middleware holds cmd/qless-server's HTTP middleware.
// Logging is adapted from the teacher-pack's
// vancomm-minesweeper-server/internal/middleware/logging.go, which
// wraps the ResponseWriter to capture the status code and logs one
// line per request — rewritten here against logrus since that's the
// structured-logging library the rest of this module already uses.
package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type loggingWriter struct {
	http.ResponseWriter
	statusCode int
	hijacked   bool
}

func (w *loggingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Hijack delegates to the wrapped ResponseWriter so gorilla/websocket's
// Upgrader, which requires its ResponseWriter argument to satisfy
// http.Hijacker, still works when a request is routed through this
// middleware first.
func (w *loggingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("loggingWriter: underlying ResponseWriter does not support hijacking")
	}
	w.hijacked = true
	return h.Hijack()
}

// Logging returns middleware that logs one structured line per request
// via log, including status code and duration.
func Logging(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.WithFields(logrus.Fields{
				"method":      r.Method,
				"uri":         r.URL.RequestURI(),
				"status_code": wrapped.statusCode,
				"hijacked":    wrapped.hijacked,
				"remote_addr": r.RemoteAddr,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("handled request")
		})
	}
}
