package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/hangyeol/pkg/ctxutil"
)

// healthPaths are polled by orchestrators and logged at DEBUG when healthy.
var healthPaths = map[string]bool{"/live": true, "/ready": true, "/health": true}

// Logger logs one "http.request" record per request. 5xx responses log at
// ERROR, 429 and 413 at WARN.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			ctx := r.Context()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.status),
				slog.Int64("bytes", rw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if op, ok := ctxutil.OperatorFromCtx(ctx); ok {
				attrs = append(attrs, slog.String("operator", op))
			}
			logger.LogAttrs(ctx, levelFor(r.URL.Path, rw.status), "http.request", attrs...)
		})
	}
}

func levelFor(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests, status == http.StatusRequestEntityTooLarge:
		return slog.LevelWarn
	case healthPaths[path]:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// responseRecorder captures the status code and body size.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *responseRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }
