// Package httplog - общий middleware запросов BFF: trace_id и контекстный логгер.
package httplog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// Middleware кладет в контекст запроса логгер с trace_id и пишет итог запроса.
// Уровень итоговой записи зависит от статуса: 5xx - Error, 4xx - Warn.
// Для quietPaths (например, /healthz) итог не пишется.
func Middleware(base logger.LoggerPort, quietPaths ...string) func(next http.Handler) http.Handler {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}
			w.Header().Set(TraceHeader, traceID)

			reqLogger := base.WithFields(logger.Fields{"trace_id": traceID})
			ctx := contextkeys.ContextWithTraceID(contextkeys.ContextWithLogger(r.Context(), reqLogger), traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			if _, skip := quiet[r.URL.Path]; skip {
				return
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := logger.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"status_code": status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(started).Milliseconds(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				reqLogger.Error("Request failed", nil, fields)
			case status >= http.StatusBadRequest:
				reqLogger.Warn("Request rejected", fields)
			default:
				reqLogger.Info("Request finished", fields)
			}
		})
	}
}
