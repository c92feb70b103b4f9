package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/monitor"
)

// requestLogger logs one line per request once it completes
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []logger.Field{
				logger.F("method", r.Method),
				logger.F("path", r.URL.Path),
				logger.F("status", ww.Status()),
				logger.F("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			}
			if id := chimiddleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, logger.F("request_id", id))
			}

			if ww.Status() >= http.StatusInternalServerError {
				log.WarnWithFields("request failed", fields)
				return
			}
			log.DebugWithFields("request", fields)
		})
	}
}

// recordMetrics times each request under its route pattern; 5xx counts as an error
func recordMetrics(metrics *monitor.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			metrics.Record(r.Method+" "+pattern, time.Since(start), ww.Status() >= http.StatusInternalServerError)
		})
	}
}
