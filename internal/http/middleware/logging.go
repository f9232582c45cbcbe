package middleware

import (
	"authflow/internal/core/domain/logging"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request. Bodies are never logged.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(rw, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info(
				r.Context(),
				"HTTP request served.",
				logging.Entry("requestId", chimiddleware.GetReqID(r.Context())),
				logging.Entry("method", r.Method),
				logging.Entry("path", r.URL.Path),
				logging.Entry("status", ww.Status()),
				logging.Entry("duration", time.Since(start).String()),
			)
		})
	}
}
