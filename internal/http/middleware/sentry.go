package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
)

// Sentry attaches a request scoped hub and reports panics before re-raising
// them to the recoverer further up the chain.
func Sentry(enabled bool) func(http.Handler) http.Handler {
	if !enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	handler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return handler.Handle
}
