// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry on import and exposed on /metrics.
package metrics

import (
	"authflow/internal/core/domain/mail"
	"authflow/internal/core/domain/user"
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authflow"

// AuthOutcomesTotal counts finished auth operations.
// Labels:
//   - operation: "sign_up", "log_in", "send_password_reset_token" or "reset_password"
//   - outcome: "success" or a short failure reason, see Outcome
var AuthOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_outcomes_total",
		Help:      "Total number of auth operations by outcome.",
	},
	[]string{"operation", "outcome"},
)

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route and status code.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Outcome maps a service error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return "email_already_exists"
	case errors.Is(err, user.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, user.ErrInvalidPasswordResetToken):
		return "invalid_password_reset_token"
	case errors.Is(err, user.ErrPasswordTooLong):
		return "password_too_long"
	case errors.Is(err, mail.ErrDeliveryFailed):
		return "delivery_failed"
	default:
		return "error"
	}
}
