package app

import (
	"authflow/internal/app/deps"
	"authflow/internal/app/services"
	loginwithemail "authflow/internal/http/handlers/auth/log_in_with_email"
	resetpassword "authflow/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "authflow/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "authflow/internal/http/handlers/auth/sign_up_with_email"
	"authflow/internal/http/handlers/health"
	"authflow/internal/http/middleware"
	"authflow/internal/metrics"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           NewRouter(deps, s),
		Addr:              address,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter serves the auth routes both at the root and under /api.
func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(metrics.Middleware)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Sentry(deps.Config.SentryDsn != nil))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{sendpasswordresettoken.TestTokenHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	authRoutes := func(r chi.Router) {
		r.Method(
			http.MethodPost,
			"/signup",
			signupwithemail.New(s.SignUpWithEmail, deps.Config.PasswordMinLength),
		)
		r.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
		r.Method(
			http.MethodPost,
			"/forgot-password",
			sendpasswordresettoken.New(s.SendPasswordResetToken, deps.Config.IsTestMode),
		)
		r.Method(
			http.MethodPost,
			"/reset-password",
			resetpassword.New(s.ResetPassword, deps.Config.PasswordMinLength),
		)
	}
	authRoutes(router)
	router.Route("/api", authRoutes)

	router.Method(http.MethodGet, "/health", health.New(deps.Logger, deps.Pinger))
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}
