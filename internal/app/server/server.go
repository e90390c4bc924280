package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"hrpay/internal/app"
	"hrpay/internal/transport/http/api"
	audithandler "hrpay/internal/transport/http/handlers/audit"
	authhandler "hrpay/internal/transport/http/handlers/auth"
	calendarhandler "hrpay/internal/transport/http/handlers/calendar"
	employeehandler "hrpay/internal/transport/http/handlers/employees"
	payrollhandler "hrpay/internal/transport/http/handlers/payroll"
	"hrpay/internal/transport/http/middleware"
)

const (
	maxBodyBytes     = 1 << 20
	loginLimit       = 10
	loginLimitWindow = time.Minute
)

// NewRouter builds the HTTP surface over a.
func NewRouter(a *app.App) http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Total-Count"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(maxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(a.Auth, cfg.JWTSecret, cfg.TokenTTL).
			RegisterRoutes(r, middleware.LoginRateLimit(loginLimit, loginLimitWindow))
		employeehandler.NewHandler(a.People, a.Promotion, a.Scales).RegisterRoutes(r)
		payrollhandler.NewHandler(a, a.Payroll, a.People, a.PDF, a.Jobs).RegisterRoutes(r)
		calendarhandler.NewHandler(a.Calendar).RegisterRoutes(r)
		audithandler.NewHandler(a.Audit).RegisterRoutes(r)
	})
	return router
}

// Run serves until ctx is cancelled, then drains within ShutdownTimeout.
func Run(ctx context.Context, a *app.App) error {
	cfg := a.Config
	if err := a.Start(ctx); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(a),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("hrpay server listening", "addr", cfg.Addr, "storage", cfg.StorageDriver, "realtime", cfg.Realtime)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
