package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"peer-lending/internal/api/handler"
	mw "peer-lending/internal/api/middleware"
	"peer-lending/internal/config"
	"peer-lending/internal/domain/assessment"
	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/domain/payment"

	_ "peer-lending/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services groups the domain services the HTTP layer exposes.
type Services struct {
	Loans         loan.LoanService
	Assessments   assessment.AssessmentService
	Notifications notification.Service
	Payments      payment.PaymentService
	Creditors     creditor.Service
}

// SetupRouter builds the HTTP handler tree. ctx bounds background work owned by middleware.
func SetupRouter(ctx context.Context, services Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	limiter := mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger)
	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Use(limiter.Middleware)

		setupLoanRoutes(r, services, logger)
		setupAssessmentRoutes(r, services.Assessments, logger)
		setupNotificationRoutes(r, services.Notifications, logger)
		setupPaymentRoutes(r, services.Payments, logger)
		setupCreditorRoutes(r, services.Creditors, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(requestTimeout(cfg)))
	router.Use(mw.MetricsMiddleware())
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.WriteTimeout > 0 {
		return cfg.Server.WriteTimeout
	}
	return 60 * time.Second
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupLoanRoutes(r chi.Router, services Services, logger *slog.Logger) {
	loans := handler.NewLoanHandler(services.Loans, logger)
	assessments := handler.NewAssessmentHandler(services.Assessments, logger)
	payments := handler.NewPaymentHandler(services.Payments, logger)

	r.Route("/loans", func(r chi.Router) {
		r.Post("/", loans.CreateLoan)
		r.Get("/", loans.ListLoans)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", loans.GetLoan)
			r.Post("/approve", loans.Approve)
			r.Post("/reject", loans.Reject)
			r.Post("/modify", loans.ProposeModification)
			r.Post("/accept", loans.AcceptModification)
			r.Get("/estimate", loans.EstimatePayment)
			r.Post("/assessment", assessments.AssessLoan)
			r.Post("/payments", payments.RecordPayment)
		})
	})
}

func setupAssessmentRoutes(r chi.Router, svc assessment.AssessmentService, logger *slog.Logger) {
	h := handler.NewAssessmentHandler(svc, logger)
	r.Post("/assessments", h.Assess)
}

func setupNotificationRoutes(r chi.Router, svc notification.Service, logger *slog.Logger) {
	h := handler.NewNotificationHandler(svc, logger)

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/read-all", h.MarkAllRead)
		r.Post("/{notificationID}/read", h.MarkRead)
		r.Delete("/{notificationID}", h.Delete)
	})
}

func setupPaymentRoutes(r chi.Router, svc payment.PaymentService, logger *slog.Logger) {
	h := handler.NewPaymentHandler(svc, logger)

	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.ListPayments)
		r.Get("/summary", h.Summary)
	})
}

func setupCreditorRoutes(r chi.Router, svc creditor.Service, logger *slog.Logger) {
	h := handler.NewCreditorHandler(svc, logger)

	r.Route("/creditors", func(r chi.Router) {
		r.Get("/", h.ListCreditors)
		r.Post("/", h.AddCreditor)
		r.Route("/{creditorID}", func(r chi.Router) {
			r.Get("/", h.GetCreditor)
			r.Put("/", h.UpdateCreditor)
			r.Delete("/", h.DeleteCreditor)
			r.Put("/rating", h.RateCreditor)
		})
	})
}
