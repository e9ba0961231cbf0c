package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peer-lending/internal/api"
	"peer-lending/internal/batch"
	"peer-lending/internal/config"
	"peer-lending/internal/domain/assessment"
	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/domain/payment"
	"peer-lending/internal/event"
	rediscache "peer-lending/internal/infrastructure/cache/redis"
	"peer-lending/internal/infrastructure/database/postgres"
	"peer-lending/internal/infrastructure/llm/anthropic"
	"peer-lending/internal/infrastructure/logging"
	"peer-lending/internal/infrastructure/push/sns"
	"peer-lending/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	defaultOverdueSchedule = "0 3 * * *"
	defaultOverdueTimeout  = 30 * time.Minute
	providerAnthropic      = "anthropic"
)

// @title Peer Lending API
// @version 1.0
// @description API for peer-to-peer loan applications, creditor decisions, notifications and repayments.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg, logger := initializeApp()
	if err := validateConfig(cfg); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool := initializeDatabase(ctx, cfg, logger)
	defer closeDatabase(dbPool, logger)
	runMigrations(cfg, logger)

	rabbitMQConn, err := setupRabbitMQ(cfg, logger)
	if err != nil {
		logger.Warn("Continuing without RabbitMQ, events will be dropped", "error", err)
	}
	redisClient := initializeRedisClient(ctx, cfg, logger)

	c := initializeComponents(ctx, cfg, dbPool, rabbitMQConn, redisClient, logger)

	cronScheduler := startBatchJobs(cfg, logger, c.overdueJob)
	router := api.SetupRouter(ctx, c.services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// validateConfig rejects settings that would leave the API unusable or open.
func validateConfig(cfg *config.Config) error {
	if cfg.Server.Auth.Enabled && cfg.Server.Auth.JWTSecret == "" {
		return errors.New("server.auth.jwtSecret must be set when authentication is enabled")
	}
	if cfg.Assessment.Provider == providerAnthropic && cfg.Assessment.APIKey == "" {
		return errors.New("assessment.apiKey must be set for the anthropic provider")
	}
	if cfg.SNS.Enabled && cfg.SNS.TopicARN == "" {
		return errors.New("sns.topicArn must be set when SNS push is enabled")
	}
	return nil
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func runMigrations(cfg *config.Config, logger *slog.Logger) {
	if !cfg.Database.AutoMigrate {
		return
	}
	if err := postgres.RunMigrations(migrations.FS, cfg.Database.URL, logger); err != nil {
		logger.Error("Failed to apply database migrations", "error", err)
		os.Exit(1)
	}
}

type components struct {
	services   api.Services
	overdueJob *batch.OverdueLoanJob
}

func initializeComponents(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, rabbitConn *amqp.Connection,
	redisClient *redis.Client, logger *slog.Logger) components {
	logger.Info("Initializing application components...")

	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	notificationRepo := postgres.NewNotificationRepository(dbPool, logger)
	paymentRepo := postgres.NewPaymentRepository(dbPool, logger)
	creditorRepo := postgres.NewCreditorRepository(dbPool, logger)

	publisher := initializeEventPublisher(cfg, rabbitConn, logger)
	push := initializePushSender(ctx, cfg, logger)

	notificationService := notification.NewNotificationService(notificationRepo, publisher, push, logger)
	creditorService := creditor.NewCreditorService(creditorRepo, logger)
	loanService := loan.NewLoanService(loanRepo, creditorService, notificationService, publisher, logger)
	paymentService := payment.NewPaymentService(paymentRepo, loanService, notificationService, publisher, logger)
	assessmentService := initializeAssessmentService(cfg, loanService, redisClient, logger)

	return components{
		services: api.Services{
			Loans:         loanService,
			Assessments:   assessmentService,
			Notifications: notificationService,
			Payments:      paymentService,
			Creditors:     creditorService,
		},
		overdueJob: batch.NewOverdueLoanJob(loanRepo, publisher, logger),
	}
}

func initializeEventPublisher(cfg *config.Config, rabbitConn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if rabbitConn == nil {
		return event.NewNoopEventPublisher(logger)
	}
	publisher, err := event.NewRabbitMQEventPublisher(rabbitConn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to initialize RabbitMQ publisher, events will be dropped", "error", err)
		return event.NewNoopEventPublisher(logger)
	}
	return publisher
}

func initializePushSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) notification.PushSender {
	if !cfg.SNS.Enabled {
		return nil
	}
	sender, err := sns.NewPushSender(ctx, cfg.SNS.Region, cfg.SNS.TopicARN, logger)
	if err != nil {
		logger.Warn("Failed to initialize SNS push sender, push delivery disabled", "error", err)
		return nil
	}
	logger.Info("SNS push delivery enabled", "region", cfg.SNS.Region)
	return sender
}

func initializeAssessmentService(cfg *config.Config, loans assessment.LoanReader, redisClient *redis.Client,
	logger *slog.Logger) assessment.AssessmentService {
	heuristic := assessment.NewHeuristic()

	var (
		advisor assessment.Advisor = heuristic
		opts    []assessment.Option
	)
	if cfg.Assessment.Provider == providerAnthropic {
		logger.Info("Using hosted assessment advisor", "provider", providerAnthropic, "model", cfg.Assessment.Model)
		advisor = anthropic.NewAdvisor(cfg.Assessment, logger)
		opts = append(opts, assessment.WithFallback(heuristic))
	}
	if redisClient != nil {
		opts = append(opts, assessment.WithCache(rediscache.NewAssessmentCache(redisClient), cfg.Assessment.CacheTTL))
	}
	return assessment.NewAssessmentService(advisor, loans, logger, opts...)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	}
}

func initializeRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, assessment results will not be cached.")
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	rdb, err := rediscache.NewClient(pingCtx, cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to Redis, continuing without assessment cache", "error", err, "addr", cfg.Redis.Address)
		return nil
	}
	logger.Info("Redis client connected.", "addr", cfg.Redis.Address, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, overdueJob *batch.OverdueLoanJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	if err := scheduleOverdueCheck(c, cfg.Batch, overdueJob, logger); err != nil {
		logger.Error("Failed to schedule overdue loan check", slog.Any("error", err))
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

type runner interface {
	Run(ctx context.Context) error
}

func scheduleOverdueCheck(c *cron.Cron, cfg config.BatchConfig, job runner, logger *slog.Logger) error {
	scheduleSpec := cfg.OverdueCheckSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultOverdueSchedule
		logger.Warn("Overdue check schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.OverdueCheckTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultOverdueTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "OverdueLoanCheck")
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Overdue loan check finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", scheduleSpec, err)
	}
	logger.Info("Scheduled overdue loan check", "schedule", scheduleSpec, "job_id", jobID)
	return nil
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					if e != nil {
						logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
					}
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("RabbitMQ host is not configured")
	}
	port := cfg.Port
	if port == 0 {
		port = 5672
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", errors.New("RabbitMQ username and password must be provided together")
	}
	if cfg.Username != "" {
		return fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.Username, cfg.Password, cfg.Host, port), nil
	}
	return fmt.Sprintf("amqp://%s:%d/", cfg.Host, port), nil
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, domain events will not be published.")
		return nil, nil
	}
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}
	return connectRabbitMQ(uri, logger)
}
