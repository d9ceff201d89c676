package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/medicore/hospital-portal/internal/api"
	"github.com/medicore/hospital-portal/internal/api/handler"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ratelimit"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/infrastructure/backend"
	mongodb "github.com/medicore/hospital-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/medicore/hospital-portal/internal/infrastructure/db/redis"
	"github.com/medicore/hospital-portal/internal/infrastructure/queue"
	"github.com/medicore/hospital-portal/internal/pkg/config"
	"github.com/medicore/hospital-portal/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "hospital-portal",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	// --- Audit trail ---
	events := mongodb.NewSecurityEventRepository(db)
	if err := events.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("security_events indexes not ensured")
	}
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, events, logger.Component("audit"))
	dispatcher.Start(workerCtx)
	audit := service.NewAuditService(dispatcher, events, logger.Component("audit"))
	validation := service.NewValidationService(audit)

	// --- Backend ---
	var authSvc *service.AuthService
	client, err := backend.NewClient(cfg.Backend.URL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.WithLogger(logger.Component("backend")),
		backend.WithAuthRejectedHook(func(ctx context.Context) {
			authSvc.EndRejected(ctx)
		}),
	)
	if err != nil {
		stopWorkers()
		return err
	}
	resources := backend.NewResources(client)

	// --- Sessions and limits ---
	windows := redisdb.NewWindowStore(rdb)
	loginLimiter := ratelimit.New(windows,
		ratelimit.WithWindow(cfg.RateLimit.Window),
		ratelimit.WithMaxRequests(cfg.RateLimit.LoginMaxAttempts),
		ratelimit.WithKeyPrefix("login:"),
	)
	apiLimiter := ratelimit.New(windows,
		ratelimit.WithWindow(cfg.RateLimit.Window),
		ratelimit.WithMaxRequests(cfg.RateLimit.MaxRequests),
		ratelimit.WithKeyPrefix("api:"),
	)
	sessions := redisdb.NewSessionStores(rdb, cfg.SessionTTL)
	authSvc = service.NewAuthService(backend.NewAuth(client), sessions, loginLimiter, validation,
		cfg.JWTSecret, cfg.SessionTTL, logger.Component("auth"))

	e, err := api.NewRouter(api.Deps{
		JWTSecret:     cfg.JWTSecret,
		SecureCookie:  !cfg.IsDevelopment(),
		Logger:        log,
		Auth:          authSvc,
		Validation:    validation,
		Audit:         audit,
		AccessCodes:   service.NewAccessCodeService(backend.NewAccessCodes(client), validation, authSvc),
		Patients:      service.NewRecordService[domain.Patient]("patients", resources.Patients, validation, service.PatientRules, authSvc),
		Doctors:       service.NewRecordService[domain.Doctor]("doctors", resources.Doctors, validation, service.DoctorRules, authSvc),
		Appointments:  service.NewRecordService[domain.Appointment]("appointments", resources.Appointments, validation, service.AppointmentRules, authSvc),
		Prescriptions: service.NewRecordService[domain.Prescription]("prescriptions", resources.Prescriptions, validation, service.PrescriptionRules, authSvc),
		Bills:         service.NewRecordService[domain.Bill]("bills", resources.Bills, validation, service.BillRules, authSvc),
		APILimiter:    apiLimiter,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
	})
	if err != nil {
		stopWorkers()
		return err
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("backend", cfg.Backend.URL).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return nil
}
