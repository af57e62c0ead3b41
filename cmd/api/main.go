// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Presensya HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Select and connect the OTP session store (Redis or in-memory).
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/presensya/internal/api"
	"github.com/taibuivan/presensya/internal/core/announcement"
	"github.com/taibuivan/presensya/internal/core/attendance"
	"github.com/taibuivan/presensya/internal/core/employee"
	"github.com/taibuivan/presensya/internal/core/leave"
	"github.com/taibuivan/presensya/internal/platform/config"
	"github.com/taibuivan/presensya/internal/platform/constants"
	"github.com/taibuivan/presensya/internal/platform/migration"
	pgstore "github.com/taibuivan/presensya/internal/platform/postgres"
	redisstore "github.com/taibuivan/presensya/internal/platform/redis"
	"github.com/taibuivan/presensya/internal/platform/sec"
	"github.com/taibuivan/presensya/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "presensya"))
	slog.SetDefault(log)

	log.Info("[Presensya] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "presensya"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("otp_store", cfg.OTPStore),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. OTP Session Store ──────────────────────────────────────────────
	// Selected once at startup. The in-memory store is single-process only;
	// multi-instance deployments must configure Redis.
	var otpStore auth.OTPStore
	var checkOTPStore func() error

	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		otpStore = auth.NewRedisOTPStore(rdb)
		checkOTPStore = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	case config.OTPStoreMemory:
		memStore := auth.NewMemoryOTPStore()
		defer memStore.Close()
		otpStore = memStore
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckOTPStore: checkOTPStore,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	otpDelivery := auth.NewLogDelivery(log)
	authService := auth.NewService(userRepository, otpStore, otpDelivery, jwtSvc, cfg.OTPTTL(), cfg.OTPMaxAttempts)
	authHandler := auth.NewHandler(authService)

	attendanceRepository := attendance.NewRepository(pool)
	attendanceService := attendance.NewService(attendanceRepository)
	attendanceHandler := attendance.NewHandler(attendanceService)

	employeeRepository := employee.NewRepository(pool)
	employeeService := employee.NewService(employeeRepository)
	employeeHandler := employee.NewHandler(employeeService)

	leaveRepository := leave.NewRepository(pool)
	leaveService := leave.NewService(leaveRepository)
	leaveHandler := leave.NewHandler(leaveService)

	announcementRepository := announcement.NewRepository(pool)
	announcementService := announcement.NewService(announcementRepository)
	announcementHandler := announcement.NewHandler(announcementService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Attendance:   attendanceHandler,
		Employee:     employeeHandler,
		Leave:        leaveHandler,
		Announcement: announcementHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
