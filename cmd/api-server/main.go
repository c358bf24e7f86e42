package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/carelane/healthcare-appointments/internal/api"
	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/availability"
	"github.com/carelane/healthcare-appointments/internal/config"
	"github.com/carelane/healthcare-appointments/internal/consultation"
	"github.com/carelane/healthcare-appointments/internal/db"
	"github.com/carelane/healthcare-appointments/internal/history"
	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/logger"
	"github.com/carelane/healthcare-appointments/internal/notification"
	redisclient "github.com/carelane/healthcare-appointments/internal/redis"
	"github.com/carelane/healthcare-appointments/migrations"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load error: " + err.Error())
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	log.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("version", version),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	log.Info("connected to Postgres")

	if err := db.Migrate(rootCtx, pgPool, migrations.FS); err != nil {
		log.Fatal("migration error", zap.Error(err))
	}
	log.Info("migrations applied")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("error closing redis", zap.Error(err))
		}
	}()
	log.Info("connected to Redis")

	identityRepo := identity.NewPgRepository(pgPool)
	appointmentRepo := appointment.NewPgRepository(pgPool)
	consultationRepo := consultation.NewPgRepository(pgPool)
	availabilityRepo := availability.NewPgRepository(pgPool)
	notificationRepo := notification.NewPgRepository(pgPool)

	notifications := notification.NewService(notificationRepo, log)
	appointments := appointment.NewService(appointmentRepo, identityRepo, notifications, log)
	consultations := consultation.NewService(consultationRepo, appointmentRepo, identityRepo, notifications, log)
	availabilitySvc := availability.NewService(availabilityRepo, identityRepo)
	historySvc := history.NewService(identityRepo, appointmentRepo, consultationRepo)
	identitySvc := identity.NewService(
		identityRepo,
		availability.NewPublicSlotSource(availabilityRepo),
		redisclient.NewCache(rdb),
		cfg.DoctorCacheTTL,
		log,
	)

	router := api.NewRouter(api.RouterConfig{
		Appointments:  appointments,
		Consultations: consultations,
		Availability:  availabilitySvc,
		History:       historySvc,
		Identity:      identitySvc,
		Notifications: notifications,
		PgPool:        pgPool,
		Redis:         rdb,
		Logger:        log,
		JWTSecret:     cfg.JWTSecret,
		Env:           cfg.Env,
		Version:       version,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	log.Info("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
