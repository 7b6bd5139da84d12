// @title Medicine Schedule Service
// @version 1.0
// @description Schedules de medicamentos: alta, reemplazo total, calendario de dosis y dashboards por autor o paciente.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicine-schedule-service/internal/adapters/auth/odin"
	"medicine-schedule-service/internal/adapters/lookup/patientdir"
	pg "medicine-schedule-service/internal/adapters/storage/postgres"
	"medicine-schedule-service/internal/platform/config"
	"medicine-schedule-service/internal/platform/logger"
	"medicine-schedule-service/internal/platform/metrics"
	"medicine-schedule-service/internal/platform/tracing"
	"medicine-schedule-service/internal/router"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  cfg.AppName,
		Environment:  os.Getenv("APP_ENV"),
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.SampleRate,
	})
	if err != nil {
		log.Fatal("tracing init failed", zap.Error(err))
	}

	m := metrics.New()
	opts := router.Options{
		Logger:      log,
		Metrics:     m,
		ServiceName: cfg.AppName,
	}

	// Sin DB_DSN => in-memory (modo dev)
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		defer db.Close()

		if cfg.DBMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				log.Fatal("database migration failed", zap.Error(err))
			}
			log.Info("database schema applied")
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage")
	}

	// Sin Odin => header X-Debug-User-ID (modo dev)
	if cfg.OdinBaseURL != "" {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.OdinBaseURL,
			APIKey:  cfg.OdinAPIKey,
		})
		if err != nil {
			log.Fatal("odin client init failed", zap.Error(err))
		}
		opts.AuthVerifier = odin.NewVerifier(client)
	} else {
		log.Warn("ODIN_BASE_URL not set, debug auth headers enabled")
	}

	if cfg.PatientDirectoryURL != "" {
		dir, err := patientdir.New(patientdir.Config{
			BaseURL: cfg.PatientDirectoryURL,
			APIKey:  cfg.PatientDirectoryAPIKey,
		}, log.Named("patientdir"), m)
		if err != nil {
			log.Fatal("patient directory init failed", zap.Error(err))
		}
		opts.PatientDirectory = dir
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
}
