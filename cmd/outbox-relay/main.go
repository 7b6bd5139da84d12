// Command outbox-relay publica en Redpanda los eventos de schedule_outbox.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicine-schedule-service/internal/adapters/messaging/redpanda"
	pg "medicine-schedule-service/internal/adapters/storage/postgres"
	"medicine-schedule-service/internal/platform/config"
	"medicine-schedule-service/internal/platform/logger"
	"medicine-schedule-service/internal/platform/metrics"
	"medicine-schedule-service/internal/platform/tracing"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName + "-outbox-relay",
	})
	defer func() { _ = log.Sync() }()

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  cfg.AppName + "-outbox-relay",
		Environment:  os.Getenv("APP_ENV"),
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.SampleRate,
	})
	if err != nil {
		log.Fatal("tracing init failed", zap.Error(err))
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	admin, err := redpanda.NewAdmin(cfg.KafkaBrokers, log.Named("admin"))
	if err != nil {
		log.Fatal("redpanda admin init failed", zap.Error(err))
	}
	if err := admin.EnsureTopics(ctx, redpanda.ScheduleEventsTopic(cfg.ScheduleEventsTopic, 1)); err != nil {
		log.Fatal("ensure topics failed", zap.Error(err))
	}
	admin.Close()

	pcfg := redpanda.DefaultProducerConfig()
	pcfg.Brokers = cfg.KafkaBrokers
	producer, err := redpanda.NewProducer(pcfg, log.Named("producer"))
	if err != nil {
		log.Fatal("producer init failed", zap.Error(err))
	}
	defer producer.Close()

	log.Info("connected to redpanda", zap.Strings("brokers", cfg.KafkaBrokers))

	m := metrics.New()
	relay := pg.NewRelay(db, producer, pg.RelayConfig{
		Topic:        cfg.ScheduleEventsTopic,
		BatchSize:    cfg.OutboxBatchSize,
		PollInterval: cfg.OutboxPollInterval,
	}, log.Named("relay"), m)

	// Solo /metrics y /health
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: cfg.Addr(), Handler: mux, ReadTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	// Limpieza diaria de filas ya publicadas
	go func() {
		t := time.NewTicker(24 * time.Hour)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := pg.CleanupProcessed(ctx, db, 7*24*time.Hour)
				if err != nil {
					log.Warn("outbox cleanup failed", zap.Error(err))
					continue
				}
				log.Info("outbox cleanup", zap.Int64("deleted", n))
			}
		}
	}()

	_ = relay.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = tp.Shutdown(shutdownCtx)
}
