package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"medicine-schedule-service/internal/domain/schedules"
	"medicine-schedule-service/internal/platform/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// writeOutbox inserta el evento dentro de la transacción del cambio.
func writeOutbox(ctx context.Context, tx *sql.Tx, ev schedules.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%w: marshal outbox event: %v", schedules.ErrTransactionFailure, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedule_outbox (aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, ev.ScheduleID, string(ev.Type), payload, ev.OccurredAt)
	if err != nil {
		return txErr("insert outbox", err)
	}
	return nil
}

// Publisher es lo que el relay necesita del broker.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

type RelayConfig struct {
	Topic        string
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		Topic:        "medicine-schedule-events",
		BatchSize:    100,
		PollInterval: time.Second,
		MaxRetries:   5,
	}
}

type outboxEntry struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	RetryCount  int
}

// Relay publica las filas pendientes de schedule_outbox. Varias réplicas pueden correr
// a la vez: FOR UPDATE SKIP LOCKED reparte las filas entre ellas.
type Relay struct {
	db      *sql.DB
	pub     Publisher
	cfg     RelayConfig
	log     *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewRelay(db *sql.DB, pub Publisher, cfg RelayConfig, log *zap.Logger, m *metrics.Metrics) *Relay {
	def := DefaultRelayConfig()
	if cfg.Topic == "" {
		cfg.Topic = def.Topic
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		db:      db,
		pub:     pub,
		cfg:     cfg,
		log:     log,
		metrics: m,
		tracer:  otel.Tracer("medicine-schedule-service/outbox"),
	}
}

// Run bloquea hasta que ctx se cancela.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Info("outbox relay started",
		zap.String("topic", r.cfg.Topic),
		zap.Int("batch_size", r.cfg.BatchSize),
		zap.Duration("poll_interval", r.cfg.PollInterval),
	)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				r.log.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch publica un lote y devuelve cuántas filas quedaron procesadas.
// Un fallo de publish no corta el lote: la fila suma retry_count y se reintenta en la próxima vuelta.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	ctx, span := r.tracer.Start(ctx, "outbox.ProcessBatch")
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("outbox: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entries, err := fetchPending(ctx, tx, r.cfg.MaxRetries, r.cfg.BatchSize)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	r.metrics.OutboxBatch(len(entries))
	if len(entries) == 0 {
		return 0, nil
	}
	span.SetAttributes(attribute.Int("batch_size", len(entries)))

	processed := 0
	for _, e := range entries {
		pubErr := r.pub.Publish(ctx, r.cfg.Topic, e.AggregateID, e.Payload)
		r.metrics.OutboxResult(pubErr)

		if pubErr != nil {
			r.log.Warn("outbox publish failed",
				zap.Int64("id", e.ID),
				zap.String("event_type", e.EventType),
				zap.Int("retry_count", e.RetryCount+1),
				zap.Error(pubErr),
			)
			if _, err := tx.ExecContext(ctx, `
				UPDATE schedule_outbox
				SET retry_count = retry_count + 1, last_error = $2
				WHERE id = $1
			`, e.ID, pubErr.Error()); err != nil {
				return processed, fmt.Errorf("outbox: bump retry: %w", err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE schedule_outbox
			SET processed_at = now(), last_error = NULL
			WHERE id = $1
		`, e.ID); err != nil {
			return processed, fmt.Errorf("outbox: mark processed: %w", err)
		}
		processed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("outbox: commit: %w", err)
	}

	r.log.Debug("outbox batch done", zap.Int("fetched", len(entries)), zap.Int("processed", processed))
	return processed, nil
}

func fetchPending(ctx context.Context, q querier, maxRetries, limit int) ([]outboxEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload, retry_count
		FROM schedule_outbox
		WHERE processed_at IS NULL
		  AND retry_count < $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("outbox: fetch: %w", err)
	}
	defer rows.Close()

	var out []outboxEntry
	for rows.Next() {
		var e outboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.RetryCount); err != nil {
			return nil, fmt.Errorf("outbox: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CleanupProcessed borra filas ya publicadas más viejas que olderThan.
func CleanupProcessed(ctx context.Context, db *sql.DB, olderThan time.Duration) (int64, error) {
	res, err := db.ExecContext(ctx, `
		DELETE FROM schedule_outbox
		WHERE processed_at IS NOT NULL
		  AND processed_at < $1
	`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("outbox: cleanup: %w", err)
	}
	return res.RowsAffected()
}
