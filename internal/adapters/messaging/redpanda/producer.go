// Package redpanda publica los eventos de schedules en Redpanda / Kafka usando franz-go.
package redpanda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ProducerConfig struct {
	Brokers     []string
	ClientID    string
	Linger      time.Duration
	MaxRetries  int
	Compression string // lz4 | snappy | gzip | zstd | none
}

func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		Brokers:     []string{"localhost:9092"},
		ClientID:    "medicine-schedule-service",
		Linger:      10 * time.Millisecond,
		MaxRetries:  3,
		Compression: "lz4",
	}
}

// Producer escribe con acks de todas las réplicas e idempotencia (default de franz-go).
// El orden por schedule lo da la key: mismo schedule => misma partición.
type Producer struct {
	client *kgo.Client
	log    *zap.Logger
	tracer trace.Tracer
}

func NewProducer(cfg ProducerConfig, log *zap.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("redpanda: no brokers configured")
	}
	if log == nil {
		log = zap.NewNop()
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordRetries(cfg.MaxRetries),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.Linger > 0 {
		opts = append(opts, kgo.ProducerLinger(cfg.Linger))
	}
	switch cfg.Compression {
	case "lz4":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.Lz4Compression()))
	case "snappy":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.SnappyCompression()))
	case "gzip":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.GzipCompression()))
	case "zstd":
		opts = append(opts, kgo.ProducerBatchCompression(kgo.ZstdCompression()))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("redpanda: new client: %w", err)
	}

	return &Producer{
		client: client,
		log:    log,
		tracer: otel.Tracer("medicine-schedule-service/redpanda"),
	}, nil
}

// Publish produce un record y espera el ack.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	ctx, span := p.tracer.Start(ctx, "redpanda.Publish", trace.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("key", key),
		attribute.Int("value_size", len(value)),
	), trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()

	rec := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{rec})

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("redpanda: produce %s: %w", topic, err)
	}

	p.log.Debug("record produced",
		zap.String("topic", rec.Topic),
		zap.String("key", key),
		zap.Int32("partition", rec.Partition),
		zap.Int64("offset", rec.Offset),
	)
	return nil
}

func (p *Producer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close hace flush de lo pendiente (máx. 10s) y cierra el cliente.
func (p *Producer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.log.Warn("redpanda flush on close", zap.Error(err))
	}
	p.client.Close()
}

// headerCarrier adapta los headers del record a propagation.TextMapCarrier.
type headerCarrier struct {
	rec *kgo.Record
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.rec.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.rec.Headers {
		if h.Key == key {
			c.rec.Headers[i].Value = []byte(value)
			return
		}
	}
	c.rec.Headers = append(c.rec.Headers, kgo.RecordHeader{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	out := make([]string, 0, len(c.rec.Headers))
	for _, h := range c.rec.Headers {
		out = append(out, h.Key)
	}
	return out
}
