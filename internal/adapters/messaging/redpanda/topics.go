package redpanda

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type TopicConfig struct {
	Name              string
	Partitions        int32
	ReplicationFactor int16
	Configs           map[string]*string
}

// ScheduleEventsTopic arma la config del topic de eventos de schedules.
// Replication 1 sirve para dev; en prod se pasa por config.
func ScheduleEventsTopic(name string, replication int16) TopicConfig {
	ptr := func(s string) *string { return &s }
	if replication <= 0 {
		replication = 1
	}
	return TopicConfig{
		Name:              name,
		Partitions:        6,
		ReplicationFactor: replication,
		Configs: map[string]*string{
			"retention.ms":     ptr("604800000"), // 7 días
			"cleanup.policy":   ptr("delete"),
			"compression.type": ptr("lz4"),
		},
	}
}

type Admin struct {
	client *kadm.Client
	log    *zap.Logger
}

func NewAdmin(brokers []string, log *zap.Logger) (*Admin, error) {
	if log == nil {
		log = zap.NewNop()
	}
	kc, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("redpanda: admin client: %w", err)
	}
	return &Admin{client: kadm.NewClient(kc), log: log}, nil
}

// EnsureTopics crea los topics que falten. Un topic existente no es error.
func (a *Admin) EnsureTopics(ctx context.Context, topics ...TopicConfig) error {
	for _, t := range topics {
		resp, err := a.client.CreateTopics(ctx, t.Partitions, t.ReplicationFactor, t.Configs, t.Name)
		if err != nil {
			return fmt.Errorf("redpanda: create topic %s: %w", t.Name, err)
		}
		for _, r := range resp {
			if r.Err == nil {
				a.log.Info("topic created", zap.String("topic", r.Topic), zap.Int32("partitions", t.Partitions))
				continue
			}
			if errors.Is(r.Err, kerr.TopicAlreadyExists) {
				a.log.Debug("topic already exists", zap.String("topic", r.Topic))
				continue
			}
			return fmt.Errorf("redpanda: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (a *Admin) Close() {
	a.client.Close()
}
