package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/ocean-data-dashboard/internal/config"
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// publishTimeout bounds one Publish call so an unreachable broker cannot hold
// a page render.
const publishTimeout = 2 * time.Second

// messageWriter is the subset of *kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes computed snapshots to the summary topic.
// It implements dashboard.Publisher.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	timeout time.Duration
}

// NewPublisher creates a Kafka producer for the configured summary topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSummaryTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: publishTimeout,
	}
	return &Publisher{writer: w, logger: logger, timeout: publishTimeout}
}

// Publish serializes one snapshot and writes it keyed by its coordinate, so
// snapshots for the same location land on the same partition.
func (p *Publisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	msg, err := serializeToMessage(snap)
	if err != nil {
		return err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", snap.Coordinate.Key(), err)
	}
	p.logger.Debug("snapshot published", "coordinate", snap.Coordinate.Key())
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Snapshot into a Kafka message.
func serializeToMessage(snap domain.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	key := snap.Coordinate.Key()
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(snap.GeneratedAt.Format(time.RFC3339))},
			{Key: "coordinate", Value: []byte(key)},
		},
	}, nil
}
