package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/notification"
	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits one message per billable order, keyed by order id so
// facts for the same order stay on one partition.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *slog.Logger
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireAll,
	}
}

func NewKafkaPublisher(writer MessageWriter, cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: writer, timeout: timeout, logger: logger}
}

func (p *KafkaPublisher) PublishBillable(ctx context.Context, fact notification.BillableOrder) error {
	payload, err := json.Marshal(fact)
	if err != nil {
		return errs.Wrap(err, "failed to encode billable order")
	}

	headers := headerCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	// The request may already be finishing; delivery gets its own deadline.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:     []byte(fact.OrderID.String()),
		Value:   payload,
		Headers: headers,
		Time:    fact.OccurredAt,
	})
	if err != nil {
		return errs.Wrapf(err, "failed to publish billable order %s", fact.OrderID)
	}

	p.logger.InfoContext(ctx, "billable order published",
		"order_id", fact.OrderID.String(),
		"order_number", fact.OrderNumber)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapts Kafka headers to the otel propagation carrier.
type headerCarrier []kafka.Header

func (c *headerCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, h := range *c {
		keys = append(keys, h.Key)
	}
	return keys
}
