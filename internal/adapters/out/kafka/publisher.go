// Package kafka publishes delivery events to Kafka, one topic per event type.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type messageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// Publisher writes enveloped events keyed by delivery note id, so all events
// of one note land on the same partition.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a traced writer. Topics are created on first use when
// the cluster allows it.
func NewPublisher(brokers []string, clientID string, logger *slog.Logger) (*Publisher, error) {
	base := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithPropagator(otel.GetTextMapPropagator()),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				attribute.String("messaging.kafka.client_id", clientID),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka writer: %w", err)
	}

	return newPublisher(writer, logger), nil
}

func newPublisher(writer messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger.With("component", "kafka_publisher"),
		now:    time.Now,
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	err := p.publish(ctx, eventType, payload)
	metrics.EventsPublishedTotal.WithLabelValues(eventType, metrics.Outcome(err)).Inc()
	return err
}

func (p *Publisher) publish(ctx context.Context, eventType string, payload any) error {
	timestamp := p.now().UTC()
	body, err := json.Marshal(ports.Envelope{
		EventType: eventType,
		Timestamp: timestamp,
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Topic: eventType,
		Key:   []byte(partitionKey(payload)),
		Value: body,
		Time:  timestamp,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
		},
	}
	if err = p.writer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrBrokerUnavailable, err)
	}

	p.logger.DebugContext(ctx, "event published", "event_type", eventType)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func partitionKey(payload any) string {
	switch v := payload.(type) {
	case ports.DeliveryCreatedPayload:
		return v.DeliveryNoteID
	case ports.DeliveryDispatchedPayload:
		return v.DeliveryNoteID
	case ports.DeliveryConfirmedPayload:
		return v.DeliveryNoteID
	case ports.DeliveryCanceledPayload:
		return v.DeliveryNoteID
	default:
		return ""
	}
}
