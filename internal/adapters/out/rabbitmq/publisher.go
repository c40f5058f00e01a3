package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
)

// Publisher sends enveloped delivery events to the delivery.events topic
// exchange, using the event type as routing key.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
	now    func() time.Time

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger.With("component", "rabbitmq_publisher"),
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

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	p.mu.Lock()
	defer p.mu.Unlock()

	err = ch.PublishWithContext(
		ctx,
		DeliveryEventsExchange, // exchange name
		eventType,              // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    timestamp,
			Type:         eventType,
			Headers:      headers,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "event published", "event_type", eventType)
	return nil
}
