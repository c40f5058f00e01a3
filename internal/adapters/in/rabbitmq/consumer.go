// Package rabbitmq consumes order.fulfilled events from the orders exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	outrabbitmq "fulfillment/internal/adapters/out/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultPrefetch bounds the unacknowledged deliveries held by the consumer.
const DefaultPrefetch = 10

var ErrDeliveriesClosed = errors.New("rabbitmq delivery channel closed")

type deliveryChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table) (<-chan amqp.Delivery, error)
}

// MessageHandler processes one message body.
type MessageHandler interface {
	HandleMessage(ctx context.Context, body []byte) error
}

// Consumer reads the fulfillment.order-fulfilled queue with manual ack.
// A message whose handler fails is rejected without requeue.
type Consumer struct {
	channel  func() (deliveryChannel, error)
	handler  MessageHandler
	prefetch int
	logger   *slog.Logger
}

func NewConsumer(conn *outrabbitmq.Connection, handler MessageHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		channel: func() (deliveryChannel, error) {
			ch, err := conn.Channel()
			if err != nil {
				return nil, err
			}
			return ch, nil
		},
		handler:  handler,
		prefetch: DefaultPrefetch,
		logger:   logger.With("component", "rabbitmq_consumer"),
	}
}

// Run blocks until ctx is canceled or the broker closes the delivery channel.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.channel()
	if err != nil {
		return err
	}

	if err = ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(
		ctx,
		outrabbitmq.OrderFulfilledQueue, // queue name
		"",                              // consumer name (empty for auto-generation)
		false,                           // auto-ack
		false,                           // exclusive
		false,                           // no-local
		false,                           // no-wait
		nil,                             // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", outrabbitmq.OrderFulfilledQueue, err)
	}

	c.logger.InfoContext(ctx, "consuming order fulfilled events", "queue", outrabbitmq.OrderFulfilledQueue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg amqp.Delivery) {
	msgCtx := outrabbitmq.ExtractContext(ctx, msg.Headers)

	if err := c.handler.HandleMessage(msgCtx, msg.Body); err != nil {
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.logger.ErrorContext(msgCtx, "failed to nack message", "error", nackErr)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		c.logger.ErrorContext(msgCtx, "failed to ack message", "error", err)
	}
}
