// Package rabbitmq holds the AMQP connection and the delivery event publisher.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology shared by the publisher and the order.fulfilled consumer.
const (
	DeliveryEventsExchange = "delivery.events"
	OrdersExchange         = "orders"
	OrderFulfilledQueue    = "fulfillment.order-fulfilled"
)

// Connection owns one AMQP connection and channel. It starts disconnected;
// Connect dials the broker and declares the topology. While disconnected,
// Channel returns ports.ErrBrokerUnavailable.
type Connection struct {
	url    string
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

func NewConnection(url string, logger *slog.Logger) *Connection {
	return &Connection{
		url:    url,
		logger: logger.With("component", "rabbitmq"),
	}
}

// Connect dials the broker, opens a channel and declares exchanges and queues.
func (c *Connection) Connect(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err = declareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = ch
	c.closed = false
	c.mu.Unlock()

	go c.watch(ctx, conn)

	c.logger.InfoContext(ctx, "connected to rabbitmq")
	return nil
}

// watch marks the connection unavailable when the broker drops it.
func (c *Connection) watch(ctx context.Context, conn *amqp.Connection) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-ctx.Done():
		return
	case amqpErr, ok := <-closed:
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn != conn {
			return
		}
		c.conn = nil
		c.channel = nil
		if c.closed || !ok || amqpErr == nil {
			return
		}
		c.logger.ErrorContext(ctx, "rabbitmq connection lost", "error", amqpErr)
	}
}

func declareTopology(ch *amqp.Channel) error {
	for _, exchange := range []string{DeliveryEventsExchange, OrdersExchange} {
		if err := ch.ExchangeDeclare(
			exchange, // name
			"topic",  // type
			true,     // durable
			false,    // auto-deleted
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	if _, err := ch.QueueDeclare(
		OrderFulfilledQueue, // name
		true,                // durable
		false,               // auto-deleted
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", OrderFulfilledQueue, err)
	}

	if err := ch.QueueBind(
		OrderFulfilledQueue,       // queue name
		ports.EventOrderFulfilled, // routing key
		OrdersExchange,            // exchange name
		false,                     // no-wait
		nil,                       // arguments
	); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", OrderFulfilledQueue, err)
	}

	return nil
}

// Channel returns the open channel or ports.ErrBrokerUnavailable.
func (c *Connection) Channel() (*amqp.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.channel == nil || c.channel.IsClosed() {
		return nil, ports.ErrBrokerUnavailable
	}
	return c.channel, nil
}

func (c *Connection) IsConnected() bool {
	_, err := c.Channel()
	return err == nil
}

// Close is a no-op on a connection that never connected.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	var err error
	if c.channel != nil {
		err = errors.Join(err, c.channel.Close())
		c.channel = nil
	}
	if c.conn != nil {
		err = errors.Join(err, c.conn.Close())
		c.conn = nil
	}
	return err
}
