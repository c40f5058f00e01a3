// Package kafka consumes order.fulfilled events from Kafka.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
)

// MessageHandler processes one message body.
type MessageHandler interface {
	HandleMessage(ctx context.Context, body []byte) error
}

const (
	initialReadBackoff = 500 * time.Millisecond
	maxReadBackoff     = 30 * time.Second
)

type messageReader interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// Consumer reads the order.fulfilled topic inside a consumer group. Offsets
// are committed as messages are read, so a message whose handler fails is dropped.
type Consumer struct {
	reader  messageReader
	handler MessageHandler
	logger  *slog.Logger
	sleep   retry.SleepFunc
}

func NewConsumer(brokers []string, groupID string, handler MessageHandler, logger *slog.Logger) (*Consumer, error) {
	base := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   ports.EventOrderFulfilled,
		GroupID: groupID,
	})

	reader, err := otelkafka.NewReader(base)
	if err != nil {
		_ = base.Close()
		return nil, fmt.Errorf("failed to create kafka reader: %w", err)
	}

	return newConsumer(reader, handler, logger), nil
}

func newConsumer(reader messageReader, handler MessageHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "kafka_consumer"),
		sleep:   retry.ContextSleep,
	}
}

// Run blocks until ctx is canceled or the reader is closed. Other read errors
// are retried with a doubling delay capped at maxReadBackoff.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "consuming order fulfilled events", "topic", ports.EventOrderFulfilled)

	backoff := initialReadBackoff
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			if errors.Is(err, io.EOF) || errors.Is(err, kafka.ErrGroupClosed) {
				c.logger.InfoContext(ctx, "kafka reader closed")
				return nil
			}
			c.logger.ErrorContext(ctx, "failed to read kafka message", "error", err, "retry_in", backoff)
			if err = c.sleep(ctx, backoff); err != nil {
				return nil
			}
			backoff = min(backoff*2, maxReadBackoff)
			continue
		}
		backoff = initialReadBackoff

		if err = c.handler.HandleMessage(ctx, msg.Value); err != nil {
			c.logger.WarnContext(ctx, "dropping order fulfilled message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
