package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessage(ctx context.Context, msg kafka.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func newTestPublisher(writer messageWriter) *Publisher {
	p := newPublisher(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func TestPublisher_WritesEnvelopeToEventTopic(t *testing.T) {
	writer := &MockWriter{}
	var written kafka.Message
	writer.On("WriteMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).(kafka.Message) }).
		Return(nil).Once()

	err := newTestPublisher(writer).Publish(context.Background(), ports.EventDeliveryConfirmed, ports.DeliveryConfirmedPayload{
		DeliveryNoteID: "n-1",
		OrderID:        "O1",
		TenantID:       "tenant-a",
	})

	require.NoError(t, err)
	assert.Equal(t, ports.EventDeliveryConfirmed, written.Topic)
	assert.Equal(t, []byte("n-1"), written.Key)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(written.Value, &envelope))
	assert.Equal(t, ports.EventDeliveryConfirmed, envelope["eventType"])
	assert.Equal(t, "2024-01-02T03:04:05Z", envelope["timestamp"])
	payload := envelope["payload"].(map[string]any)
	assert.Equal(t, "n-1", payload["deliveryNoteId"])
	assert.NotContains(t, payload, "proofOfDeliveryUrl")
}

func TestPublisher_WriteFailureIsBrokerUnavailable(t *testing.T) {
	writer := &MockWriter{}
	writer.On("WriteMessage", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()

	err := newTestPublisher(writer).Publish(context.Background(), ports.EventDeliveryCreated, ports.DeliveryCreatedPayload{})

	assert.ErrorIs(t, err, ports.ErrBrokerUnavailable)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, "n-2", partitionKey(ports.DeliveryCanceledPayload{DeliveryNoteID: "n-2"}))
	assert.Equal(t, "n-3", partitionKey(ports.DeliveryDispatchedPayload{DeliveryNoteID: "n-3"}))
	assert.Empty(t, partitionKey(map[string]string{"a": "b"}))
}
