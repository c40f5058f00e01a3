package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const bareEvent = `{
	"orderId": "O1",
	"customerId": "C1",
	"deliveryAddressId": "A1",
	"tenantId": "tenant-a",
	"items": [
		{"productId": "P1", "description": "Widget", "quantity": 2, "unit": "box"},
		{"productId": "P2", "name": "Gadget", "quantity": "1.5"}
	]
}`

type MockCreateHandler struct {
	mock.Mock
}

func (m *MockCreateHandler) Handle(ctx context.Context, cmd commands.CreateDeliveryNoteCommand) (*delivery.Note, error) {
	args := m.Called(ctx, cmd)
	note, _ := args.Get(0).(*delivery.Note)
	return note, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeOrderFulfilled_Bare(t *testing.T) {
	event, err := DecodeOrderFulfilled([]byte(bareEvent))

	require.NoError(t, err)
	assert.Equal(t, "O1", event.OrderID)
	assert.Equal(t, "tenant-a", event.TenantID)
	require.Len(t, event.Items, 2)
	assert.True(t, decimal.RequireFromString("1.5").Equal(event.Items[1].Quantity))
}

func TestDecodeOrderFulfilled_Enveloped(t *testing.T) {
	body := `{"eventType":"order.fulfilled","timestamp":"2024-01-01T00:00:00Z","payload":` + bareEvent + `}`

	event, err := DecodeOrderFulfilled([]byte(body))

	require.NoError(t, err)
	assert.Equal(t, "O1", event.OrderID)
	assert.Equal(t, "A1", event.DeliveryAddressID)
	assert.Len(t, event.Items, 2)
}

func TestDecodeOrderFulfilled_Invalid(t *testing.T) {
	_, err := DecodeOrderFulfilled([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = DecodeOrderFulfilled([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewCreateCommand_AppliesFallbacks(t *testing.T) {
	event, err := DecodeOrderFulfilled([]byte(bareEvent))
	require.NoError(t, err)

	cmd, err := NewCreateCommand(event)

	require.NoError(t, err)
	require.Len(t, cmd.Items(), 2)
	assert.Equal(t, "Widget", cmd.Items()[0].Description())
	assert.Equal(t, "box", cmd.Items()[0].Unit())
	assert.Equal(t, "Gadget", cmd.Items()[1].Description())
	assert.Equal(t, delivery.DefaultUnit, cmd.Items()[1].Unit())
}

func TestNewCreateCommand_RequiresTenant(t *testing.T) {
	event, err := DecodeOrderFulfilled([]byte(bareEvent))
	require.NoError(t, err)
	event.TenantID = ""

	_, err = NewCreateCommand(event)

	assert.ErrorIs(t, err, kernel.ErrTenantIDIsRequired)
}

func TestOrderFulfilledHandler_HandleMessage(t *testing.T) {
	item, err := delivery.NewItem("P1", "Widget", decimal.NewFromInt(2), "pcs")
	require.NoError(t, err)
	note, err := delivery.NewNote(kernel.NewUUID(), delivery.GenerateNumber(time.Now()),
		"O1", "C1", "A1", []*delivery.Item{item}, kernel.MustTenantID("tenant-a"))
	require.NoError(t, err)

	create := &MockCreateHandler{}
	create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateDeliveryNoteCommand) bool {
		return cmd.OrderID() == "O1" && cmd.TenantID().String() == "tenant-a"
	})).Return(note, nil).Once()

	handler := NewOrderFulfilledHandler(create, discardLogger())

	require.NoError(t, handler.HandleMessage(context.Background(), []byte(bareEvent)))
	create.AssertExpectations(t)
}

func TestOrderFulfilledHandler_PropagatesFailure(t *testing.T) {
	create := &MockCreateHandler{}
	create.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	handler := NewOrderFulfilledHandler(create, discardLogger())

	assert.EqualError(t, handler.HandleMessage(context.Background(), []byte(bareEvent)), "db down")
}

func TestOrderFulfilledHandler_InvalidEventNeverReachesCommand(t *testing.T) {
	create := &MockCreateHandler{}
	handler := NewOrderFulfilledHandler(create, discardLogger())

	err := handler.HandleMessage(context.Background(), []byte(`{"orderId":"O1","tenantId":"tenant-a","items":[]}`))

	assert.True(t, errs.IsValidation(err))
	create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
