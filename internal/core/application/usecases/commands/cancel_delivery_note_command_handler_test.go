package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCancelHandler(notes *MockDeliveryNoteRepository, inventory *MockInventoryClient, publisher *MockEventPublisher) (commands.CancelDeliveryNoteCommandHandler, *MockUoW) {
	uow := newMockUoW(notes, nil)
	factory := new(MockDeliveryNoteUoWFactory)
	factory.On("Create").Return(uow)
	return commands.NewCancelDeliveryNoteCommandHandler(factory, inventory, publisher, discardLogger), uow
}

func TestCancelDeliveryNoteCommandHandler_PendingNoteKeepsStock(t *testing.T) {
	notes := new(MockDeliveryNoteRepository)
	inventory := new(MockInventoryClient)
	publisher := new(MockEventPublisher)
	handler, uow := newCancelHandler(notes, inventory, publisher)
	note := pendingNote(t)

	notes.On("Get", mock.Anything, note.ID(), testTenant).Return(note, nil).Once()
	notes.On("Update", mock.Anything, note).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.Anything, ports.EventDeliveryCanceled, ports.DeliveryCanceledPayload{
		DeliveryNoteID: note.ID().String(),
		OrderID:        "O1",
		Reason:         "duplicate order",
		TenantID:       testTenantID,
	}).Return(nil).Once()

	cmd, err := commands.NewCancelDeliveryNoteCommand(testTenantID, note.ID(), " duplicate order ")
	require.NoError(t, err)

	canceled, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusCanceled, canceled.Status())
	inventory.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestCancelDeliveryNoteCommandHandler_DispatchedNoteRestoresStock(t *testing.T) {
	notes := new(MockDeliveryNoteRepository)
	inventory := new(MockInventoryClient)
	publisher := new(MockEventPublisher)
	handler, uow := newCancelHandler(notes, inventory, publisher)
	note := dispatchedNote(t, kernel.NewUUID())

	notes.On("Get", mock.Anything, note.ID(), testTenant).Return(note, nil).Once()
	notes.On("Update", mock.Anything, note).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	inventory.On("Restore", mock.Anything, mock.Anything, testTenant, note.Number().String()).
		Return(errs.NewUpstreamServiceError("inventory", "restore", errors.New("timeout"))).Once()
	publisher.On("Publish", mock.Anything, ports.EventDeliveryCanceled, mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCancelDeliveryNoteCommand(testTenantID, note.ID(), "")
	require.NoError(t, err)

	canceled, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusCanceled, canceled.Status())
	inventory.AssertExpectations(t)
}

func TestCancelDeliveryNoteCommandHandler_TerminalNote(t *testing.T) {
	notes := new(MockDeliveryNoteRepository)
	inventory := new(MockInventoryClient)
	publisher := new(MockEventPublisher)
	handler, _ := newCancelHandler(notes, inventory, publisher)
	note := dispatchedNote(t, kernel.NewUUID())
	require.NoError(t, note.Confirm(""))
	note.AcceptChanges()

	notes.On("Get", mock.Anything, note.ID(), testTenant).Return(note, nil).Once()

	cmd, err := commands.NewCancelDeliveryNoteCommand(testTenantID, note.ID(), "")
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
