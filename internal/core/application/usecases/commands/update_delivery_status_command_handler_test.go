package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliveryStatusCommandHandler_Handle(t *testing.T) {
	notes := new(MockDeliveryNoteRepository)
	uow := newMockUoW(notes, nil)
	factory := new(MockDeliveryNoteUoWFactory)
	factory.On("Create").Return(uow)
	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	note := dispatchedNote(t, kernel.NewUUID())

	notes.On("Get", mock.Anything, note.ID(), testTenant).Return(note, nil).Once()
	notes.On("Update", mock.Anything, note).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testTenant, note.ID(), delivery.StatusInTransit,
		map[string]any{"carrierStatus": "In Transit - Hub A"})
	require.NoError(t, err)

	updated, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusInTransit, updated.Status())
	last := updated.Events()[len(updated.Events())-1]
	assert.Equal(t, delivery.EventInTransit, last.Type())
	assert.Equal(t, "In Transit - Hub A", last.Metadata()["carrierStatus"])
	notes.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_PropagatesConflicts(t *testing.T) {
	notes := new(MockDeliveryNoteRepository)
	uow := newMockUoW(notes, nil)
	factory := new(MockDeliveryNoteUoWFactory)
	factory.On("Create").Return(uow)
	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	note := dispatchedNote(t, kernel.NewUUID())

	notes.On("Get", mock.Anything, note.ID(), testTenant).Return(note, nil).Once()
	notes.On("Update", mock.Anything, note).
		Return(errs.NewInvalidStateError("delivery note", "DISPATCHED", "status changed concurrently")).Once()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testTenant, note.ID(), delivery.StatusDelivered, nil)
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewUpdateDeliveryStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateDeliveryStatusCommand(testTenant, kernel.NewUUID(), delivery.Status("LOST"), nil)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
