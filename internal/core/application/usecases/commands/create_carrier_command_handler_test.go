package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCarrierHandler(carriers *MockCarrierRepository) (commands.CreateCarrierCommandHandler, *MockUoW) {
	uow := newMockUoW(nil, carriers)
	factory := new(MockCarrierUoWFactory)
	factory.On("Create").Return(uow)
	return commands.NewCreateCarrierCommandHandler(factory), uow
}

func TestCreateCarrierCommandHandler_Handle(t *testing.T) {
	carriers := new(MockCarrierRepository)
	handler, uow := newCreateCarrierHandler(carriers)

	cmd, err := commands.NewCreateCarrierCommand(testTenantID, "GLS Germany", "https://api.gls.test",
		"https://gls.test/{trackingNumber}", "", carrier.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)

	carriers.On("Add", mock.Anything, mock.MatchedBy(func(c *carrier.Carrier) bool {
		return c.ID().IsEqual(cmd.CarrierID()) && c.IsActive() && c.ResolvedKind() == carrier.KindGLS
	})).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	id, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, id.IsEqual(cmd.CarrierID()))
	carriers.AssertExpectations(t)
}

func TestCreateCarrierCommandHandler_InvalidCarrier(t *testing.T) {
	carriers := new(MockCarrierRepository)
	handler, _ := newCreateCarrierHandler(carriers)

	cmd, err := commands.NewCreateCarrierCommand(testTenantID, "", "not a url", "", "", carrier.Credentials{})
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	carriers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateCarrierCommandHandler_RepositoryFailure(t *testing.T) {
	carriers := new(MockCarrierRepository)
	handler, uow := newCreateCarrierHandler(carriers)

	cmd, err := commands.NewCreateCarrierCommand(testTenantID, "DHL", "https://api.dhl.test", "", "dhl", carrier.Credentials{})
	require.NoError(t, err)
	carriers.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	_, err = handler.Handle(t.Context(), cmd)

	assert.EqualError(t, err, "insert failed")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateCarrierCommand_RejectsUnknownKind(t *testing.T) {
	_, err := commands.NewCreateCarrierCommand(testTenantID, "FedEx", "https://fedex.test", "", "fedex", carrier.Credentials{})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
