package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testTenantID = "tenant-a"

var testTenant = kernel.MustTenantID(testTenantID)

func pendingNote(t *testing.T) *delivery.Note {
	t.Helper()
	item, err := delivery.NewItem("P1", "Widget", decimal.NewFromInt(2), "pcs")
	require.NoError(t, err)
	note, err := delivery.NewNote(kernel.NewUUID(), delivery.GenerateNumber(time.Now()),
		"O1", "C1", "A1", []*delivery.Item{item}, testTenant)
	require.NoError(t, err)
	note.AcceptChanges()
	return note
}

func dispatchedNote(t *testing.T, carrierID kernel.UUID) *delivery.Note {
	t.Helper()
	note := pendingNote(t)
	require.NoError(t, note.AssignShipment(carrierID, "1Z999"))
	require.NoError(t, note.MarkDispatched())
	note.AcceptChanges()
	return note
}

func activeCarrier(t *testing.T, name string) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(kernel.NewUUID(), name, "https://api.carrier.test",
		"https://track.test/{trackingNumber}", carrier.Credentials{APIKey: "key"}, carrier.KindAuto, testTenant)
	require.NoError(t, err)
	return c
}
