package queries_test

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

func newNote(t *testing.T, tenantID kernel.TenantID, orderID, customerID string) *delivery.Note {
	t.Helper()
	item, err := delivery.NewItem("P1", "Widget", decimal.NewFromInt(2), "pcs")
	require.NoError(t, err)
	note, err := delivery.NewNote(kernel.NewUUID(), delivery.GenerateNumber(time.Now()),
		orderID, customerID, "A1", []*delivery.Item{item}, tenantID)
	require.NoError(t, err)
	return note
}

func newCarrier(t *testing.T, tenantID kernel.TenantID, name string) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(kernel.NewUUID(), name, "https://api.carrier.test",
		"https://track.test/{trackingNumber}", carrier.Credentials{APIKey: "key"}, carrier.KindAuto, tenantID)
	require.NoError(t, err)
	return c
}
