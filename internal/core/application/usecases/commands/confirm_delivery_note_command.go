package commands

import (
	"errors"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmDeliveryNoteCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryNoteCommand must be created via NewConfirmDeliveryNoteCommand constructor",
)

// ConfirmDeliveryNoteCommand marks a delivery as received. The proof of delivery
// URL is optional but must be absolute when given.
type ConfirmDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	tenantID           kernel.TenantID
	deliveryNoteID     kernel.UUID
	proofOfDeliveryURL string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryNoteCommand(tenantID string, deliveryNoteID kernel.UUID, proofOfDeliveryURL string) (ConfirmDeliveryNoteCommand, error) {
	command := ConfirmDeliveryNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	tenant, tenantErr := kernel.NewTenantID(tenantID)
	if err := errors.Join(
		tenantErr,
		deliveryNoteID.Validate(),
		command.setProofOfDeliveryURL(proofOfDeliveryURL),
	); err != nil {
		return ConfirmDeliveryNoteCommand{}, err
	}

	command.tenantID = tenant
	command.deliveryNoteID = deliveryNoteID
	return command, nil
}

func (c ConfirmDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryNoteCommandIsNotConstructed)
}

func (c ConfirmDeliveryNoteCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c ConfirmDeliveryNoteCommand) DeliveryNoteID() kernel.UUID {
	return c.deliveryNoteID
}

func (c ConfirmDeliveryNoteCommand) ProofOfDeliveryURL() string {
	return c.proofOfDeliveryURL
}

func (c *ConfirmDeliveryNoteCommand) setProofOfDeliveryURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("proofOfDeliveryUrl", errors.New("must be an absolute URL"))
	}
	c.proofOfDeliveryURL = raw
	return nil
}
