package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrTenantIDIsRequired is returned for a blank tenant identifier.
var ErrTenantIDIsRequired = errs.NewValueIsRequiredError("tenantId")

// TenantID is the isolation boundary every delivery note and carrier belongs to.
// It is part of every lookup key, never an afterthought filter.
type TenantID struct {
	value string
}

// NewTenantID trims and validates a tenant identifier.
func NewTenantID(value string) (TenantID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TenantID{}, ErrTenantIDIsRequired
	}
	return TenantID{value: value}, nil
}

// MustTenantID is NewTenantID for tests and constants; it panics on blank input.
func MustTenantID(value string) TenantID {
	tenant, err := NewTenantID(value)
	if err != nil {
		panic(err)
	}
	return tenant
}

func (t TenantID) String() string {
	return t.value
}

func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

// Validate rejects the zero value.
func (t TenantID) Validate() error {
	if t.value == "" {
		return ErrTenantIDIsRequired
	}
	return nil
}
