// Package carrierrepo maps carrier configuration to the carriers table.
package carrierrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierDTO represents the database structure for carriers.
type CarrierDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID            string         `gorm:"type:varchar(64);index;not null"`
	Name                string         `gorm:"type:varchar(128);not null"`
	APIEndpoint         string         `gorm:"type:text;not null"`
	TrackingURLTemplate string         `gorm:"type:text"`
	Kind                string         `gorm:"type:varchar(16)"`
	Active              bool           `gorm:"not null;default:true"`
	Credentials         CredentialsDTO `gorm:"embedded;embeddedPrefix:credential_"`
	CreatedAt           time.Time      `gorm:"not null"`
	UpdatedAt           time.Time      `gorm:"not null"`
}

// TableName specifies the database table name for carrier entities.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// CredentialsDTO is embedded into the carriers table.
type CredentialsDTO struct {
	APIKey        string `gorm:"type:text"`
	Username      string `gorm:"type:varchar(128)"`
	Password      string `gorm:"type:text"`
	AccountNumber string `gorm:"type:varchar(64)"`
}

func fromDomain(c *carrier.Carrier) CarrierDTO {
	creds := c.Credentials()
	return CarrierDTO{
		ID:                  c.ID().Bytes(),
		TenantID:            c.TenantID().String(),
		Name:                c.Name(),
		APIEndpoint:         c.APIEndpoint(),
		TrackingURLTemplate: c.TrackingURLTemplate(),
		Kind:                c.Kind().String(),
		Active:              c.IsActive(),
		Credentials: CredentialsDTO{
			APIKey:        creds.APIKey,
			Username:      creds.Username,
			Password:      creds.Password,
			AccountNumber: creds.AccountNumber,
		},
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	return carrier.RestoreCarrier(
		id,
		dto.Name,
		dto.APIEndpoint,
		dto.TrackingURLTemplate,
		carrier.Credentials{
			APIKey:        dto.Credentials.APIKey,
			Username:      dto.Credentials.Username,
			Password:      dto.Credentials.Password,
			AccountNumber: dto.Credentials.AccountNumber,
		},
		carrier.Kind(dto.Kind),
		dto.Active,
		tenantID,
	)
}
