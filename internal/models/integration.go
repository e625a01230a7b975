package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IntegrationType string

const (
	IntegrationGitHub IntegrationType = "github"
	IntegrationSlack  IntegrationType = "slack"
)

func (t IntegrationType) Valid() bool {
	return t == IntegrationGitHub || t == IntegrationSlack
}

// Integration is an organization's stored credential for one external service.
type Integration struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex:idx_integration_org_type"`
	Type           IntegrationType `gorm:"type:varchar(16);not null;uniqueIndex:idx_integration_org_type"`
	AccessToken    string          `gorm:"type:text;not null"`
	RefreshToken   string          `gorm:"type:text"`
	ExpiresAt      *time.Time
	Metadata       datatypes.JSON
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (i *Integration) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IntegrationStatus is the token-free view of an integration served to clients.
type IntegrationStatus struct {
	Type      IntegrationType `json:"type"`
	Connected bool            `json:"connected"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
	Metadata  datatypes.JSON  `json:"metadata,omitempty"`
}
