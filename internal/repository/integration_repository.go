package repository

//go:generate mockgen -source=integration_repository.go -destination=../mocks/integration_repository_mock.go -package=mocks

import (
	"context"

	"symphony/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IntegrationRepository interface {
	FindByOrganization(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) (*models.Integration, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Integration, error)
	Upsert(ctx context.Context, integration *models.Integration) error
	Delete(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) error
}

type integrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

// FindByOrganization returns ErrNotFound when the organization has not connected the service.
func (r *integrationRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) (*models.Integration, error) {
	var integration models.Integration
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND type = ?", orgID, integrationType).
		First(&integration).
		Error
	if err != nil {
		return nil, mapError(err)
	}
	return &integration, nil
}

func (r *integrationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Integration, error) {
	var integrations []models.Integration
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("type ASC").
		Find(&integrations).
		Error
	return integrations, err
}

func (r *integrationRepository) Upsert(ctx context.Context, integration *models.Integration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at", "metadata", "updated_at"}),
		}).
		Create(integration).
		Error
}

func (r *integrationRepository) Delete(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) error {
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND type = ?", orgID, integrationType).
		Delete(&models.Integration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
