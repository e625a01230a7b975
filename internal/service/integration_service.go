package service

//go:generate mockgen -source=integration_service.go -destination=mocks/integration_service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"symphony/internal/models"
	"symphony/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ConnectInput struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	Metadata     datatypes.JSON
}

// IntegrationService manages organization credentials. Tokens are write-only.
type IntegrationService interface {
	List(ctx context.Context, orgID uuid.UUID) ([]models.IntegrationStatus, error)
	Connect(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType, input ConnectInput) (*models.IntegrationStatus, error)
	Disconnect(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) error
}

type integrationService struct {
	repo repository.IntegrationRepository
	log  *zap.SugaredLogger
}

func NewIntegrationService(repo repository.IntegrationRepository, log *zap.SugaredLogger) IntegrationService {
	return &integrationService{repo: repo, log: log}
}

var integrationTypes = []models.IntegrationType{models.IntegrationGitHub, models.IntegrationSlack}

// List reports every supported integration type, connected or not.
func (s *integrationService) List(ctx context.Context, orgID uuid.UUID) ([]models.IntegrationStatus, error) {
	stored, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}

	byType := make(map[models.IntegrationType]models.Integration, len(stored))
	for _, i := range stored {
		byType[i.Type] = i
	}

	statuses := make([]models.IntegrationStatus, 0, len(integrationTypes))
	for _, t := range integrationTypes {
		status := models.IntegrationStatus{Type: t}
		if i, ok := byType[t]; ok {
			updated := i.UpdatedAt
			status.Connected = true
			status.UpdatedAt = &updated
			status.Metadata = i.Metadata
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *integrationService) Connect(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType, input ConnectInput) (*models.IntegrationStatus, error) {
	if !integrationType.Valid() {
		return nil, fmt.Errorf("%w: unknown integration type %q", ErrInvalidInput, integrationType)
	}
	token := strings.TrimSpace(input.AccessToken)
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	integration := &models.Integration{
		OrganizationID: orgID,
		Type:           integrationType,
		AccessToken:    token,
		RefreshToken:   input.RefreshToken,
		ExpiresAt:      input.ExpiresAt,
		Metadata:       input.Metadata,
	}
	if err := s.repo.Upsert(ctx, integration); err != nil {
		return nil, fmt.Errorf("failed to store integration: %w", err)
	}

	s.log.Infow("integration connected", "organization", orgID, "type", integrationType)
	updated := integration.UpdatedAt
	return &models.IntegrationStatus{
		Type:      integrationType,
		Connected: true,
		UpdatedAt: &updated,
		Metadata:  integration.Metadata,
	}, nil
}

func (s *integrationService) Disconnect(ctx context.Context, orgID uuid.UUID, integrationType models.IntegrationType) error {
	if !integrationType.Valid() {
		return fmt.Errorf("%w: unknown integration type %q", ErrInvalidInput, integrationType)
	}
	if err := s.repo.Delete(ctx, orgID, integrationType); err != nil {
		return err
	}
	s.log.Infow("integration disconnected", "organization", orgID, "type", integrationType)
	return nil
}
