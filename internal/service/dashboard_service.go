package service

//go:generate mockgen -source=dashboard_service.go -destination=mocks/dashboard_service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"symphony/internal/cache"
	"symphony/internal/models"
	"symphony/internal/repository"
	"symphony/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, error)
	RefreshDashboard(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, error)
	ExportDashboard(ctx context.Context, projectID uuid.UUID) ([]byte, error)
}

type dashboardService struct {
	projects  repository.ProjectRepository
	caches    repository.ProjectCacheRepository
	bundles   cache.BundleCache
	refresher RefreshService
	log       *zap.SugaredLogger
}

func NewDashboardService(
	projects repository.ProjectRepository,
	caches repository.ProjectCacheRepository,
	bundles cache.BundleCache,
	refresher RefreshService,
	log *zap.SugaredLogger,
) DashboardService {
	return &dashboardService{
		projects:  projects,
		caches:    caches,
		bundles:   bundles,
		refresher: refresher,
		log:       log,
	}
}

// GetDashboard serves the cached entries of a project. Types never fetched are nil.
func (s *dashboardService) GetDashboard(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, error) {
	if bundle, ok, err := s.bundles.Get(ctx, projectID); err != nil {
		s.log.Warnw("dashboard cache read failed", "project", projectID, "error", err)
	} else if ok {
		return bundle, nil
	}

	// read before loading so a refresh that lands in between voids the write
	version, versionErr := s.bundles.Version(ctx, projectID)
	if versionErr != nil {
		s.log.Warnw("dashboard cache version read failed", "project", projectID, "error", versionErr)
	}

	bundle, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		if err := s.bundles.Set(ctx, bundle, version); err != nil {
			s.log.Warnw("dashboard cache write failed", "project", projectID, "error", err)
		}
	}
	return bundle, nil
}

// RefreshDashboard refreshes the project synchronously and returns what was stored.
func (s *dashboardService) RefreshDashboard(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	s.refresher.RefreshProject(ctx, project)

	return s.load(ctx, projectID)
}

func (s *dashboardService) ExportDashboard(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	bundle, err := s.GetDashboard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	data, err := utils.CreateDashboardWorkbook(project, bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard workbook: %w", err)
	}
	return data, nil
}

func (s *dashboardService) load(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, error) {
	entries, err := s.caches.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entries: %w", err)
	}
	return models.NewDashboardBundle(projectID, entries)
}
