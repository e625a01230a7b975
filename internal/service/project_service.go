package service

//go:generate mockgen -source=project_service.go -destination=mocks/project_service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"symphony/internal/cache"
	"symphony/internal/clients"
	"symphony/internal/models"
	"symphony/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateProjectInput struct {
	Name         string
	GithubRepo   string
	SlackChannel string
}

// UpdateProjectInput changes only the fields that are set.
type UpdateProjectInput struct {
	Name         *string
	GithubRepo   *string
	SlackChannel *string
}

type ProjectService interface {
	Create(ctx context.Context, orgID uuid.UUID, input CreateProjectInput) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, orgID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	repo    repository.ProjectRepository
	bundles cache.BundleCache
	log     *zap.SugaredLogger
}

func NewProjectService(repo repository.ProjectRepository, bundles cache.BundleCache, log *zap.SugaredLogger) ProjectService {
	return &projectService{repo: repo, bundles: bundles, log: log}
}

func (s *projectService) Create(ctx context.Context, orgID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:           strings.TrimSpace(input.Name),
		OrganizationID: orgID,
		GithubRepo:     strings.TrimSpace(input.GithubRepo),
		SlackChannel:   strings.TrimSpace(input.SlackChannel),
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.log.Infow("project created", "project", project.ID, "organization", orgID)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, orgID uuid.UUID) ([]models.Project, error) {
	projects, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// Update edits a project. Link changes take effect on the next refresh.
func (s *projectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.GithubRepo != nil {
		project.GithubRepo = strings.TrimSpace(*input.GithubRepo)
	}
	if input.SlackChannel != nil {
		project.SlackChannel = strings.TrimSpace(*input.SlackChannel)
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Infow("project deleted", "project", id)
	return nil
}

func (s *projectService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.bundles.Invalidate(ctx, id); err != nil {
		s.log.Warnw("failed to invalidate dashboard cache", "project", id, "error", err)
	}
}

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.GithubRepo != "" {
		if _, _, err := clients.ParseRepo(p.GithubRepo); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if strings.ContainsAny(p.SlackChannel, " \t\n") {
		return fmt.Errorf("%w: slack channel must be a channel id", ErrInvalidInput)
	}
	return nil
}
