package service

//go:generate mockgen -source=refresh_service.go -destination=mocks/refresh_service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"symphony/internal/cache"
	"symphony/internal/clients"
	"symphony/internal/models"
	"symphony/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RefreshService pulls external data for projects into the cache store.
type RefreshService interface {
	// RefreshProject never fails: every problem is logged and the affected
	// integration's cache entries are left as they were.
	RefreshProject(ctx context.Context, project *models.Project)
	// RefreshAllProjects refreshes every linked project one at a time and
	// returns how many were processed.
	RefreshAllProjects(ctx context.Context) (int, error)
}

type RefreshConfig struct {
	// KeepStaleOnFailure keeps the existing entry when the upstream call failed.
	// When false, a failed call stores an empty list.
	KeepStaleOnFailure bool
}

type refreshService struct {
	projects     repository.ProjectRepository
	integrations repository.IntegrationRepository
	caches       repository.ProjectCacheRepository
	github       clients.GitHubClient
	slack        clients.SlackClient
	bundles      cache.BundleCache
	clock        clockwork.Clock
	keepStale    bool
	log          *zap.SugaredLogger
}

func NewRefreshService(
	projects repository.ProjectRepository,
	integrations repository.IntegrationRepository,
	caches repository.ProjectCacheRepository,
	github clients.GitHubClient,
	slack clients.SlackClient,
	bundles cache.BundleCache,
	clock clockwork.Clock,
	config RefreshConfig,
	log *zap.SugaredLogger,
) RefreshService {
	return &refreshService{
		projects:     projects,
		integrations: integrations,
		caches:       caches,
		github:       github,
		slack:        slack,
		bundles:      bundles,
		clock:        clock,
		keepStale:    config.KeepStaleOnFailure,
		log:          log,
	}
}

func (s *refreshService) RefreshProject(ctx context.Context, project *models.Project) {
	written := false
	if project.HasGitHub() {
		written = s.refreshGitHub(ctx, project) || written
	}
	if project.HasSlack() {
		written = s.refreshSlack(ctx, project) || written
	}
	if written {
		if err := s.bundles.Invalidate(ctx, project.ID); err != nil {
			s.log.Warnw("failed to invalidate dashboard cache", "project", project.ID, "error", err)
		}
	}
}

func (s *refreshService) RefreshAllProjects(ctx context.Context) (int, error) {
	projects, err := s.projects.ListRefreshable(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list refreshable projects: %w", err)
	}

	refreshed := 0
	for i := range projects {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		s.RefreshProject(ctx, &projects[i])
		refreshed++
	}
	return refreshed, nil
}

func (s *refreshService) refreshGitHub(ctx context.Context, project *models.Project) bool {
	log := s.log.With("project", project.ID, "integration", models.IntegrationGitHub, "repo", project.GithubRepo)

	token, ok := s.accessToken(ctx, log, project.OrganizationID, models.IntegrationGitHub)
	if !ok {
		return false
	}

	var (
		pulls   clients.Result[models.PullRequest]
		commits clients.Result[models.Commit]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pulls, err = s.github.FetchPullRequests(gctx, token, project.GithubRepo)
		return err
	})
	g.Go(func() error {
		var err error
		commits, err = s.github.FetchCommits(gctx, token, project.GithubRepo)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorw("github refresh failed, cached entries left unchanged", "error", err)
		return false
	}

	now := s.now()
	wrotePulls := store(ctx, s, log, project.ID, models.CacheGitHubPRs, pulls, now)
	wroteCommits := store(ctx, s, log, project.ID, models.CacheGitHubCommits, commits, now)
	return wrotePulls || wroteCommits
}

func (s *refreshService) refreshSlack(ctx context.Context, project *models.Project) bool {
	log := s.log.With("project", project.ID, "integration", models.IntegrationSlack, "channel", project.SlackChannel)

	token, ok := s.accessToken(ctx, log, project.OrganizationID, models.IntegrationSlack)
	if !ok {
		return false
	}

	messages, err := s.slack.FetchMessages(ctx, token, project.SlackChannel)
	if err != nil {
		log.Errorw("slack refresh failed, cached entry left unchanged", "error", err)
		return false
	}

	return store(ctx, s, log, project.ID, models.CacheSlackMessages, messages, s.now())
}

func (s *refreshService) accessToken(ctx context.Context, log *zap.SugaredLogger, orgID uuid.UUID, integrationType models.IntegrationType) (string, bool) {
	integration, err := s.integrations.FindByOrganization(ctx, orgID, integrationType)
	if errors.Is(err, repository.ErrNotFound) {
		log.Infow("integration not connected, skipping")
		return "", false
	}
	if err != nil {
		log.Errorw("failed to load integration", "error", err)
		return "", false
	}
	return integration.AccessToken, true
}

// now is truncated to the database's timestamp precision so stored and returned values match.
func (s *refreshService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

func store[T any](
	ctx context.Context,
	s *refreshService,
	log *zap.SugaredLogger,
	projectID uuid.UUID,
	cacheType models.CacheType,
	res clients.Result[T],
	at time.Time,
) bool {
	records := res.Records
	if res.Failed() {
		if s.keepStale {
			log.Warnw("upstream fetch failed, keeping cached entry", "type", cacheType, "reason", res.Err)
			return false
		}
		log.Warnw("upstream fetch failed, storing empty list", "type", cacheType, "reason", res.Err)
		records = []T{}
	}

	entry, err := models.NewProjectCache(projectID, cacheType, records, at)
	if err != nil {
		log.Errorw("failed to encode cache entry", "type", cacheType, "error", err)
		return false
	}
	if err := s.caches.Upsert(ctx, entry); err != nil {
		log.Errorw("failed to store cache entry", "type", cacheType, "error", err)
		return false
	}
	log.Debugw("cache entry stored", "type", cacheType, "records", len(records))
	return true
}
