package service_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"symphony/internal/cache"
	"symphony/internal/clients"
	"symphony/internal/mocks"
	"symphony/internal/models"
	"symphony/internal/repository"
	"symphony/internal/service"
	servicemocks "symphony/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

func TestRefreshDashboard_ReturnsFreshTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectRepository(ctrl)
	integrations := mocks.NewMockIntegrationRepository(ctrl)
	github := mocks.NewMockGitHubClient(ctrl)
	store := newMemoryCacheStore()
	clock := clockwork.NewFakeClockAt(t0.Add(5 * time.Minute))
	project := newProject("acme/widgets", "")

	stale, err := models.NewProjectCache(project.ID, models.CacheGitHubPRs, []models.PullRequest{{ID: 1}}, t0)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(context.Background(), stale))

	projects.EXPECT().GetByID(gomock.Any(), project.ID).Return(project, nil)
	integrations.EXPECT().FindByOrganization(gomock.Any(), project.OrganizationID, models.IntegrationGitHub).
		Return(&models.Integration{AccessToken: "gh"}, nil)
	github.EXPECT().FetchPullRequests(gomock.Any(), "gh", "acme/widgets").
		Return(clients.OK([]models.PullRequest{{ID: 1}, {ID: 2}}), nil)
	github.EXPECT().FetchCommits(gomock.Any(), "gh", "acme/widgets").
		Return(clients.OK([]models.Commit{}), nil)

	log := zaptest.NewLogger(t).Sugar()
	refresher := service.NewRefreshService(projects, integrations, store, github, mocks.NewMockSlackClient(ctrl),
		cache.NewNoopBundleCache(), clock, service.RefreshConfig{KeepStaleOnFailure: true}, log)
	svc := service.NewDashboardService(projects, store, cache.NewNoopBundleCache(), refresher, log)

	bundle, err := svc.RefreshDashboard(context.Background(), project.ID)
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), project.ID, models.CacheGitHubPRs)
	require.NoError(t, err)

	require.NotNil(t, bundle.PullRequests)
	assert.True(t, bundle.PullRequests.LastUpdated.After(t0))
	assert.Equal(t, stored.LastUpdated, *bundle.PullRequests.LastUpdated)
	assert.Len(t, bundle.PullRequests.Data, 2)
	require.NotNil(t, bundle.Commits)
	assert.Empty(t, bundle.Commits.Data)
	assert.Nil(t, bundle.SlackMessages)
}

func TestRefreshDashboard_UnknownProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectRepository(ctrl)
	refresher := servicemocks.NewMockRefreshService(ctrl)
	id := uuid.New()

	projects.EXPECT().GetByID(gomock.Any(), id).Return(nil, repository.ErrNotFound)
	refresher.EXPECT().RefreshProject(gomock.Any(), gomock.Any()).Times(0)

	svc := service.NewDashboardService(projects, newMemoryCacheStore(), cache.NewNoopBundleCache(), refresher, zaptest.NewLogger(t).Sugar())

	_, err := svc.RefreshDashboard(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetDashboard_UsesBundleCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	bundles := mocks.NewMockBundleCache(ctrl)
	caches := mocks.NewMockProjectCacheRepository(ctrl)
	id := uuid.New()
	cached := &models.DashboardBundle{ProjectID: id}

	bundles.EXPECT().Get(gomock.Any(), id).Return(cached, true, nil)
	caches.EXPECT().GetByProject(gomock.Any(), gomock.Any()).Times(0)

	svc := service.NewDashboardService(mocks.NewMockProjectRepository(ctrl), caches, bundles,
		servicemocks.NewMockRefreshService(ctrl), zaptest.NewLogger(t).Sugar())

	got, err := svc.GetDashboard(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, cached, got)
}

func TestGetDashboard_MissLoadsAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	bundles := mocks.NewMockBundleCache(ctrl)
	store := newMemoryCacheStore()
	id := uuid.New()

	entry, err := models.NewProjectCache(id, models.CacheSlackMessages, []models.SlackMessage{{TS: "1.0"}}, t0)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(context.Background(), entry))

	bundles.EXPECT().Get(gomock.Any(), id).Return(nil, false, nil)
	bundles.EXPECT().Version(gomock.Any(), id).Return(int64(7), nil)
	bundles.EXPECT().Set(gomock.Any(), gomock.Any(), int64(7)).DoAndReturn(func(_ context.Context, b *models.DashboardBundle, _ int64) error {
		assert.Equal(t, id, b.ProjectID)
		return nil
	})

	svc := service.NewDashboardService(mocks.NewMockProjectRepository(ctrl), store, bundles,
		servicemocks.NewMockRefreshService(ctrl), zaptest.NewLogger(t).Sugar())

	got, err := svc.GetDashboard(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got.PullRequests)
	assert.Nil(t, got.Commits)
	require.NotNil(t, got.SlackMessages)
	assert.Equal(t, t0, *got.SlackMessages.LastUpdated)
}

// memoryBundleCache mirrors the redis bundle cache: Invalidate bumps the version
// and Set is dropped when the version it was given is no longer current.
type memoryBundleCache struct {
	mu       sync.Mutex
	bundles  map[uuid.UUID]*models.DashboardBundle
	versions map[uuid.UUID]int64
}

func newMemoryBundleCache() *memoryBundleCache {
	return &memoryBundleCache{
		bundles:  make(map[uuid.UUID]*models.DashboardBundle),
		versions: make(map[uuid.UUID]int64),
	}
}

func (m *memoryBundleCache) Get(_ context.Context, id uuid.UUID) (*models.DashboardBundle, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bundles[id]
	return b, ok, nil
}

func (m *memoryBundleCache) Version(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[id], nil
}

func (m *memoryBundleCache) Set(_ context.Context, b *models.DashboardBundle, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[b.ProjectID] == version {
		m.bundles[b.ProjectID] = b
	}
	return nil
}

func (m *memoryBundleCache) Invalidate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[id]++
	delete(m.bundles, id)
	return nil
}

// interleavedStore runs afterRead once, after rows were read but before they are returned.
type interleavedStore struct {
	*memoryCacheStore
	afterRead func()
}

func (s *interleavedStore) GetByProject(ctx context.Context, id uuid.UUID) ([]models.ProjectCache, error) {
	rows, err := s.memoryCacheStore.GetByProject(ctx, id)
	if s.afterRead != nil {
		hook := s.afterRead
		s.afterRead = nil
		hook()
	}
	return rows, err
}

func TestGetDashboard_RefreshDuringLoadIsNotOverwritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id := uuid.New()
	bundles := newMemoryBundleCache()
	store := &interleavedStore{memoryCacheStore: newMemoryCacheStore()}
	refreshedAt := t0.Add(5 * time.Minute)

	old, err := models.NewProjectCache(id, models.CacheGitHubPRs, []models.PullRequest{{ID: 1}}, t0)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, old))

	// what a refresh does: upsert then invalidate
	store.afterRead = func() {
		fresh, err := models.NewProjectCache(id, models.CacheGitHubPRs, []models.PullRequest{{ID: 1}, {ID: 2}}, refreshedAt)
		require.NoError(t, err)
		require.NoError(t, store.Upsert(ctx, fresh))
		require.NoError(t, bundles.Invalidate(ctx, id))
	}

	svc := service.NewDashboardService(mocks.NewMockProjectRepository(ctrl), store, bundles,
		servicemocks.NewMockRefreshService(ctrl), zaptest.NewLogger(t).Sugar())

	first, err := svc.GetDashboard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, t0, *first.PullRequests.LastUpdated)

	_, cached, err := bundles.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, cached)

	second, err := svc.GetDashboard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, refreshedAt, *second.PullRequests.LastUpdated)
	assert.Len(t, second.PullRequests.Data, 2)

	third, err := svc.GetDashboard(ctx, id)
	require.NoError(t, err)
	assert.Same(t, second, third)
}

func TestGetDashboard_VersionErrorSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	bundles := mocks.NewMockBundleCache(ctrl)
	id := uuid.New()

	bundles.EXPECT().Get(gomock.Any(), id).Return(nil, false, nil)
	bundles.EXPECT().Version(gomock.Any(), id).Return(int64(0), errors.New("connection refused"))
	bundles.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	svc := service.NewDashboardService(mocks.NewMockProjectRepository(ctrl), newMemoryCacheStore(), bundles,
		servicemocks.NewMockRefreshService(ctrl), zaptest.NewLogger(t).Sugar())

	got, err := svc.GetDashboard(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ProjectID)
}

func TestExportDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectRepository(ctrl)
	project := newProject("acme/widgets", "")
	store := newMemoryCacheStore()

	entry, err := models.NewProjectCache(project.ID, models.CacheGitHubPRs, []models.PullRequest{{Number: 4, Title: "x", State: "open"}}, t0)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(context.Background(), entry))
	projects.EXPECT().GetByID(gomock.Any(), project.ID).Return(project, nil)

	svc := service.NewDashboardService(projects, store, cache.NewNoopBundleCache(),
		servicemocks.NewMockRefreshService(ctrl), zaptest.NewLogger(t).Sugar())

	data, err := svc.ExportDashboard(context.Background(), project.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Pull Requests", "B2")
	require.NoError(t, err)
	assert.Equal(t, "x", title)
}
