package service_test

import (
	"context"
	"encoding/json"
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

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type cacheKey struct {
	project uuid.UUID
	kind    models.CacheType
}

// memoryCacheStore is an in-memory ProjectCacheRepository with the same upsert semantics as the SQL one.
type memoryCacheStore struct {
	mu      sync.Mutex
	entries map[cacheKey]models.ProjectCache
	upserts int
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{entries: make(map[cacheKey]models.ProjectCache)}
}

func (m *memoryCacheStore) Upsert(_ context.Context, entry *models.ProjectCache) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.entries[cacheKey{entry.ProjectID, entry.Type}] = *entry
	return nil
}

func (m *memoryCacheStore) Get(_ context.Context, projectID uuid.UUID, cacheType models.CacheType) (*models.ProjectCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[cacheKey{projectID, cacheType}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (m *memoryCacheStore) GetByProject(_ context.Context, projectID uuid.UUID) ([]models.ProjectCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ProjectCache
	for k, v := range m.entries {
		if k.project == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memoryCacheStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.entries)), nil
}

func (m *memoryCacheStore) records(t *testing.T, projectID uuid.UUID, cacheType models.CacheType) []json.RawMessage {
	t.Helper()
	entry, err := m.Get(context.Background(), projectID, cacheType)
	require.NoError(t, err)
	var out []json.RawMessage
	require.NoError(t, json.Unmarshal(entry.Data, &out))
	return out
}

type refreshFixture struct {
	store        *memoryCacheStore
	projects     *mocks.MockProjectRepository
	integrations *mocks.MockIntegrationRepository
	github       *mocks.MockGitHubClient
	slack        *mocks.MockSlackClient
	clock        *clockwork.FakeClock
	svc          service.RefreshService
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRefreshFixture(t *testing.T, keepStale bool) *refreshFixture {
	ctrl := gomock.NewController(t)
	f := &refreshFixture{
		store:        newMemoryCacheStore(),
		projects:     mocks.NewMockProjectRepository(ctrl),
		integrations: mocks.NewMockIntegrationRepository(ctrl),
		github:       mocks.NewMockGitHubClient(ctrl),
		slack:        mocks.NewMockSlackClient(ctrl),
		clock:        clockwork.NewFakeClockAt(t0),
	}
	f.svc = service.NewRefreshService(
		f.projects, f.integrations, f.store, f.github, f.slack,
		cache.NewNoopBundleCache(), f.clock,
		service.RefreshConfig{KeepStaleOnFailure: keepStale},
		zaptest.NewLogger(t).Sugar(),
	)
	return f
}

func (f *refreshFixture) connect(orgID uuid.UUID, integrationType models.IntegrationType, token string) {
	f.integrations.EXPECT().
		FindByOrganization(gomock.Any(), orgID, integrationType).
		Return(&models.Integration{OrganizationID: orgID, Type: integrationType, AccessToken: token}, nil).
		AnyTimes()
}

func (f *refreshFixture) disconnect(orgID uuid.UUID, integrationType models.IntegrationType) {
	f.integrations.EXPECT().
		FindByOrganization(gomock.Any(), orgID, integrationType).
		Return(nil, repository.ErrNotFound).
		AnyTimes()
}

func newProject(repo, channel string) *models.Project {
	return &models.Project{ID: uuid.New(), Name: "widgets", OrganizationID: uuid.New(), GithubRepo: repo, SlackChannel: channel}
}

func TestRefreshProject_GitHubOnly(t *testing.T) {
	f := newRefreshFixture(t, true)
	project := newProject("acme/widgets", "")
	f.connect(project.OrganizationID, models.IntegrationGitHub, "gh-token")

	f.github.EXPECT().FetchPullRequests(gomock.Any(), "gh-token", "acme/widgets").
		Return(clients.OK([]models.PullRequest{{ID: 1, Number: 1, Title: "first"}}), nil)
	f.github.EXPECT().FetchCommits(gomock.Any(), "gh-token", "acme/widgets").
		Return(clients.OK([]models.Commit{}), nil)

	start := f.clock.Now()
	f.svc.RefreshProject(context.Background(), project)

	assert.Len(t, f.store.records(t, project.ID, models.CacheGitHubPRs), 1)
	assert.Len(t, f.store.records(t, project.ID, models.CacheGitHubCommits), 0)

	_, err := f.store.Get(context.Background(), project.ID, models.CacheSlackMessages)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	for _, kind := range []models.CacheType{models.CacheGitHubPRs, models.CacheGitHubCommits} {
		entry, err := f.store.Get(context.Background(), project.ID, kind)
		require.NoError(t, err)
		assert.False(t, entry.LastUpdated.Before(start), kind)
	}
}

func TestRefreshProject_NoLinksWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	caches := mocks.NewMockProjectCacheRepository(ctrl)
	caches.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

	svc := service.NewRefreshService(
		mocks.NewMockProjectRepository(ctrl),
		mocks.NewMockIntegrationRepository(ctrl),
		caches,
		mocks.NewMockGitHubClient(ctrl),
		mocks.NewMockSlackClient(ctrl),
		cache.NewNoopBundleCache(),
		clockwork.NewFakeClockAt(t0),
		service.RefreshConfig{KeepStaleOnFailure: true},
		zaptest.NewLogger(t).Sugar(),
	)

	svc.RefreshProject(context.Background(), newProject("", ""))
	svc.RefreshProject(context.Background(), newProject("   ", ""))
}

func TestRefreshProject_IdempotentUpsert(t *testing.T) {
	f := newRefreshFixture(t, true)
	project := newProject("acme/widgets", "C123")
	f.connect(project.OrganizationID, models.IntegrationGitHub, "gh-token")
	f.connect(project.OrganizationID, models.IntegrationSlack, "xoxb")

	pulls := []models.PullRequest{{ID: 1, Number: 1}, {ID: 2, Number: 2}}
	commits := []models.Commit{{SHA: "abc"}}
	messages := []models.SlackMessage{{TS: "1.0", Text: "hi", User: models.UnknownSlackUser}}
	f.github.EXPECT().FetchPullRequests(gomock.Any(), "gh-token", "acme/widgets").Return(clients.OK(pulls), nil).Times(3)
	f.github.EXPECT().FetchCommits(gomock.Any(), "gh-token", "acme/widgets").Return(clients.OK(commits), nil).Times(3)
	f.slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", "C123").Return(clients.OK(messages), nil).Times(3)

	f.svc.RefreshProject(context.Background(), project)
	first, err := f.store.Get(context.Background(), project.ID, models.CacheGitHubPRs)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	f.svc.RefreshProject(context.Background(), project)
	f.clock.Advance(time.Minute)
	f.svc.RefreshProject(context.Background(), project)

	second, err := f.store.Get(context.Background(), project.ID, models.CacheGitHubPRs)
	require.NoError(t, err)

	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.True(t, second.LastUpdated.After(first.LastUpdated))

	entries, err := f.store.GetByProject(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 9, f.store.upserts)
}

func TestRefreshProject_GitHubErrorDoesNotBlockSlack(t *testing.T) {
	f := newRefreshFixture(t, true)
	project := newProject("acme/widgets", "C123")
	f.connect(project.OrganizationID, models.IntegrationGitHub, "gh-token")
	f.connect(project.OrganizationID, models.IntegrationSlack, "xoxb")

	stale, err := models.NewProjectCache(project.ID, models.CacheGitHubPRs, []models.PullRequest{{ID: 9}}, t0.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.store.Upsert(context.Background(), stale))

	f.github.EXPECT().FetchPullRequests(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(clients.Result[models.PullRequest]{}, errors.New("connection reset"))
	f.github.EXPECT().FetchCommits(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(clients.OK([]models.Commit{{SHA: "abc"}}), nil).AnyTimes()
	f.slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", "C123").
		Return(clients.OK([]models.SlackMessage{{TS: "1.0"}}), nil)

	f.svc.RefreshProject(context.Background(), project)

	prs, err := f.store.Get(context.Background(), project.ID, models.CacheGitHubPRs)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(-time.Hour), prs.LastUpdated)

	_, err = f.store.Get(context.Background(), project.ID, models.CacheGitHubCommits)
	assert.ErrorIs(t, err, repository.ErrNotFound, "no partial overwrite")

	assert.Len(t, f.store.records(t, project.ID, models.CacheSlackMessages), 1)
}

func TestRefreshProject_NotConnected(t *testing.T) {
	f := newRefreshFixture(t, true)
	project := newProject("acme/widgets", "C123")
	f.disconnect(project.OrganizationID, models.IntegrationGitHub)
	f.connect(project.OrganizationID, models.IntegrationSlack, "xoxb")

	f.slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", "C123").
		Return(clients.OK([]models.SlackMessage{}), nil)

	f.svc.RefreshProject(context.Background(), project)

	count, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, f.store.records(t, project.ID, models.CacheSlackMessages))
}

func TestRefreshProject_IntegrationLookupError(t *testing.T) {
	f := newRefreshFixture(t, true)
	project := newProject("acme/widgets", "")
	f.integrations.EXPECT().
		FindByOrganization(gomock.Any(), project.OrganizationID, models.IntegrationGitHub).
		Return(nil, errors.New("db down"))

	f.svc.RefreshProject(context.Background(), project)

	assert.Zero(t, f.store.upserts)
}

func TestRefreshProject_FailedResult(t *testing.T) {
	testCases := []struct {
		name        string
		keepStale   bool
		wantRecords int
		wantUpdated time.Time
	}{
		{name: "keeps stale entry", keepStale: true, wantRecords: 1, wantUpdated: t0.Add(-time.Hour)},
		{name: "stores empty list", keepStale: false, wantRecords: 0, wantUpdated: t0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRefreshFixture(t, tc.keepStale)
			project := newProject("", "C123")
			f.connect(project.OrganizationID, models.IntegrationSlack, "xoxb")

			stale, err := models.NewProjectCache(project.ID, models.CacheSlackMessages, []models.SlackMessage{{TS: "1.0"}}, t0.Add(-time.Hour))
			require.NoError(t, err)
			require.NoError(t, f.store.Upsert(context.Background(), stale))

			f.slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", "C123").
				Return(clients.Failed[models.SlackMessage](errors.New("channel_not_found")), nil)

			f.svc.RefreshProject(context.Background(), project)

			entry, err := f.store.Get(context.Background(), project.ID, models.CacheSlackMessages)
			require.NoError(t, err)
			assert.Equal(t, tc.wantUpdated, entry.LastUpdated)
			assert.Len(t, f.store.records(t, project.ID, models.CacheSlackMessages), tc.wantRecords)
		})
	}
}

func TestRefreshProject_InvalidatesBundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	integrations := mocks.NewMockIntegrationRepository(ctrl)
	slack := mocks.NewMockSlackClient(ctrl)
	bundles := mocks.NewMockBundleCache(ctrl)
	project := newProject("", "C123")

	integrations.EXPECT().FindByOrganization(gomock.Any(), project.OrganizationID, models.IntegrationSlack).
		Return(&models.Integration{AccessToken: "xoxb"}, nil)
	slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", "C123").
		Return(clients.OK([]models.SlackMessage{}), nil)
	bundles.EXPECT().Invalidate(gomock.Any(), project.ID).Return(nil).Times(1)

	svc := service.NewRefreshService(
		mocks.NewMockProjectRepository(ctrl), integrations, newMemoryCacheStore(),
		mocks.NewMockGitHubClient(ctrl), slack, bundles, clockwork.NewFakeClockAt(t0),
		service.RefreshConfig{KeepStaleOnFailure: true}, zaptest.NewLogger(t).Sugar(),
	)
	svc.RefreshProject(context.Background(), project)
}

func TestRefreshAllProjects(t *testing.T) {
	f := newRefreshFixture(t, true)
	a := newProject("", "C1")
	b := newProject("", "C2")
	b.OrganizationID = a.OrganizationID
	f.connect(a.OrganizationID, models.IntegrationSlack, "xoxb")

	f.projects.EXPECT().ListRefreshable(gomock.Any()).Return([]models.Project{*a, *b}, nil)

	var order []string
	f.slack.EXPECT().FetchMessages(gomock.Any(), "xoxb", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, channel string) (clients.Result[models.SlackMessage], error) {
			order = append(order, channel)
			return clients.OK([]models.SlackMessage{}), nil
		}).Times(2)

	n, err := f.svc.RefreshAllProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"C1", "C2"}, order)
}

func TestRefreshAllProjects_ListError(t *testing.T) {
	f := newRefreshFixture(t, true)
	f.projects.EXPECT().ListRefreshable(gomock.Any()).Return(nil, errors.New("db down"))

	n, err := f.svc.RefreshAllProjects(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestRefreshAllProjects_StopsWhenCancelled(t *testing.T) {
	f := newRefreshFixture(t, true)
	f.projects.EXPECT().ListRefreshable(gomock.Any()).Return([]models.Project{*newProject("", "C1")}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := f.svc.RefreshAllProjects(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
