package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	servicemocks "symphony/internal/service/mocks"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const waitFor = 2 * time.Second

func newTestWorker(t *testing.T, start time.Time, delay time.Duration) (*RefreshWorker, *servicemocks.MockRefreshService, *clockwork.FakeClock) {
	ctrl := gomock.NewController(t)
	svc := servicemocks.NewMockRefreshService(ctrl)
	clock := clockwork.NewFakeClockAt(start)
	w := NewRefreshWorker(svc, clock, RefreshWorkerConfig{Interval: 5 * time.Minute, InitialDelay: delay}, zaptest.NewLogger(t).Sugar())
	return w, svc, clock
}

func blockUntil(t *testing.T, clock *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, n))
}

func completed(w *RefreshWorker, n int64) func() bool {
	return func() bool { return w.Status().Completed == n }
}

func TestRefreshWorker_InitialDelayThenAlignedTicks(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC)
	w, svc, clock := newTestWorker(t, start, 10*time.Second)

	sweptAt := make(chan time.Time, 4)
	svc.EXPECT().RefreshAllProjects(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		sweptAt <- clock.Now()
		return 3, nil
	}).Times(3)

	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	blockUntil(t, clock, 2)

	clock.Advance(10 * time.Second)
	assert.Equal(t, start.Add(10*time.Second), <-sweptAt)
	require.Eventually(t, completed(w, 1), waitFor, time.Millisecond)

	blockUntil(t, clock, 1)
	clock.Advance(3*time.Minute + 50*time.Second)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC), <-sweptAt)
	require.Eventually(t, completed(w, 2), waitFor, time.Millisecond)

	blockUntil(t, clock, 1)
	clock.Advance(5 * time.Minute)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 10, 0, 0, time.UTC), <-sweptAt)
	require.Eventually(t, completed(w, 3), waitFor, time.Millisecond)

	assert.Equal(t, 3, w.Status().Projects)
}

func TestRefreshWorker_SweepErrorDoesNotStopSchedule(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 4, 0, 0, time.UTC)
	w, svc, clock := newTestWorker(t, start, 10*time.Second)

	gomock.InOrder(
		svc.EXPECT().RefreshAllProjects(gomock.Any()).Return(0, errors.New("db down")),
		svc.EXPECT().RefreshAllProjects(gomock.Any()).Return(2, nil),
	)

	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	blockUntil(t, clock, 2)

	clock.Advance(10 * time.Second)
	require.Eventually(t, completed(w, 1), waitFor, time.Millisecond)
	assert.Equal(t, "db down", w.Status().Error)

	blockUntil(t, clock, 1)
	clock.Advance(50 * time.Second)
	require.Eventually(t, completed(w, 2), waitFor, time.Millisecond)

	status := w.Status()
	assert.Empty(t, status.Error)
	assert.Equal(t, 2, status.Projects)
}

func TestRefreshWorker_SkipsOverlappingSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicemocks.NewMockRefreshService(ctrl)
	core, logs := observer.New(zap.WarnLevel)
	w := NewRefreshWorker(svc, clockwork.NewFakeClock(), RefreshWorkerConfig{Interval: time.Minute}, zap.New(core).Sugar())

	release := make(chan struct{})
	entered := make(chan struct{})
	svc.EXPECT().RefreshAllProjects(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		close(entered)
		<-release
		return 1, nil
	}).Times(1)

	first := make(chan bool)
	go func() { first <- w.Sweep(context.Background()) }()
	<-entered

	assert.True(t, w.Status().Running)
	assert.False(t, w.Sweep(context.Background()))

	close(release)
	assert.True(t, <-first)

	status := w.Status()
	assert.Equal(t, int64(1), status.Completed)
	assert.Equal(t, int64(1), status.Skipped)
	assert.False(t, status.Running)
	assert.Equal(t, 1, logs.FilterMessage("refresh sweep already running, skipping").Len())
}

func TestRefreshWorker_Trigger(t *testing.T) {
	w, svc, clock := newTestWorker(t, time.Date(2024, 5, 1, 12, 0, 30, 0, time.UTC), time.Hour)

	svc.EXPECT().RefreshAllProjects(gomock.Any()).Return(0, nil).Times(1)

	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	blockUntil(t, clock, 2)

	assert.True(t, w.Trigger())
	require.Eventually(t, completed(w, 1), waitFor, time.Millisecond)
}

func TestRefreshWorker_StartStop(t *testing.T) {
	w, _, _ := newTestWorker(t, time.Now(), time.Hour)

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())

	w.Stop()
	w.Stop()
	assert.Error(t, w.Start())
}

func TestRefreshWorker_StopCancelsSweep(t *testing.T) {
	w, svc, clock := newTestWorker(t, time.Date(2024, 5, 1, 12, 0, 30, 0, time.UTC), 10*time.Second)

	entered := make(chan struct{})
	svc.EXPECT().RefreshAllProjects(gomock.Any()).DoAndReturn(func(ctx context.Context) (int, error) {
		close(entered)
		<-ctx.Done()
		return 0, ctx.Err()
	}).Times(1)

	require.NoError(t, w.Start())
	blockUntil(t, clock, 2)
	clock.Advance(10 * time.Second)
	<-entered

	w.Stop()
	assert.Equal(t, context.Canceled.Error(), w.Status().Error)
}

func TestUntilNextTick(t *testing.T) {
	w, _, clock := newTestWorker(t, time.Date(2024, 5, 1, 12, 3, 20, 0, time.UTC), 0)
	assert.Equal(t, time.Minute+40*time.Second, w.untilNextTick())

	clock.Advance(time.Minute + 40*time.Second)
	assert.Equal(t, 5*time.Minute, w.untilNextTick())
}
