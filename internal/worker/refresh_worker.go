package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"symphony/internal/service"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// SweepStatus describes the most recent full refresh.
type SweepStatus struct {
	Completed  int64      `json:"completed"`
	Skipped    int64      `json:"skipped"`
	Running    bool       `json:"running"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Projects   int        `json:"projects"`
	Error      string     `json:"error,omitempty"`
}

type RefreshWorkerConfig struct {
	Interval     time.Duration
	InitialDelay time.Duration
}

// RefreshWorker runs a full refresh once after InitialDelay and then on every
// Interval boundary of the wall clock. At most one sweep runs at a time.
type RefreshWorker struct {
	service      service.RefreshService
	clock        clockwork.Clock
	interval     time.Duration
	initialDelay time.Duration
	log          *zap.SugaredLogger

	ctx      context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}
	done     chan struct{}
	trigger  chan struct{}
	sweeps   sync.WaitGroup

	sweeping atomic.Bool

	mu        sync.Mutex
	isRunning bool
	status    SweepStatus
}

func NewRefreshWorker(svc service.RefreshService, clock clockwork.Clock, config RefreshWorkerConfig, log *zap.SugaredLogger) *RefreshWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshWorker{
		service:      svc,
		clock:        clock,
		interval:     config.Interval,
		initialDelay: config.InitialDelay,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
		trigger:      make(chan struct{}, 1),
	}
}

func (w *RefreshWorker) Name() string { return "refresh" }

func (w *RefreshWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresh worker already started")
	}
	if w.interval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	select {
	case <-w.stopChan:
		return errors.New("refresh worker already stopped")
	default:
	}

	w.isRunning = true
	w.log.Infow("refresh worker started", "interval", w.interval, "initial_delay", w.initialDelay)

	go w.run()
	return nil
}

// Stop cancels an in-flight sweep and waits for it to return.
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	w.mu.Unlock()

	w.cancel()
	close(w.stopChan)
	<-w.done
	w.sweeps.Wait()
	w.log.Info("refresh worker stopped")
}

// Trigger requests an out-of-schedule sweep. It returns false if one is already pending.
func (w *RefreshWorker) Trigger() bool {
	select {
	case w.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (w *RefreshWorker) Status() SweepStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	status := w.status
	status.Running = w.sweeping.Load()
	return status
}

func (w *RefreshWorker) run() {
	defer close(w.done)

	initial := w.clock.NewTimer(w.initialDelay)
	defer initial.Stop()
	tick := w.clock.NewTimer(w.untilNextTick())
	defer tick.Stop()

	for {
		select {
		case <-initial.Chan():
			w.goSweep()
		case <-tick.Chan():
			w.goSweep()
			tick.Reset(w.untilNextTick())
		case <-w.trigger:
			w.goSweep()
		case <-w.stopChan:
			return
		}
	}
}

// untilNextTick returns the time left until the next multiple of interval.
func (w *RefreshWorker) untilNextTick() time.Duration {
	now := w.clock.Now()
	return now.Truncate(w.interval).Add(w.interval).Sub(now)
}

func (w *RefreshWorker) goSweep() {
	w.sweeps.Add(1)
	go func() {
		defer w.sweeps.Done()
		w.Sweep(w.ctx)
	}()
}

// Sweep refreshes every linked project. It returns false without doing anything
// if another sweep is in progress. Errors are logged, never returned.
func (w *RefreshWorker) Sweep(ctx context.Context) bool {
	if !w.sweeping.CompareAndSwap(false, true) {
		w.log.Warn("refresh sweep already running, skipping")
		w.mu.Lock()
		w.status.Skipped++
		w.mu.Unlock()
		return false
	}

	started := w.clock.Now()
	w.mu.Lock()
	w.status.StartedAt = &started
	w.mu.Unlock()

	projects, err := w.service.RefreshAllProjects(ctx)
	finished := w.clock.Now()
	w.sweeping.Store(false)

	w.mu.Lock()
	w.status.Completed++
	w.status.FinishedAt = &finished
	w.status.Projects = projects
	w.status.Error = ""
	if err != nil {
		w.status.Error = err.Error()
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Errorw("refresh sweep failed", "projects", projects, "error", err)
	} else {
		w.log.Infow("refresh sweep finished", "projects", projects, "duration", finished.Sub(started))
	}
	return true
}
