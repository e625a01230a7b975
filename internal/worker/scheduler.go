package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Worker interface {
	Name() string
	Start() error
	Stop()
}

type Scheduler struct {
	workers     []Worker
	stopTimeout time.Duration
	log         *zap.SugaredLogger
	started     bool
	stopped     bool
	mu          sync.RWMutex
}

func NewScheduler(log *zap.SugaredLogger, stopTimeout time.Duration) *Scheduler {
	return &Scheduler{
		workers:     make([]Worker, 0),
		stopTimeout: stopTimeout,
		log:         log,
	}
}

func (s *Scheduler) AddWorker(worker Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker)
}

// Start starts every registered worker. A worker that fails to start does not
// prevent the others from running; all failures are returned together.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.New("scheduler already stopped")
	}
	if s.started {
		return nil
	}
	s.started = true

	s.log.Infow("starting scheduler", "workers", len(s.workers))

	var errs []error
	for _, w := range s.workers {
		if err := w.Start(); err != nil {
			errs = append(errs, fmt.Errorf("start %s: %w", w.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	workers := s.workers
	s.mu.Unlock()

	s.log.Info("stopping scheduler")

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			w.Stop()
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("scheduler stopped gracefully")
	case <-time.After(s.stopTimeout):
		s.log.Warnw("scheduler stop timeout", "timeout", s.stopTimeout)
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && !s.stopped
}
