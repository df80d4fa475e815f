package service

import (
	"context"
	"sync"
	"time"

	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

// CycleRunner does the work of one scheduler tick.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// Scheduler calls a CycleRunner on a fixed interval. Cycles never overlap: the next
// tick is only taken once the previous cycle returned, late ticks are dropped.
type Scheduler struct {
	name        string
	runner      CycleRunner
	logger      logger.Logger
	interval    time.Duration
	stopChan    chan struct{}
	stoppedChan chan struct{}
	mu          sync.Mutex
	running     bool
}

func NewScheduler(name string, runner CycleRunner, logger logger.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		name:        name,
		runner:      runner,
		logger:      logger,
		interval:    interval,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.WithField("scheduler", s.name).Warn("Scheduler already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithField("scheduler", s.name).
		WithField("interval", s.interval.String()).
		Info("Starting scheduler")

	go s.run(ctx)
}

// Stop waits up to 5 seconds for the current cycle to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)

	select {
	case <-s.stoppedChan:
		s.logger.WithField("scheduler", s.name).Info("Scheduler stopped")
	case <-time.After(5 * time.Second):
		s.logger.WithField("scheduler", s.name).Warn("Scheduler stop timeout exceeded")
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.stoppedChan)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	// stop interrupts a running cycle
	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-cycleCtx.Done():
		}
	}()

	spanCtx, span := tracing.StartServiceSpan(cycleCtx, "Scheduler", s.name)
	defer span.End()

	start := time.Now()
	err := s.runner.RunCycle(spanCtx)
	elapsed := time.Since(start)

	if err != nil {
		tracing.MarkSpanError(spanCtx, err)
		s.logger.WithFields(map[string]interface{}{
			"scheduler": s.name,
			"elapsed":   elapsed.String(),
			"error":     err.Error(),
		}).Error("Scheduler cycle failed")
		return
	}
	s.logger.WithField("scheduler", s.name).WithField("elapsed", elapsed.String()).Debug("Scheduler cycle completed")
}
