package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salesflow/crm/pkg/logger"
)

type countingRunner struct {
	calls   int32
	active  int32
	overlap int32
	delay   time.Duration
	err     error
}

func (r *countingRunner) RunCycle(ctx context.Context) error {
	atomic.AddInt32(&r.calls, 1)
	if atomic.AddInt32(&r.active, 1) > 1 {
		atomic.StoreInt32(&r.overlap, 1)
	}
	defer atomic.AddInt32(&r.active, -1)
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
		}
	}
	return r.err
}

func (r *countingRunner) count() int32 { return atomic.LoadInt32(&r.calls) }

func TestScheduler_RunsImmediatelyAndPeriodically(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler("test", runner, logger.NewTestLogger(t), 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	assert.True(t, s.IsRunning())

	<-ctx.Done()
	s.Stop()
	assert.GreaterOrEqual(t, runner.count(), int32(3))
}

func TestScheduler_CyclesDoNotOverlap(t *testing.T) {
	runner := &countingRunner{delay: 80 * time.Millisecond}
	s := NewScheduler("slow", runner, logger.NewTestLogger(t), 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&runner.overlap))
	assert.LessOrEqual(t, runner.count(), int32(5))
}

func TestScheduler_KeepsRunningAfterErrors(t *testing.T) {
	runner := &countingRunner{err: errors.New("boom")}
	s := NewScheduler("failing", runner, logger.NewTestLogger(t), 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()

	assert.GreaterOrEqual(t, runner.count(), int32(2))
}

func TestScheduler_StopInterruptsCycle(t *testing.T) {
	runner := &countingRunner{delay: time.Minute}
	s := NewScheduler("long", runner, logger.NewTestLogger(t), time.Hour)

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	s.Stop()
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, s.IsRunning())
}

func TestScheduler_StopBeforeStartAndTwice(t *testing.T) {
	s := NewScheduler("idle", &countingRunner{}, logger.NewTestLogger(t), time.Second)
	s.Stop()
	assert.False(t, s.IsRunning())

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
}
