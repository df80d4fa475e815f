package main

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/internal/app"
	"github.com/salesflow/crm/pkg/logger"
)

// stubApp implements the lifecycle calls runServer makes; anything else panics.
type stubApp struct {
	app.AppInterface

	initErr     error
	startErr    error
	shutdownErr error
	blockDrain  bool

	stop            chan struct{}
	shutdownTimeout time.Duration
	shutdownCalled  bool
}

func newStubApp() *stubApp {
	return &stubApp{stop: make(chan struct{})}
}

func (s *stubApp) Initialize() error { return s.initErr }

func (s *stubApp) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stop
	return nil
}

func (s *stubApp) SetShutdownTimeout(d time.Duration) { s.shutdownTimeout = d }

func (s *stubApp) GetActiveRequestCount() int64 { return 0 }

func (s *stubApp) Shutdown(ctx context.Context) error {
	s.shutdownCalled = true
	if s.blockDrain {
		<-ctx.Done()
		return ctx.Err()
	}
	close(s.stop)
	return s.shutdownErr
}

func factory(s *stubApp) NewAppFunc {
	return func(*config.Config, ...app.AppOption) app.AppInterface { return s }
}

// captureSignals swaps signalNotify for a recorder so tests can deliver signals.
func captureSignals(t *testing.T) func() chan<- os.Signal {
	var (
		mu    sync.Mutex
		chans []chan<- os.Signal
	)
	original := signalNotify
	signalNotify = func(c chan<- os.Signal, _ ...os.Signal) {
		mu.Lock()
		chans = append(chans, c)
		mu.Unlock()
	}
	t.Cleanup(func() { signalNotify = original })

	return func() chan<- os.Signal {
		for {
			mu.Lock()
			n := len(chans)
			mu.Unlock()
			if n > 0 {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		mu.Lock()
		defer mu.Unlock()
		c := chans[0]
		chans = chans[1:]
		return c
	}
}

func TestRunServer_InitializeFails(t *testing.T) {
	captureSignals(t)
	s := newStubApp()
	s.initErr = errors.New("database unreachable")

	err := runServer(&config.Config{}, logger.NewTestLogger(t), factory(s))
	assert.EqualError(t, err, "database unreachable")
	assert.False(t, s.shutdownCalled)
}

func TestRunServer_StartFails(t *testing.T) {
	captureSignals(t)
	s := newStubApp()
	s.startErr = errors.New("address in use")

	err := runServer(&config.Config{}, logger.NewTestLogger(t), factory(s))
	assert.EqualError(t, err, "address in use")
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	next := captureSignals(t)
	s := newStubApp()

	done := make(chan error, 1)
	go func() { done <- runServer(&config.Config{}, logger.NewTestLogger(t), factory(s)) }()

	next() <- syscall.SIGTERM

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runServer did not return")
	}
	assert.True(t, s.shutdownCalled)
	assert.Equal(t, appShutdownTimeout, s.shutdownTimeout)
}

func TestRunServer_ShutdownError(t *testing.T) {
	next := captureSignals(t)
	s := newStubApp()
	s.shutdownErr = errors.New("drain failed")

	done := make(chan error, 1)
	go func() { done <- runServer(&config.Config{}, logger.NewTestLogger(t), factory(s)) }()

	next() <- os.Interrupt
	assert.EqualError(t, <-done, "drain failed")
}

func TestRunServer_ForcedShutdown(t *testing.T) {
	next := captureSignals(t)
	s := newStubApp()
	s.blockDrain = true

	done := make(chan error, 1)
	go func() { done <- runServer(&config.Config{}, logger.NewTestLogger(t), factory(s)) }()

	next() <- os.Interrupt
	next() <- os.Interrupt

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errForcedShutdown)
	case <-time.After(3 * time.Second):
		t.Fatal("forced shutdown did not return")
	}
}

func TestSetupMinimalConfig(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SERVER_HOST", "localhost")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_USER", "postgres_test")
	t.Setenv("DB_PASSWORD", "postgres_test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "salesflow_test")
	t.Setenv("ROOT_EMAIL", "test@example.com")

	cfg, err := config.Load()
	if err != nil {
		// key material is mandatory outside development
		t.Logf("Config Load failed: %v", err)
		return
	}

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres_test", cfg.Database.User)
}
