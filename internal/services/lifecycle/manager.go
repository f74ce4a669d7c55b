package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc releases one component during shutdown.
type StopFunc func(ctx context.Context) error

// Manager collects per-component stop functions and runs them when the
// process receives SIGINT or SIGTERM. Components stop in reverse
// registration order, so dependents go down before their dependencies.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []string
	stops      map[string]StopFunc
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
		stops:   map[string]StopFunc{},
	}
}

// Register adds a component. Registering the same name twice replaces
// the earlier stop function but keeps its position in the order.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, known := m.stops[name]; !known {
		m.components = append(m.components, name)
	}
	m.stops[name] = stop
}

// Listen invokes cancel once a termination signal arrives.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		received := <-signals
		m.logger.Info("shutdown signal received", zap.String("signal", received.String()))
		cancel()
	}()
}

// Shutdown stops every registered component within the configured
// timeout and returns the joined errors of the ones that failed.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var failed error
	for i := len(m.components) - 1; i >= 0; i-- {
		name := m.components[i]
		if err := m.stops[name](ctx); err != nil {
			m.logger.Error("component shutdown failed", zap.String("component", name), zap.Error(err))
			failed = errors.Join(failed, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", name))
	}
	return failed
}
