package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kaamsetu/backend/internal/infrastructure/journal"
)

// Monitor probes Postgres, Redis and the local journal on an interval
// and caches the last snapshot for the health endpoint, so /health
// never blocks on a slow dependency.
type Monitor struct {
	pg      *pgxpool.Pool
	redis   *redislib.Client
	journal *journal.Store

	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current Status

	done chan struct{}
}

func New(pg *pgxpool.Pool, redis *redislib.Client, jrnl *journal.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		journal:  jrnl,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	go func() {
		m.probe()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.probe()
			case <-m.done:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.done)
}

// IsOnline reports whether both hard dependencies answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.PostgreSQL && m.current.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Monitor) probe() {
	snapshot := Status{LastCheck: time.Now()}

	if m.pg != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		snapshot.PostgreSQL = m.pg.Ping(ctx) == nil
		cancel()
	}
	if m.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		snapshot.Redis = m.redis.Ping(ctx).Err() == nil
		cancel()
	}
	if m.journal != nil {
		size, err := m.journal.Size()
		if err != nil {
			m.logger.Warn("journal probe failed", zap.Error(err))
		} else {
			snapshot.Journal = true
			snapshot.JournalSize = size
		}
	}

	if !snapshot.PostgreSQL || !snapshot.Redis {
		m.logger.Warn("dependency probe degraded",
			zap.Bool("postgresql", snapshot.PostgreSQL),
			zap.Bool("redis", snapshot.Redis))
	}

	m.mu.Lock()
	m.current = snapshot
	m.mu.Unlock()
}
