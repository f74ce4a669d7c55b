package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kaamsetu/backend/internal/infrastructure/journal"
)

// SweeperConfig controls journal retention.
type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalSweeper trims journal entries past the retention window on a
// cron schedule.
type JournalSweeper struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewJournalSweeper(store *journal.Store, logger *zap.Logger, cfg SweeperConfig) *JournalSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	js := &JournalSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = js.cron.AddFunc(schedule, js.sweep)

	return js
}

// Start launches the cron scheduler.
func (js *JournalSweeper) Start() {
	if js == nil || js.cron == nil {
		return
	}
	js.cron.Start()
	js.logger.Info("journal sweeper started", zap.Duration("interval", js.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (js *JournalSweeper) Stop(ctx context.Context) {
	if js == nil || js.cron == nil {
		return
	}
	stopCtx := js.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	js.logger.Info("journal sweeper stopped")
}

func (js *JournalSweeper) sweep() {
	if js.store == nil {
		return
	}
	removed, err := js.store.Cleanup(time.Now().Add(-js.cfg.Retention))
	if err != nil {
		js.logger.Error("journal sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		js.logger.Info("journal entries trimmed", zap.Int("removed", removed))
	}
}
