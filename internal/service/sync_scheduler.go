package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// SyncCycle syncs every sync-enabled account once per scheduler tick.
type SyncCycle struct {
	syncService *EmailSyncService
	accounts    domain.EmailAccountRepository
	settings    domain.SettingRepository
	concurrency int
	timeout     time.Duration
	logger      logger.Logger
	now         func() time.Time
}

func NewSyncCycle(syncService *EmailSyncService, accounts domain.EmailAccountRepository, settings domain.SettingRepository, concurrency int, log logger.Logger) *SyncCycle {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &SyncCycle{
		syncService: syncService,
		accounts:    accounts,
		settings:    settings,
		concurrency: concurrency,
		timeout:     syncService.settings.Timeout,
		logger:      log,
		now:         time.Now,
	}
}

func (c *SyncCycle) RunCycle(ctx context.Context) error {
	accounts, err := c.accounts.ListSyncEnabled(ctx)
	if err != nil {
		return err
	}

	var synced, failed, busy int64
	g := new(errgroup.Group)
	g.SetLimit(c.concurrency)
	for _, account := range accounts {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			accountCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			_, err := c.syncService.SyncAccount(accountCtx, account, "")
			var conflict *domain.ConflictError
			switch {
			case err == nil:
				atomic.AddInt64(&synced, 1)
			case errors.As(err, &conflict):
				atomic.AddInt64(&busy, 1)
			default:
				// already logged and stored on the job
				atomic.AddInt64(&failed, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := c.settings.SetTime(ctx, domain.SettingLastSyncCycle, c.now().UTC()); err != nil {
		c.logger.WithField("error", err.Error()).Warn("Failed to record sync cycle time")
	}

	c.logger.WithFields(map[string]interface{}{
		"accounts": len(accounts),
		"synced":   synced,
		"failed":   failed,
		"busy":     busy,
	}).Info("Email sync cycle finished")
	return nil
}
