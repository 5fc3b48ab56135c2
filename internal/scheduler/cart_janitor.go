package scheduler

import (
	"time"

	"github.com/mallow/storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartPurger deletes carts untouched for longer than retention
type CartPurger interface {
	PurgeAbandoned(retention time.Duration) (int64, error)
}

// CartJanitor periodically removes abandoned carts
type CartJanitor struct {
	cron      *cron.Cron
	purger    CartPurger
	spec      string
	retention time.Duration
}

// NewCartJanitor runs the purge on the cron spec (standard five fields)
func NewCartJanitor(purger CartPurger, spec string, retention time.Duration) *CartJanitor {
	return &CartJanitor{
		cron:      cron.New(),
		purger:    purger,
		spec:      spec,
		retention: retention,
	}
}

// Start registers the job and starts the scheduler
func (j *CartJanitor) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce() }); err != nil {
		logger.Error("Failed to add cron job for cart janitor", err, map[string]interface{}{
			"spec": j.spec,
		})
		return err
	}

	j.cron.Start()
	logger.Info("Cart janitor started", map[string]interface{}{
		"spec":      j.spec,
		"retention": j.retention.String(),
	})
	return nil
}

// RunOnce purges abandoned carts now and returns how many were deleted
func (j *CartJanitor) RunOnce() int64 {
	logger.Debug("Starting scheduled cart purge", nil)

	deleted, err := j.purger.PurgeAbandoned(j.retention)
	if err != nil {
		logger.Error("Failed to purge abandoned carts", err)
		return 0
	}

	logger.Info("Scheduled cart purge finished", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted
}

// Stop halts the scheduler and waits for a running purge
func (j *CartJanitor) Stop() {
	logger.Info("Stopping cart janitor...", nil)
	<-j.cron.Stop().Done()
	logger.Info("Cart janitor stopped", nil)
}
