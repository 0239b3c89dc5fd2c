package app

import (
	"context"
	"fmt"
	"time"

	pkgcron "github.com/dsp-forms/core/internal/pkg/cron"
	"github.com/dsp-forms/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "purge_sessions",
		Description: "remove expired and revoked sign-in sessions",
		Interval:    6 * time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := session.PurgeExpired(db, time.Now())
			if err != nil {
				cronLogger.Warn("session purge failed", zap.Error(err))
				return err
			}
			if removed > 0 {
				cronLogger.Info(fmt.Sprintf("purged %d stale sessions", removed))
			}
			return nil
		},
	})
}
