package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "zamanat_backend/internals/features/users/auth/repository"
)

// StartOTPCleanupScheduler clears expired verification and reset codes every hour.
func StartOTPCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := authRepo.ClearExpiredCodes(db.WithContext(ctx), time.Now())
		if err != nil {
			log.Printf("[CLEANUP ERROR] clearing expired codes: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d expired codes cleared", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
