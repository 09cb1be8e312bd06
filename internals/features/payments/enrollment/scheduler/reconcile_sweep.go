package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"zamanat_backend/internals/features/payments/enrollment/repository"
	"zamanat_backend/internals/features/payments/enrollment/service"
)

const DefaultSweepLimit = 50

// Reconciler settles an order only when the gateway is done with it.
type Reconciler interface {
	ReconcileTerminal(ctx context.Context, orderID string) (service.ReconcileResult, error)
}

// ReconcileSweep settles PENDING orders whose user never came back to check.
// Orders the gateway still reports as in progress stay PENDING for the next run.
type ReconcileSweep struct {
	Store      repository.OrderStore
	Reconciler Reconciler
	MinAge     time.Duration
	Limit      int
	Timeout    time.Duration

	now func() time.Time
}

type SweepStats struct {
	Checked int
	Paid    int
	Failed  int
	Open    int
	Errors  int
}

func NewReconcileSweep(store repository.OrderStore, rec Reconciler, minAge time.Duration) *ReconcileSweep {
	if minAge <= 0 {
		minAge = 5 * time.Minute
	}
	return &ReconcileSweep{
		Store:      store,
		Reconciler: rec,
		MinAge:     minAge,
		Limit:      DefaultSweepLimit,
		Timeout:    4 * time.Minute,
		now:        time.Now,
	}
}

// RunOnce reconciles one batch. A failing order is logged and does not stop the batch.
func (s *ReconcileSweep) RunOnce(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	orders, err := s.Store.ListStalePending(ctx, s.now().Add(-s.MinAge), s.Limit)
	if err != nil {
		return stats, fmt.Errorf("list stale orders: %w", err)
	}

	for _, o := range orders {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		stats.Checked++
		res, err := s.Reconciler.ReconcileTerminal(ctx, o.PaymentOrderMerchantOrderID)
		if err != nil {
			stats.Errors++
			log.Printf("[CRON] ⚠️ reconcile order=%s: %v", o.PaymentOrderMerchantOrderID, err)
			continue
		}
		switch {
		case res.Open:
			stats.Open++
		case res.Paid():
			stats.Paid++
		default:
			stats.Failed++
		}
	}
	return stats, nil
}

// Start registers the sweep on a new cron and starts it. The caller stops it on shutdown.
func (s *ReconcileSweep) Start(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
		defer cancel()

		stats, err := s.RunOnce(ctx)
		if err != nil {
			log.Printf("[CRON] ❌ reconcile sweep: %v", err)
			return
		}
		if stats.Checked > 0 {
			log.Printf("[CRON] reconcile sweep checked=%d paid=%d failed=%d open=%d errors=%d",
				stats.Checked, stats.Paid, stats.Failed, stats.Open, stats.Errors)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", schedule, err)
	}

	log.Printf("[CRON] reconcile sweep started schedule=%q minAge=%s limit=%d", schedule, s.MinAge, s.Limit)
	c.Start()
	return c, nil
}
