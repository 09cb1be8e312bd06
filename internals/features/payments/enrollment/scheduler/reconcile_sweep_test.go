package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
	"zamanat_backend/internals/features/payments/enrollment/service"
)

type stubReconciler struct {
	calls []string
	state map[string]model.PaymentStatus
	open  map[string]bool
}

func (r *stubReconciler) ReconcileTerminal(_ context.Context, id string) (service.ReconcileResult, error) {
	r.calls = append(r.calls, id)
	if r.open[id] {
		return service.ReconcileResult{Order: model.PaymentOrderModel{PaymentOrderMerchantOrderID: id, PaymentOrderStatus: model.PaymentStatusPending}, Open: true}, nil
	}
	st, ok := r.state[id]
	if !ok {
		return service.ReconcileResult{}, errors.New("gateway down")
	}
	return service.ReconcileResult{Order: model.PaymentOrderModel{PaymentOrderMerchantOrderID: id, PaymentOrderStatus: st}}, nil
}

type scriptedGateway struct {
	state string
}

func (g *scriptedGateway) Authenticate(context.Context) (service.Token, error) {
	return service.Token{AccessToken: "t"}, nil
}

func (g *scriptedGateway) CreateCheckoutSession(context.Context, string, int64, string) (service.CheckoutSession, error) {
	return service.CheckoutSession{}, nil
}

func (g *scriptedGateway) GetOrderStatus(context.Context, string) (service.OrderStatus, error) {
	return service.OrderStatus{State: g.state, Raw: map[string]any{"state": g.state}}, nil
}

type countingProvisioner struct{ n int }

func (p *countingProvisioner) Provision(context.Context, model.PaymentOrderModel) { p.n++ }

func seed(store *repository.MemoryOrderStore, id string, status model.PaymentStatus, age time.Duration) {
	store.Put(model.PaymentOrderModel{
		PaymentOrderID:              uuid.New(),
		PaymentOrderMerchantOrderID: id,
		PaymentOrderUserID:          uuid.New(),
		PaymentOrderAmount:          199,
		PaymentOrderStatus:          status,
		PaymentOrderCreatedAt:       time.Now().Add(-age),
	})
}

func TestSweepOnlyTouchesStalePending(t *testing.T) {
	store := repository.NewMemoryOrderStore()
	seed(store, "old-paid", model.PaymentStatusPending, time.Hour)
	seed(store, "old-failed", model.PaymentStatusPending, 30*time.Minute)
	seed(store, "old-error", model.PaymentStatusPending, 20*time.Minute)
	seed(store, "old-open", model.PaymentStatusPending, 10*time.Minute)
	seed(store, "fresh", model.PaymentStatusPending, time.Minute)
	seed(store, "done", model.PaymentStatusSuccess, time.Hour)

	rec := &stubReconciler{state: map[string]model.PaymentStatus{
		"old-paid":   model.PaymentStatusSuccess,
		"old-failed": model.PaymentStatusFailed,
	}, open: map[string]bool{"old-open": true}}
	sweep := NewReconcileSweep(store, rec, 5*time.Minute)

	stats, err := sweep.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepStats{Checked: 4, Paid: 1, Failed: 1, Open: 1, Errors: 1}, stats)
	assert.Equal(t, []string{"old-paid", "old-failed", "old-error", "old-open"}, rec.calls)
}

func TestSweepRespectsLimit(t *testing.T) {
	store := repository.NewMemoryOrderStore()
	for i := 0; i < 5; i++ {
		seed(store, uuid.NewString(), model.PaymentStatusPending, time.Duration(10+i)*time.Minute)
	}
	rec := &stubReconciler{}
	sweep := NewReconcileSweep(store, rec, time.Minute)
	sweep.Limit = 2

	stats, err := sweep.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Checked)
	assert.Len(t, rec.calls, 2)
}

func TestSweepStartRejectsBadSchedule(t *testing.T) {
	sweep := NewReconcileSweep(repository.NewMemoryOrderStore(), &stubReconciler{}, 0)
	_, err := sweep.Start("not a schedule")
	assert.Error(t, err)

	c, err := sweep.Start("@every 1h")
	require.NoError(t, err)
	c.Stop()
}

func TestSweepLeavesCheckoutInProgressPending(t *testing.T) {
	store := repository.NewMemoryOrderStore()
	seed(store, "slow-buyer", model.PaymentStatusPending, 6*time.Minute)
	gw := &scriptedGateway{state: "PENDING"}
	prov := &countingProvisioner{}
	rec := service.NewStatusReconciler(store, gw, prov)
	sweep := NewReconcileSweep(store, rec, 5*time.Minute)

	stats, err := sweep.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepStats{Checked: 1, Open: 1}, stats)

	order, err := store.FindByMerchantOrderID(context.Background(), "slow-buyer")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentOrderStatus)

	// the buyer finishes paying and checks their status
	gw.state = "COMPLETED"
	res, err := rec.Reconcile(context.Background(), "slow-buyer")
	require.NoError(t, err)
	assert.True(t, res.Paid())
	assert.True(t, res.Provisioned)
	assert.Equal(t, 1, prov.n)
}

func TestSweepSettlesGatewayFailure(t *testing.T) {
	store := repository.NewMemoryOrderStore()
	seed(store, "declined", model.PaymentStatusPending, time.Hour)
	rec := service.NewStatusReconciler(store, &scriptedGateway{state: "FAILED"}, &countingProvisioner{})

	stats, err := NewReconcileSweep(store, rec, 5*time.Minute).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepStats{Checked: 1, Failed: 1}, stats)

	order, err := store.FindByMerchantOrderID(context.Background(), "declined")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, order.PaymentOrderStatus)
}
