package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
)

type reconcileFixture struct {
	store     *repository.MemoryOrderStore
	gateway   *fakeGateway
	folders   *fakeFolders
	mailer    *fakeMailer
	messenger *fakeMessenger
	rec       *StatusReconciler
	userID    uuid.UUID
}

func newReconcileFixture(state, phone string) *reconcileFixture {
	f := &reconcileFixture{
		store:     repository.NewMemoryOrderStore(),
		gateway:   &fakeGateway{state: state},
		folders:   &fakeFolders{},
		mailer:    &fakeMailer{},
		messenger: &fakeMessenger{},
		userID:    uuid.New(),
	}
	dir := &fakeDirectory{
		contact: repository.UserContact{Name: "John O'Brien", Email: "john@example.com", Phone: phone},
		course:  repository.CourseInfo{Title: "Full Stack Web Development", ModuleCount: 6},
	}
	prov := &Provisioner{
		Directory:          dir,
		Folders:            f.folders,
		Mailer:             f.mailer,
		Messenger:          f.messenger,
		DefaultModuleCount: 6,
	}
	f.rec = NewStatusReconciler(f.store, f.gateway, prov)
	f.store.Put(pendingOrder("order-1", f.userID))
	return f
}

func TestReconcileCompletedProvisionsOnce(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "9876543210")

	res, err := f.rec.Reconcile(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusSuccess, res.Order.PaymentOrderStatus)
	assert.True(t, res.Paid())
	assert.True(t, res.Provisioned)
	assert.Equal(t, "COMPLETED", res.Order.PaymentOrderGatewayResponse["state"])

	require.Len(t, f.folders.Calls(), 1)
	assert.Equal(t, folderCall{"John O'Brien", "Full Stack Web Development", 6}, f.folders.Calls()[0])
	require.Len(t, f.mailer.Sent(), 1)
	assert.Equal(t, "Payment Receipt: Full Stack Web Development", f.mailer.Sent()[0].Subject)
	require.Len(t, f.messenger.Sent(), 1)
	assert.Equal(t, "9876543210", f.messenger.Sent()[0].To)
}

func TestReconcileCompletedWithoutPhoneSkipsMessaging(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "")

	_, err := f.rec.Reconcile(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Len(t, f.folders.Calls(), 1)
	assert.Len(t, f.mailer.Sent(), 1)
	assert.Empty(t, f.messenger.Sent())
}

func TestReconcileNonCompletedMarksFailed(t *testing.T) {
	for _, state := range []string{"FAILED", "PENDING", ""} {
		t.Run("state="+state, func(t *testing.T) {
			f := newReconcileFixture(state, "9876543210")

			res, err := f.rec.Reconcile(context.Background(), "order-1")
			require.NoError(t, err)

			assert.Equal(t, model.PaymentStatusFailed, res.Order.PaymentOrderStatus)
			assert.False(t, res.Paid())
			assert.False(t, res.Provisioned)
			assert.Empty(t, f.folders.Calls())
			assert.Empty(t, f.mailer.Sent())
			assert.Empty(t, f.messenger.Sent())
		})
	}
}

func TestReconcileTwiceIsIdempotent(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "9876543210")
	ctx := context.Background()

	first, err := f.rec.Reconcile(ctx, "order-1")
	require.NoError(t, err)

	// the gateway changing its mind must not move a terminal order
	f.gateway.state = "FAILED"
	second, err := f.rec.Reconcile(ctx, "order-1")
	require.NoError(t, err)

	assert.Equal(t, first.Order.PaymentOrderStatus, second.Order.PaymentOrderStatus)
	assert.Equal(t, model.PaymentStatusSuccess, second.Order.PaymentOrderStatus)
	assert.True(t, second.Settled)
	assert.False(t, second.Provisioned)
	assert.Equal(t, 1, f.gateway.StatusCalls())
	assert.Len(t, f.folders.Calls(), 1)
	assert.Len(t, f.mailer.Sent(), 1)
	assert.Len(t, f.messenger.Sent(), 1)
}

func TestReconcileFailedStaysFailed(t *testing.T) {
	f := newReconcileFixture("FAILED", "")
	ctx := context.Background()

	_, err := f.rec.Reconcile(ctx, "order-1")
	require.NoError(t, err)

	f.gateway.state = "COMPLETED"
	res, err := f.rec.Reconcile(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, res.Order.PaymentOrderStatus)
	assert.Empty(t, f.folders.Calls())
}

func TestReconcileGatewayErrorLeavesOrderPending(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "")
	f.gateway.statusErr = &GatewayStatusError{OrderID: "order-1", StatusCode: 503, Err: errBoom}

	_, err := f.rec.Reconcile(context.Background(), "order-1")

	var gse *GatewayStatusError
	require.True(t, errors.As(err, &gse))
	assert.ErrorIs(t, err, errBoom)

	stored, err := f.store.FindByMerchantOrderID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, stored.PaymentOrderStatus)
	assert.Empty(t, f.folders.Calls())

	// once the gateway recovers the order settles normally
	f.gateway.statusErr = nil
	res, err := f.rec.Reconcile(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, res.Provisioned)
}

func TestReconcileUnknownOrder(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "")

	_, err := f.rec.Reconcile(context.Background(), "nope")

	var nf *OrderNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.OrderID)
	assert.Equal(t, 0, f.gateway.StatusCalls())
}

func TestReconcileConcurrentCallsProvisionOnce(t *testing.T) {
	f := newReconcileFixture("COMPLETED", "9876543210")

	const workers = 8
	var wg sync.WaitGroup
	results := make([]ReconcileResult, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.rec.Reconcile(context.Background(), "order-1")
		}(i)
	}
	wg.Wait()

	provisioned := 0
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, model.PaymentStatusSuccess, results[i].Order.PaymentOrderStatus)
		if results[i].Provisioned {
			provisioned++
		}
	}
	assert.Equal(t, 1, provisioned)
	assert.Len(t, f.folders.Calls(), 1)
	assert.Len(t, f.mailer.Sent(), 1)
	assert.Len(t, f.messenger.Sent(), 1)
}

func TestMapGatewayState(t *testing.T) {
	assert.Equal(t, model.PaymentStatusSuccess, MapGatewayState("COMPLETED"))
	assert.Equal(t, model.PaymentStatusSuccess, MapGatewayState(" completed "))
	assert.Equal(t, model.PaymentStatusFailed, MapGatewayState("FAILED"))
	assert.Equal(t, model.PaymentStatusFailed, MapGatewayState("PENDING"))
	assert.Equal(t, model.PaymentStatusFailed, MapGatewayState(""))
}

func TestReconcileTerminalLeavesOpenCheckoutPending(t *testing.T) {
	f := newReconcileFixture("PENDING", "9876543210")
	ctx := context.Background()

	res, err := f.rec.ReconcileTerminal(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, res.Open)
	assert.False(t, res.Paid())
	assert.Equal(t, model.PaymentStatusPending, res.Order.PaymentOrderStatus)

	stored, err := f.store.FindByMerchantOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, stored.PaymentOrderStatus)
	assert.Empty(t, f.folders.Calls())

	f.gateway.state = "COMPLETED"
	res, err = f.rec.ReconcileTerminal(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, res.Open)
	assert.True(t, res.Provisioned)
	assert.Len(t, f.folders.Calls(), 1)
}

func TestReconcileTerminalSettlesFailure(t *testing.T) {
	f := newReconcileFixture("failed", "")

	res, err := f.rec.ReconcileTerminal(context.Background(), "order-1")
	require.NoError(t, err)
	assert.False(t, res.Open)
	assert.Equal(t, model.PaymentStatusFailed, res.Order.PaymentOrderStatus)
}

func TestIsTerminalGatewayState(t *testing.T) {
	assert.True(t, IsTerminalGatewayState("COMPLETED"))
	assert.True(t, IsTerminalGatewayState(" failed "))
	assert.False(t, IsTerminalGatewayState("PENDING"))
	assert.False(t, IsTerminalGatewayState(""))
}
