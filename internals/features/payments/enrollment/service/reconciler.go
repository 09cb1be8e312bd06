package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"

	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
)

// Provisioning is fired once per order, on the PENDING -> PAYMENT_SUCCESS edge.
type Provisioning interface {
	Provision(ctx context.Context, order model.PaymentOrderModel)
}

type ReconcileResult struct {
	Order model.PaymentOrderModel
	// Provisioned is true only for the call that moved the order to PAYMENT_SUCCESS.
	Provisioned bool
	// Settled is true when the order was already terminal and the gateway was not asked.
	Settled bool
	// Open is true when the gateway still reports the checkout in progress and the order was left PENDING.
	Open bool
}

func (r ReconcileResult) Paid() bool {
	return r.Order.PaymentOrderStatus == model.PaymentStatusSuccess
}

type StatusReconciler struct {
	Store       repository.OrderStore
	Gateway     Gateway
	Provisioner Provisioning
}

func NewStatusReconciler(store repository.OrderStore, gw Gateway, p Provisioning) *StatusReconciler {
	return &StatusReconciler{Store: store, Gateway: gw, Provisioner: p}
}

// MapGatewayState: COMPLETED is paid, anything else counts as failed.
func MapGatewayState(state string) model.PaymentStatus {
	if strings.EqualFold(strings.TrimSpace(state), GatewayStateCompleted) {
		return model.PaymentStatusSuccess
	}
	return model.PaymentStatusFailed
}

// IsTerminalGatewayState reports whether the gateway has finished with the checkout.
func IsTerminalGatewayState(state string) bool {
	state = strings.TrimSpace(state)
	return strings.EqualFold(state, GatewayStateCompleted) || strings.EqualFold(state, GatewayStateFailed)
}

// Reconcile settles the order from whatever the gateway reports now. A checkout still in
// progress counts as failed; this is the user-driven /status path.
func (r *StatusReconciler) Reconcile(ctx context.Context, orderID string) (ReconcileResult, error) {
	return r.reconcile(ctx, orderID, false)
}

// ReconcileTerminal settles the order only once the gateway reports COMPLETED or FAILED.
// Any other gateway state leaves it PENDING, so a buyer still on the checkout page can
// finish paying later.
func (r *StatusReconciler) ReconcileTerminal(ctx context.Context, orderID string) (ReconcileResult, error) {
	return r.reconcile(ctx, orderID, true)
}

func (r *StatusReconciler) reconcile(ctx context.Context, orderID string, terminalOnly bool) (ReconcileResult, error) {
	orderID = strings.TrimSpace(orderID)

	order, err := r.Store.FindByMerchantOrderID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return ReconcileResult{}, &OrderNotFoundError{OrderID: orderID}
	}
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("load payment order: %w", err)
	}

	previous := order.PaymentOrderStatus
	if previous.IsTerminal() {
		return ReconcileResult{Order: *order, Settled: true}, nil
	}

	// a failed lookup leaves the order untouched; it is not a FAILED outcome
	status, err := r.Gateway.GetOrderStatus(ctx, orderID)
	if err != nil {
		return ReconcileResult{Order: *order}, err
	}
	if terminalOnly && !IsTerminalGatewayState(status.State) {
		log.Printf("[RECONCILE] order=%s left pending (gateway state=%q)", orderID, status.State)
		return ReconcileResult{Order: *order, Open: true}, nil
	}
	next := MapGatewayState(status.State)

	won, err := r.Store.TransitionFromPending(ctx, orderID, next, datatypes.JSONMap(status.Raw))
	if err != nil {
		return ReconcileResult{Order: *order}, fmt.Errorf("update payment order: %w", err)
	}
	if !won {
		// a concurrent reconcile settled it first; report what it stored
		current, err := r.Store.FindByMerchantOrderID(ctx, orderID)
		if err != nil {
			return ReconcileResult{Order: *order}, fmt.Errorf("reload payment order: %w", err)
		}
		log.Printf("[RECONCILE] order=%s already settled as %s", orderID, current.PaymentOrderStatus)
		return ReconcileResult{Order: *current, Settled: true}, nil
	}

	updated, err := r.Store.FindByMerchantOrderID(ctx, orderID)
	if err != nil {
		// the transition is committed; fall back to the values we wrote
		updated = order
		updated.PaymentOrderStatus = next
		updated.PaymentOrderGatewayResponse = datatypes.JSONMap(status.Raw)
	}
	log.Printf("[RECONCILE] order=%s %s -> %s (gateway state=%q)", orderID, previous, next, status.State)

	result := ReconcileResult{Order: *updated}
	if previous != model.PaymentStatusSuccess && next == model.PaymentStatusSuccess && r.Provisioner != nil {
		r.Provisioner.Provision(ctx, *updated)
		result.Provisioned = true
	}
	return result, nil
}
