package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")

type InitiateResult struct {
	URL                   string
	MerchantTransactionID string
}

// OrderInitiator records a PENDING order and opens a checkout session for it.
type OrderInitiator struct {
	Store   repository.OrderStore
	Gateway Gateway
	APIURL  string // public base of this API, used in the gateway redirect

	newID func() string
}

func NewOrderInitiator(store repository.OrderStore, gw Gateway, apiURL string) *OrderInitiator {
	return &OrderInitiator{Store: store, Gateway: gw, APIURL: strings.TrimRight(apiURL, "/"), newID: NewMerchantOrderID}
}

// NewMerchantOrderID is a random UUID cut to the gateway's length limit.
func NewMerchantOrderID() string {
	id := uuid.NewString()
	if len(id) > model.MerchantOrderIDMaxLen {
		id = id[:model.MerchantOrderIDMaxLen]
	}
	return id
}

// RedirectURL embeds the order id so it survives a callback that loses its body.
func RedirectURL(apiURL, orderID string) string {
	return fmt.Sprintf("%s/api/payment/redirect?jobId=%s", strings.TrimRight(apiURL, "/"), url.QueryEscape(orderID))
}

func (s *OrderInitiator) Initiate(ctx context.Context, userID uuid.UUID, courseID string, amount int64) (InitiateResult, error) {
	if amount <= 0 {
		return InitiateResult{}, ErrInvalidAmount
	}

	orderID := s.newID()
	order := &model.PaymentOrderModel{
		PaymentOrderMerchantOrderID: orderID,
		PaymentOrderUserID:          userID,
		PaymentOrderAmount:          amount,
		PaymentOrderStatus:          model.PaymentStatusPending,
	}
	if c := strings.TrimSpace(courseID); c != "" {
		order.PaymentOrderCourseID = &c
	}

	// persisted before the gateway call so a failed checkout still leaves an auditable row
	if err := s.Store.Create(ctx, order); err != nil {
		return InitiateResult{}, fmt.Errorf("create payment order: %w", err)
	}
	log.Printf("[PAYMENT] order created id=%s user=%s amount=%d", orderID, userID, amount)

	session, err := s.Gateway.CreateCheckoutSession(ctx, orderID, amount*100, RedirectURL(s.APIURL, orderID))
	if err != nil {
		log.Printf("[PAYMENT] ❌ checkout failed id=%s: %v", orderID, err)
		return InitiateResult{}, &PaymentInitiationError{OrderID: orderID, Err: err}
	}

	return InitiateResult{URL: session.RedirectURL, MerchantTransactionID: orderID}, nil
}
