package service

import "fmt"

// GatewayAuthError: the token exchange was rejected or the gateway was unreachable.
type GatewayAuthError struct {
	StatusCode int
	Err        error
}

func (e *GatewayAuthError) Error() string {
	return fmt.Sprintf("gateway auth failed (status=%d): %v", e.StatusCode, e.Err)
}

func (e *GatewayAuthError) Unwrap() error { return e.Err }

// GatewayCheckoutError: the checkout call failed or returned no redirect URL.
type GatewayCheckoutError struct {
	OrderID    string
	StatusCode int
	Err        error
}

func (e *GatewayCheckoutError) Error() string {
	return fmt.Sprintf("gateway checkout failed for %s (status=%d): %v", e.OrderID, e.StatusCode, e.Err)
}

func (e *GatewayCheckoutError) Unwrap() error { return e.Err }

// GatewayStatusError: the status lookup failed. It says nothing about the payment outcome.
type GatewayStatusError struct {
	OrderID    string
	StatusCode int
	Err        error
}

func (e *GatewayStatusError) Error() string {
	return fmt.Sprintf("gateway status check failed for %s (status=%d): %v", e.OrderID, e.StatusCode, e.Err)
}

func (e *GatewayStatusError) Unwrap() error { return e.Err }

type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("payment order %q not found", e.OrderID)
}

// PaymentInitiationError wraps a gateway failure during initiation. The PENDING row is kept.
type PaymentInitiationError struct {
	OrderID string
	Err     error
}

func (e *PaymentInitiationError) Error() string {
	return fmt.Sprintf("payment initiation failed for %s: %v", e.OrderID, e.Err)
}

func (e *PaymentInitiationError) Unwrap() error { return e.Err }
