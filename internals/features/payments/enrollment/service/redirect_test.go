package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRedirectFallsBackToJobID(t *testing.T) {
	target := ResolveRedirect(RedirectParams{}, RedirectParams{JobID: "abc123"})

	assert.Equal(t, "VERIFY", target.Code)
	assert.Equal(t, "abc123", target.OrderID)
	assert.Equal(t,
		"http://localhost:5173/dashboard?code=VERIFY&merchantOrderId=abc123&providerId=",
		target.FrontendURL("http://localhost:5173"))
}

func TestResolveRedirectBodyWins(t *testing.T) {
	body := RedirectParams{Code: "PAYMENT_SUCCESS", MerchantOrderID: "from-body", ProviderReferenceID: "P1"}
	query := RedirectParams{Code: "X", MerchantOrderID: "from-query", JobID: "job"}

	target := ResolveRedirect(body, query)

	assert.Equal(t, "PAYMENT_SUCCESS", target.Code)
	assert.Equal(t, "from-body", target.OrderID)
	assert.Equal(t, "P1", target.ProviderID)
}

func TestResolveRedirectTransactionIDBeforeJobID(t *testing.T) {
	target := ResolveRedirect(RedirectParams{TransactionID: "tx"}, RedirectParams{JobID: "job"})
	assert.Equal(t, "tx", target.OrderID)
}

func TestResolveRedirectEmptyCallback(t *testing.T) {
	target := ResolveRedirect(RedirectParams{}, RedirectParams{})

	assert.Equal(t,
		"https://app.example/dashboard?code=VERIFY&merchantOrderId=&providerId=",
		target.FrontendURL("https://app.example/"))
}
