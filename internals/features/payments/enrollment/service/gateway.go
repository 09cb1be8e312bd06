package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	GatewayStateCompleted = "COMPLETED"
	GatewayStateFailed    = "FAILED"

	authScheme = "O-Bearer"
)

type CheckoutSession struct {
	RedirectURL string
	State       string
	Raw         map[string]any
}

type OrderStatus struct {
	State string
	Raw   map[string]any
}

// Gateway is the slice of the payment provider the enrollment flow needs.
type Gateway interface {
	Authenticate(ctx context.Context) (Token, error)
	CreateCheckoutSession(ctx context.Context, orderID string, amountMinor int64, redirectURL string) (CheckoutSession, error)
	GetOrderStatus(ctx context.Context, orderID string) (OrderStatus, error)
}

type PhonePeConfig struct {
	HostURL       string
	ClientID      string
	ClientSecret  string
	ClientVersion string
	Timeout       time.Duration
	TokenTTL      time.Duration
}

/* =========================================================
   PhonePe client
========================================================= */

type PhonePeClient struct {
	cfg    PhonePeConfig
	http   *http.Client
	tokens *TokenCache
}

var _ Gateway = (*PhonePeClient)(nil)

func NewPhonePeClient(cfg PhonePeConfig) *PhonePeClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.HostURL = strings.TrimRight(cfg.HostURL, "/")
	c := &PhonePeClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	c.tokens = NewTokenCache(c.Authenticate, cfg.TokenTTL)
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Authenticate exchanges client credentials for a bearer token. No retry.
func (c *PhonePeClient) Authenticate(ctx context.Context) (Token, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_version", c.cfg.ClientVersion)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "client_credentials")

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.HostURL+"/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, &GatewayAuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	status, body, err := c.do(req)
	if err != nil {
		return Token{}, &GatewayAuthError{StatusCode: status, Err: err}
	}

	var tr tokenResponse
	if err := sonic.Unmarshal(body, &tr); err != nil {
		return Token{}, &GatewayAuthError{StatusCode: status, Err: fmt.Errorf("decode token: %w", err)}
	}
	if strings.TrimSpace(tr.AccessToken) == "" {
		return Token{}, &GatewayAuthError{StatusCode: status, Err: errors.New("empty access_token")}
	}
	tok := Token{AccessToken: tr.AccessToken}
	if tr.ExpiresAt > 0 {
		tok.ExpiresAt = time.Unix(tr.ExpiresAt, 0)
	}
	return tok, nil
}

type merchantURLs struct {
	RedirectURL string `json:"redirectUrl"`
}

type paymentFlow struct {
	Type         string       `json:"type"`
	MerchantURLs merchantURLs `json:"merchantUrls"`
}

type checkoutRequest struct {
	MerchantOrderID string      `json:"merchantOrderId"`
	Amount          int64       `json:"amount"`
	PaymentFlow     paymentFlow `json:"paymentFlow"`
}

func (c *PhonePeClient) CreateCheckoutSession(ctx context.Context, orderID string, amountMinor int64, redirectURL string) (CheckoutSession, error) {
	fail := func(status int, err error) (CheckoutSession, error) {
		return CheckoutSession{}, &GatewayCheckoutError{OrderID: orderID, StatusCode: status, Err: err}
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		return fail(0, err)
	}

	payload, err := sonic.Marshal(checkoutRequest{
		MerchantOrderID: orderID,
		Amount:          amountMinor,
		PaymentFlow: paymentFlow{
			Type:         "PG_CHECKOUT",
			MerchantURLs: merchantURLs{RedirectURL: redirectURL},
		},
	})
	if err != nil {
		return fail(0, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.HostURL+"/checkout/v2/pay", bytes.NewReader(payload))
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authScheme+" "+token)

	status, body, err := c.do(req)
	if err != nil {
		c.invalidateOn(status)
		return fail(status, err)
	}

	raw := map[string]any{}
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return fail(status, fmt.Errorf("decode checkout: %w", err))
	}
	redirect, _ := raw["redirectUrl"].(string)
	if strings.TrimSpace(redirect) == "" {
		return fail(status, errors.New("response has no redirectUrl"))
	}
	state, _ := raw["state"].(string)
	return CheckoutSession{RedirectURL: redirect, State: state, Raw: raw}, nil
}

func (c *PhonePeClient) GetOrderStatus(ctx context.Context, orderID string) (OrderStatus, error) {
	fail := func(status int, err error) (OrderStatus, error) {
		return OrderStatus{}, &GatewayStatusError{OrderID: orderID, StatusCode: status, Err: err}
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		return fail(0, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/checkout/v2/order/%s/status", c.cfg.HostURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authScheme+" "+token)

	status, body, err := c.do(req)
	if err != nil {
		c.invalidateOn(status)
		return fail(status, err)
	}

	raw := map[string]any{}
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return fail(status, fmt.Errorf("decode status: %w", err))
	}
	state, _ := raw["state"].(string)
	return OrderStatus{State: state, Raw: raw}, nil
}

// do runs the request and returns the body of a 2xx response.
func (c *PhonePeClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}
	return resp.StatusCode, body, nil
}

func (c *PhonePeClient) invalidateOn(status int) {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		c.tokens.Invalidate()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
