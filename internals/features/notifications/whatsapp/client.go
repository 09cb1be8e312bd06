package whatsapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const countryPrefix = "91"

var ErrNotConfigured = errors.New("whatsapp: credentials not configured")

// Sender dispatches a plain text WhatsApp message.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

type Client struct {
	baseURL string
	phoneID string
	token   string
	http    *http.Client
}

var _ Sender = (*Client)(nil)

func NewClient(baseURL, phoneID, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		phoneID: phoneID,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.phoneID != "" && c.token != ""
}

type textBody struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

// SendText posts to {base}/{phoneID}/messages. The recipient is normalized first.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	payload, err := sonic.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               NormalizePhone(to),
		Type:             "text",
		Text:             textBody{Body: body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("whatsapp: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

// NormalizePhone prefixes the country code onto bare 10 digit numbers.
// Any other length is returned unchanged, including numbers with separators.
// TODO: validate E.164 length before dispatch; other lengths currently go out as-is.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	if len(p) == 10 && isDigits(p) {
		return countryPrefix + p
	}
	return p
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// EnrollmentText is the message sent after a confirmed payment.
func EnrollmentText(name, course string) string {
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s! 🎉 Your enrollment in %s is confirmed. Your course workspace is ready on the dashboard.", name, course)
}
