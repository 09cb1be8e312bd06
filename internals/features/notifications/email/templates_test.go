package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptMessage(t *testing.T) {
	msg, err := ReceiptMessage(Address{Name: "Asha", Email: "asha@example.com"}, Receipt{
		OrderID:    "order-1",
		CourseName: "Full Stack Web Development",
		Amount:     199,
		PaidAt:     time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Payment Receipt: Full Stack Web Development", msg.Subject)
	assert.Equal(t, "asha@example.com", msg.To.Email)
	for _, part := range []string{"order-1", "Full Stack Web Development", "04 Mar 2026", "₹199"} {
		assert.Contains(t, msg.TextContent, part)
	}
	assert.Contains(t, msg.HTMLContent, "order-1")
}

func TestOTPMessage(t *testing.T) {
	msg, err := OTPMessage(Address{Email: "a@b.co"}, "123456", OTPReset)
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "Reset Password")
	assert.Contains(t, msg.TextContent, "123456")
	assert.Contains(t, msg.HTMLContent, "123456")

	msg, err = OTPMessage(Address{Email: "a@b.co"}, "654321", OTPVerify)
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "Verify your account")
}

func TestNewMailerFallsBackToConsole(t *testing.T) {
	m := NewMailer("", Address{Email: "noreply@zamanat.com"})
	_, ok := m.(ConsoleMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: Address{Email: "x@y.z"}}))

	_, ok = NewMailer("SG.key", Address{}).(*SendgridMailer)
	assert.True(t, ok)
}
