package email

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Address struct {
	Name  string
	Email string
}

type Message struct {
	To          Address
	Subject     string
	TextContent string
	HTMLContent string
}

// Mailer sends a single transactional message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

/* ===============================
   SendGrid
=================================*/

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key  string
	from *sgmail.Email
	host string
}

var _ Mailer = (*SendgridMailer)(nil)

func NewSendgridMailer(apiKey string, from Address) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(from.Name, from.Email),
		host: sendgridHost,
	}
}

func (m *SendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Email))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	if msg.HTMLContent != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}
	return v3
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To.Email) == "" {
		return fmt.Errorf("email: empty recipient")
	}
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

/* ===============================
   Console (dev / no API key)
=================================*/

type ConsoleMailer struct{}

var _ Mailer = ConsoleMailer{}

func (ConsoleMailer) Send(_ context.Context, msg Message) error {
	log.Println("----------------------------------------------------")
	log.Printf("[MAIL] To: %s <%s>", msg.To.Name, msg.To.Email)
	log.Printf("[MAIL] Subject: %s", msg.Subject)
	log.Printf("[MAIL] Message: %s", msg.TextContent)
	log.Println("----------------------------------------------------")
	return nil
}

// NewMailer picks SendGrid when a key is configured, console logging otherwise.
func NewMailer(apiKey string, from Address) Mailer {
	if strings.TrimSpace(apiKey) == "" {
		log.Println("⚠️ SENDGRID_API_KEY not set, emails are logged to console")
		return ConsoleMailer{}
	}
	return NewSendgridMailer(apiKey, from)
}
