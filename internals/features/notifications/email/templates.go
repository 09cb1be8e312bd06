package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

type Receipt struct {
	OrderID    string
	CourseName string
	Amount     int64
	PaidAt     time.Time
}

var receiptHTML = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html><body style="font-family:Segoe UI,Arial,sans-serif;color:#374151">
<h2 style="color:#3f6212">Payment Successful</h2>
<p>Thank you for enrolling in <strong>{{.CourseName}}</strong>.</p>
<table cellpadding="6">
<tr><td>Order ID</td><td><strong>{{.OrderID}}</strong></td></tr>
<tr><td>Course</td><td>{{.CourseName}}</td></tr>
<tr><td>Date</td><td>{{.Date}}</td></tr>
<tr><td>Amount</td><td>&#8377;{{.Amount}}</td></tr>
</table>
</body></html>`))

// ReceiptMessage builds the post-payment receipt.
func ReceiptMessage(to Address, r Receipt) (Message, error) {
	date := r.PaidAt.Format("02 Jan 2006")
	var html strings.Builder
	if err := receiptHTML.Execute(&html, map[string]any{
		"OrderID":    r.OrderID,
		"CourseName": r.CourseName,
		"Date":       date,
		"Amount":     r.Amount,
	}); err != nil {
		return Message{}, err
	}
	text := fmt.Sprintf(
		"Payment Successful\nOrder ID: %s\nCourse: %s\nDate: %s\nAmount: ₹%d\n",
		r.OrderID, r.CourseName, date, r.Amount,
	)
	return Message{
		To:          to,
		Subject:     "Payment Receipt: " + r.CourseName,
		TextContent: text,
		HTMLContent: html.String(),
	}, nil
}

type OTPPurpose string

const (
	OTPVerify  OTPPurpose = "verify"
	OTPResend  OTPPurpose = "resend"
	OTPReset   OTPPurpose = "reset"
	otpValidFor            = "10 minutes"
)

var otpHTML = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html><body style="font-family:Segoe UI,Arial,sans-serif;text-align:center;color:#374151">
<h2 style="color:#1a2e05">{{.Heading}}</h2>
<p>{{.Intro}}</p>
<div style="font-size:32px;font-weight:bold;letter-spacing:5px;padding:20px;background:#ecfccb">{{.Code}}</div>
<p>This code will expire in {{.ValidFor}}.</p>
</body></html>`))

// OTPMessage builds a verification or password reset code email.
func OTPMessage(to Address, code string, purpose OTPPurpose) (Message, error) {
	heading, intro, subject, text := "Welcome to Zamanat Tech!",
		"Use the following code to complete your registration:",
		"Verify your account - Zamanat Tech Solutions",
		"Your verification code is: " + code
	switch purpose {
	case OTPResend:
		heading, intro = "New Verification Code", "You requested a new verification code:"
		subject = "New Verification Code - Zamanat Tech Solutions"
		text = "Your new verification code is: " + code
	case OTPReset:
		heading, intro = "Password Reset Request", "Use the following code to reset your password:"
		subject = "Reset Password Code - Zamanat Tech Solutions"
		text = "Your reset code is: " + code
	}

	var html strings.Builder
	if err := otpHTML.Execute(&html, map[string]string{
		"Heading":  heading,
		"Intro":    intro,
		"Code":     code,
		"ValidFor": otpValidFor,
	}); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, TextContent: text, HTMLContent: html.String()}, nil
}
