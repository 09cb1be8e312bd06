package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"zamanat_backend/internals/features/notifications/email"
	"zamanat_backend/internals/features/payments/enrollment/model"
	"zamanat_backend/internals/features/payments/enrollment/repository"
)

type fakeGateway struct {
	mu sync.Mutex

	checkoutURL string
	checkoutErr error
	state       string
	statusErr   error

	checkoutCalls []checkoutCall
	statusCalls   int
}

type checkoutCall struct {
	OrderID     string
	AmountMinor int64
	RedirectURL string
}

func (g *fakeGateway) Authenticate(context.Context) (Token, error) {
	return Token{AccessToken: "tok"}, nil
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, orderID string, amountMinor int64, redirectURL string) (CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checkoutCalls = append(g.checkoutCalls, checkoutCall{orderID, amountMinor, redirectURL})
	if g.checkoutErr != nil {
		return CheckoutSession{}, g.checkoutErr
	}
	return CheckoutSession{RedirectURL: g.checkoutURL, State: "PENDING"}, nil
}

func (g *fakeGateway) GetOrderStatus(_ context.Context, orderID string) (OrderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if g.statusErr != nil {
		return OrderStatus{}, g.statusErr
	}
	return OrderStatus{State: g.state, Raw: map[string]any{"orderId": "OMO-" + orderID, "state": g.state}}, nil
}

func (g *fakeGateway) StatusCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusCalls
}

type fakeDirectory struct {
	contact   repository.UserContact
	course    repository.CourseInfo
	courseErr error
	userErr   error
}

func (d *fakeDirectory) UserContact(context.Context, uuid.UUID) (repository.UserContact, error) {
	return d.contact, d.userErr
}

func (d *fakeDirectory) CourseInfo(context.Context, string) (repository.CourseInfo, error) {
	if d.courseErr != nil {
		return repository.CourseInfo{}, d.courseErr
	}
	return d.course, nil
}

type folderCall struct {
	User, Course string
	Modules      int
}

type fakeFolders struct {
	mu    sync.Mutex
	calls []folderCall
	err   error
}

func (f *fakeFolders) InitializeCourseFolders(user, course string, modules int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, folderCall{user, course, modules})
	return "/tmp/" + user, f.err
}

func (f *fakeFolders) Calls() []folderCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]folderCall(nil), f.calls...)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *fakeMailer) Sent() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.sent...)
}

type sentText struct{ To, Body string }

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentText
	err  error
}

func (w *fakeMessenger) SendText(_ context.Context, to, body string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, sentText{to, body})
	return w.err
}

func (w *fakeMessenger) Sent() []sentText {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]sentText(nil), w.sent...)
}

type panicMailer struct{}

func (panicMailer) Send(context.Context, email.Message) error { panic("smtp exploded") }

var errBoom = errors.New("boom")

func pendingOrder(id string, userID uuid.UUID) model.PaymentOrderModel {
	course := "full-stack-web-development"
	return model.PaymentOrderModel{
		PaymentOrderID:              uuid.New(),
		PaymentOrderMerchantOrderID: id,
		PaymentOrderUserID:          userID,
		PaymentOrderCourseID:        &course,
		PaymentOrderAmount:          199,
		PaymentOrderStatus:          model.PaymentStatusPending,
	}
}
