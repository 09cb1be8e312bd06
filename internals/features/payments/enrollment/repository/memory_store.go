package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"zamanat_backend/internals/features/payments/enrollment/model"
)

// MemoryOrderStore is an in-process OrderStore used by tests and local runs without Postgres.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]model.PaymentOrderModel
	now    func() time.Time

	// FailCreate makes Create return this error when set.
	FailCreate error
}

var _ OrderStore = (*MemoryOrderStore)(nil)

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: map[string]model.PaymentOrderModel{}, now: time.Now}
}

func (m *MemoryOrderStore) Create(_ context.Context, order *model.PaymentOrderModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate != nil {
		return m.FailCreate
	}
	if _, dup := m.orders[order.PaymentOrderMerchantOrderID]; dup {
		return fmt.Errorf("duplicate merchant order id %q", order.PaymentOrderMerchantOrderID)
	}
	if order.PaymentOrderID == uuid.Nil {
		order.PaymentOrderID = uuid.New()
	}
	if order.PaymentOrderStatus == "" {
		order.PaymentOrderStatus = model.PaymentStatusPending
	}
	if order.PaymentOrderCreatedAt.IsZero() {
		order.PaymentOrderCreatedAt = m.now()
	}
	order.PaymentOrderUpdatedAt = order.PaymentOrderCreatedAt
	m.orders[order.PaymentOrderMerchantOrderID] = *order
	return nil
}

func (m *MemoryOrderStore) FindByMerchantOrderID(_ context.Context, id string) (*model.PaymentOrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &o, nil
}

func (m *MemoryOrderStore) TransitionFromPending(_ context.Context, id string, status model.PaymentStatus, response datatypes.JSONMap) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.PaymentOrderStatus != model.PaymentStatusPending {
		return false, nil
	}
	o.PaymentOrderStatus = status
	o.PaymentOrderGatewayResponse = response
	o.PaymentOrderUpdatedAt = m.now()
	m.orders[id] = o
	return true, nil
}

func (m *MemoryOrderStore) LatestPaidByUser(_ context.Context, userID uuid.UUID) (*model.PaymentOrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.PaymentOrderModel
	for _, o := range m.orders {
		if o.PaymentOrderUserID != userID || o.PaymentOrderStatus != model.PaymentStatusSuccess {
			continue
		}
		if latest == nil || o.PaymentOrderCreatedAt.After(latest.PaymentOrderCreatedAt) {
			cp := o
			latest = &cp
		}
	}
	if latest == nil {
		return nil, ErrOrderNotFound
	}
	return latest, nil
}

func (m *MemoryOrderStore) ListStalePending(_ context.Context, createdBefore time.Time, limit int) ([]model.PaymentOrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PaymentOrderModel, 0)
	for _, o := range m.orders {
		if o.PaymentOrderStatus == model.PaymentStatusPending && o.PaymentOrderCreatedAt.Before(createdBefore) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PaymentOrderCreatedAt.Before(out[j].PaymentOrderCreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Put stores an order as-is (test seeding).
func (m *MemoryOrderStore) Put(order model.PaymentOrderModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.PaymentOrderMerchantOrderID] = order
}

func (m *MemoryOrderStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}
