package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"zamanat_backend/internals/features/payments/enrollment/model"
)

var ErrOrderNotFound = errors.New("payment order not found")

// OrderStore persists payment orders. TransitionFromPending is the only way out of PENDING.
type OrderStore interface {
	Create(ctx context.Context, order *model.PaymentOrderModel) error
	FindByMerchantOrderID(ctx context.Context, merchantOrderID string) (*model.PaymentOrderModel, error)
	// TransitionFromPending sets status+response only while the row is still PENDING.
	// It reports whether this call performed the transition.
	TransitionFromPending(ctx context.Context, merchantOrderID string, status model.PaymentStatus, response datatypes.JSONMap) (bool, error)
	LatestPaidByUser(ctx context.Context, userID uuid.UUID) (*model.PaymentOrderModel, error)
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]model.PaymentOrderModel, error)
}

/* =========================================================
   GORM implementation
========================================================= */

type GormOrderStore struct {
	DB *gorm.DB
}

var _ OrderStore = (*GormOrderStore)(nil)

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{DB: db}
}

func (s *GormOrderStore) Create(ctx context.Context, order *model.PaymentOrderModel) error {
	if order.PaymentOrderStatus == "" {
		order.PaymentOrderStatus = model.PaymentStatusPending
	}
	return s.DB.WithContext(ctx).Create(order).Error
}

func (s *GormOrderStore) FindByMerchantOrderID(ctx context.Context, merchantOrderID string) (*model.PaymentOrderModel, error) {
	var order model.PaymentOrderModel
	err := s.DB.WithContext(ctx).
		Where("payment_order_merchant_order_id = ?", merchantOrderID).
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormOrderStore) TransitionFromPending(
	ctx context.Context,
	merchantOrderID string,
	status model.PaymentStatus,
	response datatypes.JSONMap,
) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.PaymentOrderModel{}).
		Where("payment_order_merchant_order_id = ? AND payment_order_status = ?", merchantOrderID, model.PaymentStatusPending).
		Updates(map[string]any{
			"payment_order_status":           status,
			"payment_order_gateway_response": response,
			"payment_order_updated_at":       time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormOrderStore) LatestPaidByUser(ctx context.Context, userID uuid.UUID) (*model.PaymentOrderModel, error) {
	var order model.PaymentOrderModel
	err := s.DB.WithContext(ctx).
		Where("payment_order_user_id = ? AND payment_order_status = ?", userID, model.PaymentStatusSuccess).
		Order("payment_order_created_at DESC").
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormOrderStore) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]model.PaymentOrderModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []model.PaymentOrderModel
	err := s.DB.WithContext(ctx).
		Where("payment_order_status = ? AND payment_order_created_at < ?", model.PaymentStatusPending, createdBefore).
		Order("payment_order_created_at ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
