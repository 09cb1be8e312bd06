package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "PAYMENT_SUCCESS"
	PaymentStatusFailed  PaymentStatus = "PAYMENT_FAILED"
)

// IsTerminal: SUCCESS and FAILED never transition again.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// MerchantOrderIDMaxLen is the gateway limit on merchantOrderId.
const MerchantOrderIDMaxLen = 30

type PaymentOrderModel struct {
	PaymentOrderID              uuid.UUID         `gorm:"column:payment_order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_order_id"`
	PaymentOrderMerchantOrderID string            `gorm:"column:payment_order_merchant_order_id;size:30;uniqueIndex;not null" json:"merchant_transaction_id"`
	PaymentOrderUserID          uuid.UUID         `gorm:"column:payment_order_user_id;type:uuid;not null;index" json:"user_id"`
	PaymentOrderCourseID        *string           `gorm:"column:payment_order_course_id;size:64" json:"course_id,omitempty"`
	PaymentOrderAmount          int64             `gorm:"column:payment_order_amount;not null" json:"amount"`
	PaymentOrderStatus          PaymentStatus     `gorm:"column:payment_order_status;size:20;not null;default:'PENDING';index" json:"status"`
	PaymentOrderGatewayResponse datatypes.JSONMap `gorm:"column:payment_order_gateway_response;type:jsonb" json:"payment_details,omitempty"`
	PaymentOrderCreatedAt       time.Time         `gorm:"column:payment_order_created_at;autoCreateTime" json:"created_at"`
	PaymentOrderUpdatedAt       time.Time         `gorm:"column:payment_order_updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentOrderModel) TableName() string {
	return "payment_orders"
}
