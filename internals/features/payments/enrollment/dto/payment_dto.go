package dto

import (
	"time"

	"zamanat_backend/internals/features/payments/enrollment/model"
)

type PayRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	CourseID string `json:"courseId" validate:"omitempty,max=120"`
}

type PayResponse struct {
	Success               bool   `json:"success"`
	URL                   string `json:"url"`
	MerchantTransactionID string `json:"merchantTransactionId"`
}

type StatusRequest struct {
	MerchantTransactionID string `json:"merchantTransactionId" validate:"required"`
}

type PaymentOrderResponse struct {
	MerchantTransactionID string         `json:"merchantTransactionId"`
	UserID                string         `json:"userId"`
	CourseID              *string        `json:"courseId,omitempty"`
	Amount                int64          `json:"amount"`
	Status                string         `json:"status"`
	PaymentDetails        map[string]any `json:"paymentDetails,omitempty"`
	CreatedAt             string         `json:"createdAt"`
	UpdatedAt             string         `json:"updatedAt"`
}

func ToPaymentOrderResponse(m model.PaymentOrderModel) PaymentOrderResponse {
	return PaymentOrderResponse{
		MerchantTransactionID: m.PaymentOrderMerchantOrderID,
		UserID:                m.PaymentOrderUserID.String(),
		CourseID:              m.PaymentOrderCourseID,
		Amount:                m.PaymentOrderAmount,
		Status:                string(m.PaymentOrderStatus),
		PaymentDetails:        m.PaymentOrderGatewayResponse,
		CreatedAt:             m.PaymentOrderCreatedAt.Format(time.RFC3339),
		UpdatedAt:             m.PaymentOrderUpdatedAt.Format(time.RFC3339),
	}
}
