package service

import (
	"net/url"
	"strings"
)

// VerifyCode tells the frontend to confirm the outcome through the status endpoint.
const VerifyCode = "VERIFY"

type RedirectParams struct {
	Code                string `json:"code" form:"code" query:"code"`
	MerchantOrderID     string `json:"merchantOrderId" form:"merchantOrderId" query:"merchantOrderId"`
	TransactionID       string `json:"transactionId" form:"transactionId" query:"transactionId"`
	ProviderReferenceID string `json:"providerReferenceId" form:"providerReferenceId" query:"providerReferenceId"`
	JobID               string `json:"jobId" form:"jobId" query:"jobId"`
}

type RedirectTarget struct {
	Code       string
	OrderID    string
	ProviderID string
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// ResolveRedirect merges callback body and query (body wins per field).
// The order id falls back to the jobId embedded at initiation.
func ResolveRedirect(body, query RedirectParams) RedirectTarget {
	return RedirectTarget{
		Code: firstNonEmpty(body.Code, query.Code, VerifyCode),
		OrderID: firstNonEmpty(
			body.MerchantOrderID, query.MerchantOrderID,
			body.TransactionID, query.TransactionID,
			query.JobID, body.JobID,
		),
		ProviderID: firstNonEmpty(body.ProviderReferenceID, query.ProviderReferenceID),
	}
}

// FrontendURL builds {client}/dashboard?code=..&merchantOrderId=..&providerId=..
func (t RedirectTarget) FrontendURL(clientURL string) string {
	base := strings.TrimRight(firstNonEmpty(clientURL, "http://localhost:5173"), "/")
	return base + "/dashboard?code=" + url.QueryEscape(t.Code) +
		"&merchantOrderId=" + url.QueryEscape(t.OrderID) +
		"&providerId=" + url.QueryEscape(t.ProviderID)
}
