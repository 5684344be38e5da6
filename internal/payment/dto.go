package payment

import (
	"github.com/abtree/payment-backend/internal/core/common/validation"
	paymentmodel "github.com/abtree/payment-backend/internal/core/datamodel/payment"
)

// CreateIntentRequest is the body of POST /api/create-payment-intent. Amount
// is a pointer so a missing field and an explicit zero both fail validation.
type CreateIntentRequest struct {
	Amount   *float64          `json:"amount"`
	Currency string            `json:"currency"`
	UserID   string            `json:"userId"`
	Metadata map[string]string `json:"metadata"`
}

func (r *CreateIntentRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", r.Amount).
		Required("Invalid amount. Amount must be greater than 0.").
		GreaterThan(0, "Invalid amount. Amount must be greater than 0.")
	validator.Field("userId", r.UserID).
		Required("User ID is required.")

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateIntentResponse struct {
	Success         bool    `json:"success"`
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
}

// ConfirmPaymentRequest is the body of POST /api/confirm-payment.
type ConfirmPaymentRequest struct {
	PaymentIntentID string   `json:"paymentIntentId"`
	UserID          string   `json:"userId"`
	Amount          *float64 `json:"amount"`
	CardLast4       string   `json:"cardLast4"`
	CardHolder      string   `json:"cardHolder"`
	Status          string   `json:"status"`
}

func (r *ConfirmPaymentRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("paymentIntentId", r.PaymentIntentID).Required("Missing required fields")
	validator.Field("userId", r.UserID).Required("Missing required fields")
	validator.Field("amount", r.Amount).Required("Missing required fields")

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type ConfirmPaymentResponse struct {
	Success       bool   `json:"success"`
	PaymentID     string `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

type HistoryResponse struct {
	Success  bool                    `json:"success"`
	Payments []*paymentmodel.Payment `json:"payments"`
	Count    int                     `json:"count"`
}

// ErrorResponse is the uniform failure shape of every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
