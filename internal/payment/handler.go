package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/abtree/payment-backend/internal"
	paymentmodel "github.com/abtree/payment-backend/internal/core/datamodel/payment"
	"github.com/abtree/payment-backend/internal/paymentgateway"
	"github.com/abtree/payment-backend/internal/transport"
)

// collaboratorTimeout bounds a single gateway or store call.
const collaboratorTimeout = 30 * time.Second

// ServiceAPI is what the handler needs from the payment service.
type ServiceAPI interface {
	CreateIntent(ctx context.Context, req *CreateIntentRequest) (*paymentgateway.Intent, error)
	ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (string, error)
	History(ctx context.Context, userID string) ([]*paymentmodel.Payment, error)
}

type Handler struct {
	transport.BaseHandler
	Service ServiceAPI
	Logger  *slog.Logger
}

func NewHandler(service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.BaseHandler{Logger: logger},
		Service:     service,
		Logger:      logger,
	}
}

// CreateIntent handles POST /api/create-payment-intent.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("CreateIntent: failed to parse request body", "error", err)
		h.WriteError(w, internal.NewValidationError("Invalid request body"))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), collaboratorTimeout)
	defer cancel()

	intent, err := h.Service.CreateIntent(ctx, &req)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CreateIntentResponse{
		Success:         true,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          *req.Amount,
	})
}

// ConfirmPayment handles POST /api/confirm-payment. The record is appended on
// the caller's assertion of success; no charge verification happens here.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("ConfirmPayment: failed to parse request body", "error", err)
		h.WriteError(w, internal.NewValidationError("Invalid request body"))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), collaboratorTimeout)
	defer cancel()

	paymentID, err := h.Service.ConfirmPayment(ctx, &req)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ConfirmPaymentResponse{
		Success:       true,
		PaymentID:     paymentID,
		TransactionID: req.PaymentIntentID,
		Message:       "Payment confirmed and recorded",
	})
}

// History handles GET /api/payments/{userId}.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := internal.WithTimeout(r.Context(), collaboratorTimeout)
	defer cancel()

	payments, err := h.Service.History(ctx, userID)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, HistoryResponse{
		Success:  true,
		Payments: payments,
		Count:    len(payments),
	})
}
