package payment

import (
	"context"
	"log/slog"
	"math"
	"time"

	errors "github.com/abtree/payment-backend/internal"
	paymentmodel "github.com/abtree/payment-backend/internal/core/datamodel/payment"
	"github.com/abtree/payment-backend/internal/paymentgateway"
)

const defaultCurrency = "usd"

// Repository is the payment record store: append and per-user lookup, nothing
// else. Records are never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, p *paymentmodel.Payment) (string, error)
	FindByUserID(ctx context.Context, userID string) ([]*paymentmodel.Payment, error)
}

type Service struct {
	gateway       paymentgateway.Gateway
	repository    Repository
	recipientCard string
	logger        *slog.Logger
}

func NewService(gateway paymentgateway.Gateway, repository Repository, recipientCard string, logger *slog.Logger) *Service {
	return &Service{
		gateway:       gateway,
		repository:    repository,
		recipientCard: recipientCard,
		logger:        logger,
	}
}

// CreateIntent converts the major-unit amount to the processor's minor units
// and requests a payment intent. The caller's userId is merged into the
// processor metadata first, then caller-supplied metadata keys are overlaid,
// so a caller metadata key named userId replaces the reserved entry.
func (s *Service) CreateIntent(ctx context.Context, req *CreateIntentRequest) (*paymentgateway.Intent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	amountMinor := int64(math.Round(*req.Amount * 100))

	metadata := map[string]string{"userId": req.UserID}
	for key, value := range req.Metadata {
		metadata[key] = value
	}

	intent, err := s.gateway.CreateIntent(ctx, amountMinor, currency, metadata)
	if err != nil {
		s.logger.Error("creating payment intent failed",
			"error", err,
			"user_id", req.UserID,
			"amount", *req.Amount)
		return nil, errors.NewExternalError(err.Error(), err)
	}

	s.logger.Info("payment intent created",
		"payment_intent_id", intent.ID,
		"user_id", req.UserID,
		"amount", *req.Amount)

	return intent, nil
}

// ConfirmPayment appends a record of a payment the caller asserts succeeded.
// No verification against the gateway happens here: confirmation is a pure
// append, decoupled from intent-creation state.
func (s *Service) ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	record := &paymentmodel.Payment{
		UserID:        req.UserID,
		Amount:        *req.Amount,
		CardLast4:     req.CardLast4,
		CardHolder:    req.CardHolder,
		TransactionID: req.PaymentIntentID,
		Status:        req.Status,
		RecipientCard: s.recipientCard,
	}
	if record.CardLast4 == "" {
		record.CardLast4 = paymentmodel.DefaultCardLast4
	}
	if record.CardHolder == "" {
		record.CardHolder = paymentmodel.DefaultCardHolder
	}
	if record.Status == "" {
		record.Status = paymentmodel.StatusCompleted
	}

	now := time.Now()
	record.Timestamp = now
	record.CreatedAt = now

	paymentID, err := s.repository.Insert(ctx, record)
	if err != nil {
		s.logger.Error("saving payment record failed",
			"error", err,
			"transaction_id", req.PaymentIntentID,
			"user_id", req.UserID)
		return "", errors.NewExternalError(err.Error(), err)
	}

	s.logger.Info("payment record saved",
		"payment_id", paymentID,
		"transaction_id", req.PaymentIntentID,
		"user_id", req.UserID)

	return paymentID, nil
}

// History returns the user's confirmed payments, most recent first.
func (s *Service) History(ctx context.Context, userID string) ([]*paymentmodel.Payment, error) {
	if userID == "" {
		return nil, errors.NewValidationError("User ID is required")
	}

	payments, err := s.repository.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("fetching payment history failed",
			"error", err,
			"user_id", userID)
		return nil, errors.NewExternalError(err.Error(), err)
	}

	if payments == nil {
		payments = make([]*paymentmodel.Payment, 0)
	}
	return payments, nil
}
