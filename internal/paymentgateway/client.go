package paymentgateway

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Intent is the slice of a processor payment intent the service needs: the
// identifier it persists and the client secret the caller completes
// authorization with.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents at the payment processor. amountMinor is in
// the currency's minor units (cents for USD).
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
}

type Client struct {
	api    *client.API
	logger *slog.Logger
}

func NewClient(secretKey string, logger *slog.Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:    api,
		logger: logger,
	}
}

func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logger.Error("stripe payment intent creation failed",
			"error", err,
			"amount_minor", amountMinor,
			"currency", currency)
		return nil, ErrorMessage(err)
	}

	c.logger.Info("payment intent created",
		"payment_intent_id", pi.ID,
		"amount_minor", amountMinor,
		"currency", currency)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// ErrorMessage unwraps a stripe error into one carrying just the processor's
// human-readable message, which the API surfaces to callers.
func ErrorMessage(err error) error {
	if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
		return &gatewayError{msg: stripeErr.Msg, cause: err}
	}
	return err
}

type gatewayError struct {
	msg   string
	cause error
}

func (e *gatewayError) Error() string { return e.msg }
func (e *gatewayError) Unwrap() error { return e.cause }
