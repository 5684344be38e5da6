package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internalerrors "github.com/abtree/payment-backend/internal"
	paymentmodel "github.com/abtree/payment-backend/internal/core/datamodel/payment"
	paymentpkg "github.com/abtree/payment-backend/internal/payment"
	"github.com/abtree/payment-backend/internal/paymentgateway"
)

// mockService implements payment.ServiceAPI
type mockService struct {
	intent       *paymentgateway.Intent
	paymentID    string
	payments     []*paymentmodel.Payment
	createError  error
	confirmError error
	historyError error
}

func (m *mockService) CreateIntent(ctx context.Context, req *paymentpkg.CreateIntentRequest) (*paymentgateway.Intent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if m.createError != nil {
		return nil, m.createError
	}
	return m.intent, nil
}

func (m *mockService) ConfirmPayment(ctx context.Context, req *paymentpkg.ConfirmPaymentRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if m.confirmError != nil {
		return "", m.confirmError
	}
	return m.paymentID, nil
}

func (m *mockService) History(ctx context.Context, userID string) ([]*paymentmodel.Payment, error) {
	if m.historyError != nil {
		return nil, m.historyError
	}
	return m.payments, nil
}

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("PaymentHandler", func() {
	var (
		handler  *paymentpkg.Handler
		service  *mockService
		recorder *httptest.ResponseRecorder
		logger   *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = &mockService{
			intent:    &paymentgateway.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"},
			paymentID: "65f1c1d2e3a4b5c6d7e8f901",
		}
		handler = paymentpkg.NewHandler(service, logger)
		recorder = httptest.NewRecorder()
	})

	postJSON := func(target string, body map[string]interface{}) *http.Request {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	decodeBody := func() map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	Describe("CreateIntent", func() {
		It("returns the client secret and intent id", func() {
			req := postJSON("/api/create-payment-intent", map[string]interface{}{
				"amount": 19.99,
				"userId": "u1",
			})

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decodeBody()
			Expect(body["success"]).To(BeTrue())
			Expect(body["clientSecret"]).To(Equal("pi_123_secret"))
			Expect(body["paymentIntentId"]).To(Equal("pi_123"))
			Expect(body["amount"]).To(Equal(19.99))
		})

		It("returns 400 for a missing amount", func() {
			req := postJSON("/api/create-payment-intent", map[string]interface{}{
				"userId": "u1",
			})

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("Invalid amount. Amount must be greater than 0."))
		})

		It("returns 400 for a non-positive amount", func() {
			req := postJSON("/api/create-payment-intent", map[string]interface{}{
				"amount": -3.5,
				"userId": "u1",
			})

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody()["success"]).To(BeFalse())
		})

		It("returns 400 for a missing userId", func() {
			req := postJSON("/api/create-payment-intent", map[string]interface{}{
				"amount": 19.99,
			})

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("User ID is required."))
		})

		It("returns 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/create-payment-intent", bytes.NewBufferString("{not json"))

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody()["success"]).To(BeFalse())
		})

		It("returns 500 with the processor's message on gateway failure", func() {
			service.createError = internalerrors.NewExternalError("Your card was declined.", nil)
			req := postJSON("/api/create-payment-intent", map[string]interface{}{
				"amount": 19.99,
				"userId": "u1",
			})

			handler.CreateIntent(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("Your card was declined."))
		})
	})

	Describe("ConfirmPayment", func() {
		It("returns the generated payment id and echoes the transaction id", func() {
			req := postJSON("/api/confirm-payment", map[string]interface{}{
				"paymentIntentId": "pi_1",
				"userId":          "u1",
				"amount":          19.99,
			})

			handler.ConfirmPayment(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decodeBody()
			Expect(body["success"]).To(BeTrue())
			Expect(body["paymentId"]).To(Equal("65f1c1d2e3a4b5c6d7e8f901"))
			Expect(body["transactionId"]).To(Equal("pi_1"))
			Expect(body["message"]).To(Equal("Payment confirmed and recorded"))
		})

		It("returns 400 when a required field is missing", func() {
			req := postJSON("/api/confirm-payment", map[string]interface{}{
				"userId": "u1",
				"amount": 19.99,
			})

			handler.ConfirmPayment(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("Missing required fields"))
		})

		It("returns 500 on a store failure", func() {
			service.confirmError = internalerrors.NewExternalError("database not connected", nil)
			req := postJSON("/api/confirm-payment", map[string]interface{}{
				"paymentIntentId": "pi_1",
				"userId":          "u1",
				"amount":          19.99,
			})

			handler.ConfirmPayment(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			body := decodeBody()
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("database not connected"))
		})
	})

	Describe("History", func() {
		It("returns the payments with a count", func() {
			service.payments = []*paymentmodel.Payment{
				{UserID: "u1", TransactionID: "pi_3"},
				{UserID: "u1", TransactionID: "pi_1"},
			}
			req := httptest.NewRequest(http.MethodGet, "/api/payments/u1", nil)
			req = withURLParam(req, "userId", "u1")

			handler.History(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decodeBody()
			Expect(body["success"]).To(BeTrue())
			Expect(body["count"]).To(BeEquivalentTo(2))
			Expect(body["payments"]).To(HaveLen(2))
		})

		It("returns an empty list and zero count for an unknown user", func() {
			service.payments = []*paymentmodel.Payment{}
			req := httptest.NewRequest(http.MethodGet, "/api/payments/nobody", nil)
			req = withURLParam(req, "userId", "nobody")

			handler.History(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decodeBody()
			Expect(body["success"]).To(BeTrue())
			Expect(body["count"]).To(BeEquivalentTo(0))
			Expect(body["payments"]).To(HaveLen(0))
		})

		It("returns 500 on a store failure", func() {
			service.historyError = internalerrors.NewExternalError("connection reset", nil)
			req := httptest.NewRequest(http.MethodGet, "/api/payments/u1", nil)
			req = withURLParam(req, "userId", "u1")

			handler.History(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(decodeBody()["success"]).To(BeFalse())
		})
	})
})
