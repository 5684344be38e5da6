package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	errors "github.com/abtree/payment-backend/internal"
	"github.com/abtree/payment-backend/internal/payment"
	"github.com/abtree/payment-backend/internal/transport"
	"github.com/abtree/payment-backend/internal/transport/middleware"
)

const (
	serviceName    = "AB Tree Payment Backend"
	serviceVersion = "1.0.0"
)

type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func RegisterAllRoutes(router *chi.Mux, paymentHandler *payment.Handler, healthHandler *HealthHandler, allowedOrigins []string, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/health", healthHandler.healthCheckHandler)

	// Root endpoint describes the service and its API surface.
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		base.WriteJSON(w, http.StatusOK, ServiceInfo{
			Name:    serviceName,
			Version: serviceVersion,
			Endpoints: map[string]string{
				"health":              "GET /health",
				"createPaymentIntent": "POST /api/create-payment-intent",
				"confirmPayment":      "POST /api/confirm-payment",
				"getPayments":         "GET /api/payments/:userId",
			},
		})
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/create-payment-intent", paymentHandler.CreateIntent)
		r.Post("/confirm-payment", paymentHandler.ConfirmPayment)
		r.Get("/payments/{userId}", paymentHandler.History)
	})

	// Unmatched routes yield the structured not-found shape.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		base.WriteError(w, errors.ErrEndpointNotFound)
	})
}
