package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	MongoDB   string    `json:"mongodb"`
	Stripe    string    `json:"stripe"`
}

// HealthHandler reports liveness plus the connectivity state of the two
// collaborators. The state is what was observed at startup, not a live
// probe, so the endpoint never blocks and never fails.
type HealthHandler struct {
	mongoConnected bool
	stripeReady    bool
}

func NewHealthHandler(mongoConnected, stripeReady bool) *HealthHandler {
	return &HealthHandler{
		mongoConnected: mongoConnected,
		stripeReady:    stripeReady,
	}
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	mongoState := "disconnected"
	if h.mongoConnected {
		mongoState = "connected"
	}

	stripeState := "not initialized"
	if h.stripeReady {
		stripeState = "initialized"
	}

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		MongoDB:   mongoState,
		Stripe:    stripeState,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
