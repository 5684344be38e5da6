package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/abtree/payment-backend/internal"
	"github.com/abtree/payment-backend/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// ErrorBody is the failure shape of every endpoint.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError maps an error onto {success:false, error:<message>}. AppErrors
// carry their own status; anything else is a generic server error.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := errors.IsAppError(err); ok {
		status = appErr.StatusCode
		message = appErr.Message
	}

	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, ErrorBody{Success: false, Error: message})
}
