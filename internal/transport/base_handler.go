package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
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

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, data, h.Logger)
}

// WriteAppError writes the structured error body for err.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err *internal.AppError) {
	status, body := err.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps a service error onto a response. Client errors are
// returned as-is; anything else becomes an opaque 500 with the cause only in
// the log.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.From(r.Context())

	appErr, ok := internal.IsAppError(err)
	if !ok {
		log.Error("unexpected service error", "error", err)
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.Error("service error", "code", appErr.Code, "error", appErr.Cause)
	} else {
		log.Warn("request rejected", "code", appErr.Code, "status", appErr.StatusCode, "message", appErr.GetDetailedMessage())
	}
	h.WriteAppError(w, appErr)
}

// WriteJSON is the handler-independent variant used by middleware.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, lg *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && lg != nil {
		lg.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError writes err without a handler, e.g. from the router fallbacks.
func WriteAppError(w http.ResponseWriter, err *internal.AppError) {
	status, body := err.ToHTTPResponse()
	WriteJSON(w, status, body, logger.L())
}
