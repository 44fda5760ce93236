package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is implemented by every expense store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

type HealthHandler struct {
	name  string
	store Pinger
}

// NewHealthHandler checks store under the component name, e.g. "mongo".
func NewHealthHandler(name string, store Pinger) *HealthHandler {
	return &HealthHandler{name: name, store: store}
}

// pingHandler only says the process is up.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"}, logger.From(r.Context()))
}

// healthCheckHandler reports 503 when the store cannot be reached.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy}

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			logger.From(r.Context()).Warn("health check failed", "component", h.name, "error", err)
			entry.Status = HealthUnhealthy
			entry.Message = "store unreachable"
		}
	}
	entry.CheckedAt = time.Now().UTC()
	entry.DurationMs = time.Since(start).Milliseconds()

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  entry.CheckedAt,
		Components: map[string]CheckEntry{h.name: entry},
	}

	statusCode := http.StatusOK
	if entry.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	transport.WriteJSON(w, statusCode, resp, logger.From(r.Context()))
}
