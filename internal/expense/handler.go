package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

// MaxRequestBodyBytes caps a create payload. Real ones are well under 1KB.
const MaxRequestBodyBytes = 64 << 10

type ServiceAPI interface {
	ListExpenses(ctx context.Context) ([]*Expense, error)
	CreateExpense(ctx context.Context, dto *CreateExpenseDTO) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListExpenses handles GET /api/expenses.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.ListExpenses(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

// CreateExpense handles POST /api/expenses.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.From(r.Context()).Warn("CreateExpense: request body too large", "limit", tooLarge.Limit)
			h.WriteAppError(w, internal.NewBodyTooLargeError(tooLarge.Limit))
			return
		}
		logger.From(r.Context()).Warn("CreateExpense: invalid request body", "error", err)
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeInvalidBody))
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, expense)
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteExpense(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DeleteExpenseResponse{Message: "Expense deleted"})
}
