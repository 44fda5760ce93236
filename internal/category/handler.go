package category

import (
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/core/category"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	strict bool
}

func NewHandler(baseHandler *transport.BaseHandler, strict bool) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		strict:      strict,
	}
}

// GetCategories handles GET /api/categories.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: list(),
		Strict:     h.strict,
	})
}

func list() []CategoryResponse {
	tracked := make(map[string]bool, len(category.Tracked))
	for _, name := range category.Tracked {
		tracked[name] = true
	}

	out := make([]CategoryResponse, 0, len(category.Known))
	for _, name := range category.Known {
		out = append(out, CategoryResponse{Name: name, Tracked: tracked[name]})
	}
	return out
}
