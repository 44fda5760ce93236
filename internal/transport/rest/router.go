package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/frahmantamala/expense-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RouterConfig carries what the routes need besides the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	// StoreName labels the store in the health response.
	StoreName string
	Store     Pinger
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig, expenseHandler *expense.Handler, categoryHandler *category.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(cfg.StoreName, cfg.Store)

	// CORS runs first so every response, errors included, carries its headers.
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(chiMiddleware.StripSlashes)

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(methodNotAllowedHandler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPISpec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.NotFound(notFoundHandler)
		r.MethodNotAllowed(methodNotAllowedHandler)

		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if categoryHandler != nil {
			r.Get("/categories", categoryHandler.GetCategories)
		}

		if expenseHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.NotFound(notFoundHandler)
				er.MethodNotAllowed(methodNotAllowedHandler)

				er.Get("/", expenseHandler.ListExpenses)         // GET /api/expenses
				er.Post("/", expenseHandler.CreateExpense)       // POST /api/expenses
				er.Delete("/{id}", expenseHandler.DeleteExpense) // DELETE /api/expenses/:id
			})
		}
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	transport.WriteAppError(w, internal.ErrRouteNotFound)
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	transport.WriteAppError(w, internal.NewMethodNotAllowedError("method "+r.Method+" not allowed on "+r.URL.Path))
}
