package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/memory"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/internal/transport/rest"
)

const baseURL = "http://localhost:5000"

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("no reachable servers") }

type panickingService struct{}

func (panickingService) ListExpenses(context.Context) ([]*expense.Expense, error) {
	panic("secret panic text")
}

func (panickingService) CreateExpense(context.Context, *expense.CreateExpenseDTO) (*expense.Expense, error) {
	panic("secret panic text")
}

func (panickingService) DeleteExpense(context.Context, string) error {
	panic("secret panic text")
}

func newRouter(svc expense.ServiceAPI, store rest.Pinger, origins []string) http.Handler {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	base := transport.NewBaseHandler(lg)
	rest.RegisterAllRoutes(router, rest.RouterConfig{
		AllowedOrigins: origins,
		StoreName:      "memory",
		Store:          store,
	}, expense.NewHandler(base, svc), category.NewHandler(base, false), lg)
	return router
}

var _ = Describe("Router", func() {
	var (
		store  *memory.Store
		router http.Handler
		doc    *openapi3.T
		oas    routers.Router
	)

	BeforeEach(func() {
		var err error
		doc, err = openapi3.NewLoader().LoadFromData(api.OpenAPISpec)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(context.Background())).To(Succeed())
		oas, err = legacy.NewRouter(doc)
		Expect(err).NotTo(HaveOccurred())

		store = memory.New()
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		router = newRouter(expense.NewService(store, nil, lg), store, nil)
	})

	// serve runs the request through the router and checks both sides
	// against the OpenAPI document.
	serve := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, baseURL+path, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		route, params, err := oas.FindRoute(req)
		Expect(err).NotTo(HaveOccurred())
		reqInput := &openapi3filter.RequestValidationInput{Request: req, PathParams: params, Route: route}
		if body != "" {
			Expect(openapi3filter.ValidateRequest(context.Background(), reqInput)).To(Succeed())
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(openapi3filter.ValidateResponse(context.Background(), &openapi3filter.ResponseValidationInput{
			RequestValidationInput: reqInput,
			Status:                 rec.Code,
			Header:                 rec.Header(),
			Body:                   io.NopCloser(bytes.NewReader(rec.Body.Bytes())),
		})).To(Succeed())
		return rec
	}

	Describe("expense routes", func() {
		It("should serve the create, list, delete round trip as documented", func() {
			rec := serve(http.MethodPost, "/api/expenses", `{"title":"Coffee","amount":3.5,"category":"Food"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created expense.Expense
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			rec = serve(http.MethodGet, "/api/expenses", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = serve(http.MethodDelete, "/api/expenses/"+created.ID, "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = serve(http.MethodDelete, "/api/expenses/"+created.ID, "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should document validation failures", func() {
			rec := serve(http.MethodPost, "/api/expenses", `{"title":"Coffee","amount":"abc"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should accept a trailing slash", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/expenses/", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("fallbacks", func() {
		It("should answer unknown routes with a structured 404 and CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
			Expect(rec.Body.String()).To(MatchJSON(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"Route not found"}}`))
		})

		It("should answer unsupported methods with a structured 405", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/expenses", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(rec.Body.String()).To(ContainSubstring(`"METHOD_NOT_ALLOWED"`))
			Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(Equal("GET, POST, DELETE, OPTIONS"))
		})

		It("should answer preflight requests with 204", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "POST")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Header().Get("Access-Control-Allow-Headers")).To(Equal("Content-Type, Authorization"))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
			Expect(rec.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
		})

		It("should recover panics into a 500 without the panic text", func() {
			router = newRouter(panickingService{}, store, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).NotTo(ContainSubstring("secret"))
			Expect(rec.Body.String()).To(ContainSubstring(`"INTERNAL_ERROR"`))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	Describe("health", func() {
		It("should report a reachable store", func() {
			rec := serve(http.MethodGet, "/api/health", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"healthy"`))
		})

		It("should answer 503 when the store is down", func() {
			lg := slog.New(slog.NewTextHandler(io.Discard, nil))
			router = newRouter(expense.NewService(store, nil, lg), downStore{}, nil)

			rec := serve(http.MethodGet, "/api/health", "")
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(rec.Body.String()).NotTo(ContainSubstring("no reachable servers"))
		})

		It("should list the categories", func() {
			rec := serve(http.MethodGet, "/api/categories", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"Transport"`))
		})

		It("should answer ping", func() {
			rec := serve(http.MethodGet, "/api/ping", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	It("should serve the OpenAPI document", func() {
		req := httptest.NewRequest(http.MethodGet, "/openapi.yml", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Bytes()).To(Equal(api.OpenAPISpec))
	})

	It("should serve the Swagger UI", func() {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("/openapi.yml"))
	})

	It("should echo an allowed origin from the configured list", func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		router = newRouter(expense.NewService(store, nil, lg), store, []string{"https://app.example.com"})

		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))

		req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
