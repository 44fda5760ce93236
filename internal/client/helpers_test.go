package client_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/memory"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/internal/transport/rest"
)

// newServer starts the real router over a memory store.
func newServer() (*httptest.Server, *memory.Store) {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	svc := expense.NewService(store, nil, lg)
	router := chi.NewRouter()
	base := transport.NewBaseHandler(lg)
	rest.RegisterAllRoutes(router, rest.RouterConfig{StoreName: "memory", Store: store},
		expense.NewHandler(base, svc), category.NewHandler(base, false), lg)
	return httptest.NewServer(router), store
}

// countingAPI counts calls and can be told to fail.
type countingAPI struct {
	next client.ExpenseAPI

	mu        sync.Mutex
	lists     int
	creates   int
	deletes   int
	failList  bool
	failWrite bool
}

var errBoom = errors.New("boom")

func (a *countingAPI) List(ctx context.Context) ([]client.Expense, error) {
	a.mu.Lock()
	a.lists++
	fail := a.failList
	a.mu.Unlock()
	if fail {
		return nil, errBoom
	}
	return a.next.List(ctx)
}

func (a *countingAPI) Create(ctx context.Context, in client.NewExpense) (*client.Expense, error) {
	a.mu.Lock()
	a.creates++
	fail := a.failWrite
	a.mu.Unlock()
	if fail {
		return nil, &client.APIError{StatusCode: 500, Message: "failed to create expense"}
	}
	return a.next.Create(ctx, in)
}

func (a *countingAPI) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	a.deletes++
	fail := a.failWrite
	a.mu.Unlock()
	if fail {
		return errBoom
	}
	return a.next.Delete(ctx, id)
}

func (a *countingAPI) calls() (lists, creates, deletes int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lists, a.creates, a.deletes
}
