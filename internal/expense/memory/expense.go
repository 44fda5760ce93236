// Package memory is a process-local expense store used for development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/google/uuid"
)

type Store struct {
	mu    sync.Mutex
	items []expense.Expense
}

func New() *Store {
	return &Store{}
}

// Create stores a copy of exp and assigns it a fresh ID.
func (s *Store) Create(_ context.Context, exp *expense.Expense) error {
	exp.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *exp)
	return nil
}

// List returns copies, newest first. Records sharing a date come back
// latest insert first, the same tie order the mongo and SQL stores give.
func (s *Store) List(_ context.Context) ([]*expense.Expense, error) {
	s.mu.Lock()
	n := len(s.items)
	out := make([]*expense.Expense, n)
	for i := range s.items {
		item := s.items[i]
		out[n-1-i] = &item
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return expense.ErrNotFound
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Ping always succeeds; it lets the store back the health endpoint.
func (s *Store) Ping(context.Context) error {
	return nil
}
