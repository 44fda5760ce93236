package expense

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
)

// Repository interface defines the data access methods for expenses.
// Isolation between concurrent calls is left to the store.
type Repository interface {
	// List returns every expense, newest first.
	List(ctx context.Context) ([]*Expense, error)
	// Create persists the expense and sets its ID.
	Create(ctx context.Context, expense *Expense) error
	// Delete removes the expense or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Service handles expense business logic
type Service struct {
	repo             Repository
	publisher        events.Publisher
	logger           *slog.Logger
	strictCategories bool
	now              func() time.Time
}

type Option func(*Service)

// WithStrictCategories limits accepted categories to category.Known.
func WithStrictCategories(strict bool) Option {
	return func(s *Service) {
		s.strictCategories = strict
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new expense service. publisher may be nil.
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListExpenses returns the whole collection ordered by date descending.
// Equal dates keep the store's order, which puts the latest insert first.
// A store failure never yields a partial list.
func (s *Service) ListExpenses(ctx context.Context) ([]*Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, internal.NewStoreError("failed to retrieve expenses", err)
	}
	if expenses == nil {
		expenses = []*Expense{}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	return expenses, nil
}

// CreateExpense validates the payload and persists a new record with a store
// assigned identifier.
func (s *Service) CreateExpense(ctx context.Context, dto *CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(s.strictCategories); err != nil {
		s.logger.Warn("expense validation failed", "error", err)
		return nil, err
	}

	// Validate already rejected a missing or unparsable amount.
	amount, _ := dto.ParsedAmount()
	expense := NewExpense(*dto, *amount, s.now())

	if err := s.repo.Create(ctx, expense); err != nil {
		s.logger.Error("failed to create expense", "error", err, "title", expense.Title)
		return nil, internal.NewStoreError("failed to create expense", err)
	}

	s.publish(ctx, events.NewExpenseCreatedEvent(expense.ID, expense.Title, expense.Amount, expense.Category))

	s.logger.Info("expense created successfully",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category)

	return expense, nil
}

// DeleteExpense removes a record. An unknown or malformed id is reported as
// not found, never as a server error.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return internal.ErrExpenseNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("expense to delete not found", "expense_id", id)
			return internal.ErrExpenseNotFound
		}
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewStoreError("failed to delete expense", err)
	}

	s.publish(ctx, events.NewExpenseDeletedEvent(id))

	s.logger.Info("expense deleted successfully", "expense_id", id)
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
