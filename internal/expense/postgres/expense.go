package postgres

import (
	"context"
	"fmt"

	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
// It backs both the postgres and the sqlite drivers.
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// List returns every expense, newest first
func (r *ExpenseRepository) List(ctx context.Context) ([]*expense.Expense, error) {
	var rows []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expense.FromDataModelSlice(rows), nil
}

// Create saves a new expense with a generated UUID
func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate expense id: %w", err)
	}

	// v7 ids sort by creation time, which List relies on for equal dates
	row := expense.ToDataModel(exp)
	row.ID = id.String()

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	exp.ID = row.ID
	return nil
}

// Delete removes the expense with the given id
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&expenseDatamodel.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return expense.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
