package expense

import (
	"strings"
	"time"

	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/core/category"
)

// Expense is a single spending event. Once created it is never modified,
// only deleted.
type Expense struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// NewExpense builds a record from an already validated request. The date is
// truncated to milliseconds so the value returned to the caller matches what
// the stores can round-trip.
func NewExpense(dto CreateExpenseDTO, amount float64, now time.Time) *Expense {
	date := now
	if dto.Date != nil && !dto.Date.IsZero() {
		date = *dto.Date
	}

	return &Expense{
		Title:    strings.TrimSpace(dto.Title),
		Amount:   amount,
		Category: category.Normalize(dto.Category),
		Date:     date.UTC().Truncate(time.Millisecond),
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date.UTC(),
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
