package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseCreated = "expense.created"
	EventTypeExpenseDeleted = "expense.deleted"
)

type ExpenseCreatedEvent struct {
	BaseEvent
	ExpenseID string  `json:"expense_id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}

func NewExpenseCreatedEvent(expenseID, title string, amount float64, category string) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeExpenseCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id": expenseID,
				"title":      title,
				"amount":     amount,
				"category":   category,
			},
		},
		ExpenseID: expenseID,
		Title:     title,
		Amount:    amount,
		Category:  category,
	}
}

type ExpenseDeletedEvent struct {
	BaseEvent
	ExpenseID string `json:"expense_id"`
}

func NewExpenseDeletedEvent(expenseID string) *ExpenseDeletedEvent {
	return &ExpenseDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeExpenseDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id": expenseID,
			},
		},
		ExpenseID: expenseID,
	}
}
