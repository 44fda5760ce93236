package expense

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/category"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
)

// CreateExpenseDTO represents the request payload for creating an expense.
// Amount is kept raw so that a non numeric value is reported as an amount
// error instead of a generic decoding failure.
type CreateExpenseDTO struct {
	Title    string          `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Category string          `json:"category"`
	Date     *time.Time      `json:"date,omitempty"`
}

// ParsedAmount returns the amount as a number. A missing amount yields
// (nil, nil); anything that is neither a JSON number nor a numeric string
// yields a validation error.
func (dto CreateExpenseDTO) ParsedAmount() (*float64, *internal.AppError) {
	raw := bytes.TrimSpace(dto.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	invalid := internal.NewValidationFieldError("amount", "amount must be a valid number", internal.ErrCodeInvalidAmount)

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, invalid
		}
		return &f, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, invalid
	}
	return &f, nil
}

// Validate checks the payload before anything touches the store. Zero is a
// valid amount; only missing, non numeric and non finite values are rejected.
func (dto CreateExpenseDTO) Validate(strictCategories bool) error {
	amount, parseErr := dto.ParsedAmount()

	v := validation.NewValidator()
	v.Field("title", dto.Title).
		Required(internal.ErrCodeInvalidTitle).
		MaxLength(MaxTitleLength, internal.ErrCodeInvalidTitle)

	amountField := v.Field("amount", amount)
	if parseErr != nil {
		amountField.Custom(func(interface{}) *internal.AppError { return parseErr })
	} else {
		amountField.Required(internal.ErrCodeInvalidAmount).Finite(internal.ErrCodeInvalidAmount)
	}

	if strictCategories {
		v.Field("category", category.Normalize(dto.Category)).
			OneOf(category.Known, internal.ErrCodeInvalidCategory)
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// DeleteExpenseResponse is the confirmation body of a successful delete.
type DeleteExpenseResponse struct {
	Message string `json:"message"`
}

const MaxTitleLength = 200

// ErrNotFound is returned by repositories when no record matches the id.
var ErrNotFound = errors.New("expense not found")
