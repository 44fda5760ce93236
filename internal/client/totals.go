package client

import (
	"github.com/frahmantamala/expense-tracker/internal/core/category"
	"github.com/shopspring/decimal"
)

// Totals holds the grand total and one total per tracked category.
// Untracked categories only count towards Grand.
type Totals struct {
	Grand      decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

func ComputeTotals(expenses []Expense) Totals {
	t := Totals{
		Grand:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal, len(category.Tracked)),
	}
	for _, name := range category.Tracked {
		t.ByCategory[name] = decimal.Zero
	}

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		t.Grand = t.Grand.Add(amount)
		if sum, ok := t.ByCategory[e.Category]; ok {
			t.ByCategory[e.Category] = sum.Add(amount)
		}
	}
	return t
}

// Category returns the total for name, zero for untracked categories.
func (t Totals) Category(name string) decimal.Decimal {
	if sum, ok := t.ByCategory[name]; ok {
		return sum
	}
	return decimal.Zero
}
