package client

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/category"
	"github.com/shopspring/decimal"
)

const (
	EmptyStateMessage = "No expenses added yet"
	headerDateLayout  = "Monday, January 2, 2006"
	rowDateLayout     = "1/2/2006"
)

// FilterExpenses keeps the records whose category equals filter exactly,
// in their original order. category.All (or an empty filter) keeps everything.
func FilterExpenses(expenses []Expense, filter string) []Expense {
	if filter == "" || filter == category.All {
		out := make([]Expense, len(expenses))
		copy(out, expenses)
		return out
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == filter {
			out = append(out, e)
		}
	}
	return out
}

// FormatAmount renders v with two decimals behind the currency symbol.
func FormatAmount(currency string, v decimal.Decimal) string {
	return currency + v.StringFixed(2)
}

// RenderHeader writes the current local date.
func RenderHeader(w io.Writer, now time.Time) {
	fmt.Fprintln(w, now.Local().Format(headerDateLayout))
}

// RenderList writes the already filtered records as a table, or the empty
// state when there are none.
func RenderList(w io.Writer, expenses []Expense, filter, currency string) error {
	if filter == "" {
		filter = category.All
	}
	fmt.Fprintf(w, "Filter: %s\n", filter)

	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, EmptyStateMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDATE\tAMOUNT")
	for _, e := range expenses {
		date := e.Date
		if date.IsZero() {
			date = time.Now()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Title,
			e.Category,
			date.Local().Format(rowDateLayout),
			FormatAmount(currency, decimal.NewFromFloat(e.Amount)))
	}
	return tw.Flush()
}

// RenderTotals writes the grand total and the tracked category totals.
func RenderTotals(w io.Writer, t Totals, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%s\n", FormatAmount(currency, t.Grand))
	for _, name := range category.Tracked {
		fmt.Fprintf(tw, "%s\t%s\n", name, FormatAmount(currency, t.Category(name)))
	}
	return tw.Flush()
}
