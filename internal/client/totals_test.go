package client_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/expense-tracker/internal/client"
)

var _ = Describe("Totals", func() {
	It("should sum the Coffee and Shoes scenario exactly", func() {
		totals := client.ComputeTotals([]client.Expense{
			{Title: "Coffee", Amount: 3.5, Category: "Food"},
			{Title: "Shoes", Amount: 50, Category: "Shopping"},
		})

		Expect(totals.Grand.StringFixed(2)).To(Equal("53.50"))
		Expect(totals.Category("Food").StringFixed(2)).To(Equal("3.50"))
		Expect(totals.Category("Shopping").StringFixed(2)).To(Equal("50.00"))
		Expect(totals.Category("Transport").StringFixed(2)).To(Equal("0.00"))
	})

	It("should count untracked categories in the grand total only", func() {
		totals := client.ComputeTotals([]client.Expense{
			{Amount: 0.1, Category: "Food"},
			{Amount: 0.2, Category: "Other"},
			{Amount: 900, Category: "Housing"},
		})

		Expect(totals.Grand.Equal(decimal.RequireFromString("900.3"))).To(BeTrue())
		Expect(totals.ByCategory).To(HaveLen(3))
		Expect(totals.Category("Other").IsZero()).To(BeTrue())
	})

	It("should render every tracked category with two decimals", func() {
		var out bytes.Buffer
		totals := client.ComputeTotals([]client.Expense{{Amount: 3.5, Category: "Food"}})

		Expect(client.RenderTotals(&out, totals, "₹")).To(Succeed())
		Expect(out.String()).To(MatchRegexp(`Total\s+₹3\.50`))
		Expect(out.String()).To(MatchRegexp(`Food\s+₹3\.50`))
		Expect(out.String()).To(MatchRegexp(`Shopping\s+₹0\.00`))
		Expect(out.String()).To(MatchRegexp(`Transport\s+₹0\.00`))
	})
})

var _ = Describe("Rendering", func() {
	expenses := []client.Expense{
		{ID: "1", Title: "Coffee", Amount: 3.5, Category: "Food", Date: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Bus", Amount: 2, Category: "Transport", Date: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)},
		{ID: "3", Title: "Lunch", Amount: 12, Category: "Food", Date: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	It("should reproduce the list for the all filter", func() {
		Expect(client.FilterExpenses(expenses, "all")).To(Equal(expenses))
	})

	It("should keep only exact category matches in order", func() {
		filtered := client.FilterExpenses(expenses, "Food")
		Expect(filtered).To(HaveLen(2))
		Expect(filtered[0].Title).To(Equal("Coffee"))
		Expect(filtered[1].Title).To(Equal("Lunch"))

		Expect(client.FilterExpenses(expenses, "food")).To(BeEmpty())
	})

	It("should show the empty state", func() {
		var out bytes.Buffer
		Expect(client.RenderList(&out, nil, "Shopping", "₹")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Filter: Shopping"))
		Expect(out.String()).To(ContainSubstring(client.EmptyStateMessage))
	})

	It("should render amounts with the currency symbol", func() {
		var out bytes.Buffer
		Expect(client.RenderList(&out, expenses, "all", "₹")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("₹3.50"))
		Expect(out.String()).To(ContainSubstring("₹12.00"))
		Expect(out.String()).To(ContainSubstring("Coffee"))
	})
})
