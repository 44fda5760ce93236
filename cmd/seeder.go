package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the store with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		store, closeStore, err := openStore(ctx, cfg.Database, logger.L())
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer closeStore()

		service := expense.NewService(store, nil, logger.L())
		if err := seedExpenses(ctx, service, clearData, time.Now()); err != nil {
			log.Fatalf("failed to seed expenses: %v", err)
		}
	},
}

var sampleExpenses = []struct {
	Title    string
	Amount   string
	Category string
	DaysAgo  int
}{
	{"Coffee", "3.5", "Food", 0},
	{"Shoes", "50", "Shopping", 1},
	{"Metro card", "20", "Transport", 2},
	{"Groceries", "42.75", "Food", 3},
	{"Movie night", "12", "Other", 5},
}

// seedExpenses inserts the sample expenses through the service so they get
// the same validation as API input. With clear set, existing records go first.
func seedExpenses(ctx context.Context, service *expense.Service, clear bool, now time.Time) error {
	if clear {
		existing, err := service.ListExpenses(ctx)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if err := service.DeleteExpense(ctx, e.ID); err != nil {
				return fmt.Errorf("failed to clear expense %s: %w", e.ID, err)
			}
		}
		fmt.Printf("Cleared %d expenses\n", len(existing))
	}

	for _, s := range sampleExpenses {
		date := now.AddDate(0, 0, -s.DaysAgo)
		dto := &expense.CreateExpenseDTO{
			Title:    s.Title,
			Amount:   json.RawMessage(s.Amount),
			Category: s.Category,
			Date:     &date,
		}
		created, err := service.CreateExpense(ctx, dto)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", s.Title, err)
		}
		fmt.Printf("Seeded expense: %s (%s)\n", created.Title, created.ID)
	}

	fmt.Println("Expenses seeded successfully")
	return nil
}
