package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect the expense event bus: publish sample events through the audit handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [expense.created|expense.deleted]",
	Short:     "Publish a sample expense event",
	Long:      `Publish a sample event to the event bus and run the audit handlers on it`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{events.EventTypeExpenseCreated, events.EventTypeExpenseDeleted},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(cmd.Context(), args[0])
	},
}

var eventTitle string

// subscribeAudit logs every expense mutation.
func subscribeAudit(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("expense audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(events.EventTypeExpenseCreated, audit)
	bus.Subscribe(events.EventTypeExpenseDeleted, audit)
}

func publishSampleEvent(ctx context.Context, eventType string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := logger.L()
	bus := events.NewEventBus(lg)
	subscribeAudit(bus, lg.With("component", "audit"))

	var event events.Event
	switch eventType {
	case events.EventTypeExpenseCreated:
		event = events.NewExpenseCreatedEvent(uuid.NewString(), eventTitle, 1, "Other")
	case events.EventTypeExpenseDeleted:
		event = events.NewExpenseDeletedEvent(uuid.NewString())
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	if err := bus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	lg.Info("sample event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventTitle, "title", "sample expense", "Title used for expense.created")

	eventCmd.AddCommand(publishEventCmd)
}
