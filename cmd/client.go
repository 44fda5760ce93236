package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	clientAPIURL string
	clientFilter string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Terminal client for the expense API",
	Long:  `List, add and delete expenses against a running server, or start an interactive shell.`,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show expenses and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController(clientFilter)
		if err != nil {
			return err
		}
		defer ctrl.Close()
		return ctrl.Load(cmdContext(cmd))
	},
}

var clientAddCmd = &cobra.Command{
	Use:   "add <amount> <category> <title...>",
	Short: "Add an expense",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController("")
		if err != nil {
			return err
		}
		defer ctrl.Close()
		_, err = ctrl.Submit(cmdContext(cmd), strings.Join(args[2:], " "), args[0], args[1])
		return err
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController("")
		if err != nil {
			return err
		}
		defer ctrl.Close()
		return ctrl.Delete(cmdContext(cmd), args[0])
	},
}

var clientTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show the grand and per category totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController("")
		if err != nil {
			return err
		}
		defer ctrl.Close()
		return ctrl.RefreshTotals(cmdContext(cmd))
	},
}

var clientShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController("")
		if err != nil {
			return err
		}
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
		defer stop()
		return client.NewShell(ctrl, os.Stdin, os.Stdout).Run(ctx)
	},
}

// newController builds the one Controller a client process uses. Logs go
// to stderr so they never interleave with the rendered table on stdout.
func newController(filter string) (*client.Controller, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.InitWithWriter(os.Stderr, cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	apiURL := cfg.Client.APIURL
	if clientAPIURL != "" {
		apiURL = clientAPIURL
	}

	api := client.NewAPIClient(apiURL, cfg.Client.RequestTimeout)
	return client.NewController(api, os.Stdout, client.Options{
		Currency:   cfg.Client.Currency,
		DismissTTL: cfg.Client.NotificationTTL,
		Filter:     filter,
		Logger:     logger.L().With("component", "client"),
	}), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	clientCmd.PersistentFlags().StringVar(&clientAPIURL, "api-url", "", "expense API base URL (overrides client.api_url)")
	clientListCmd.Flags().StringVar(&clientFilter, "filter", "", "show only one category")

	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientDeleteCmd)
	clientCmd.AddCommand(clientTotalsCmd)
	clientCmd.AddCommand(clientShellCmd)
}
