package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/category"
)

const (
	MsgFillAllFields  = "Please fill all fields"
	MsgAdded          = "Expense added successfully"
	MsgAddFailed      = "Failed to add expense"
	MsgDeleted        = "Expense deleted"
	MsgDeleteFailed   = "Failed to delete expense"
	MsgLoadFailed     = "Failed to load expenses"
	DefaultCurrency   = "₹"
	DefaultDismissTTL = 3 * time.Second
)

// ErrInvalidInput is returned by Submit when the input is rejected locally.
var ErrInvalidInput = errors.New(MsgFillAllFields)

type State int

const (
	StateIdle State = iota
	StateInProgress
)

func (s State) String() string {
	if s == StateInProgress {
		return "in-progress"
	}
	return "idle"
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	Kind    NotificationKind
	Message string
}

// Options tunes a Controller. Filter is the category shown by the first
// Load; empty means All.
type Options struct {
	Currency   string
	DismissTTL time.Duration
	Filter     string
	Logger     *slog.Logger
	Now        func() time.Time
}

// Controller renders the server state and turns user actions into
// requests. It keeps no state of its own beyond the last fetched list, the
// active filter and the current notification.
type Controller struct {
	api      ExpenseAPI
	out      io.Writer
	currency string
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	filter   string
	expenses []Expense
	totals   Totals

	mu           sync.Mutex
	state        State
	notification *Notification
	dismiss      *time.Timer
}

func NewController(api ExpenseAPI, out io.Writer, opts Options) *Controller {
	c := &Controller{
		api:      api,
		out:      out,
		currency: opts.Currency,
		ttl:      opts.DismissTTL,
		logger:   opts.Logger,
		now:      opts.Now,
		filter:   normalizeFilter(opts.Filter),
		totals:   ComputeTotals(nil),
	}
	if c.currency == "" {
		c.currency = DefaultCurrency
	}
	if c.ttl <= 0 {
		c.ttl = DefaultDismissTTL
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Load fetches the collection, renders it and then refreshes the totals.
func (c *Controller) Load(ctx context.Context) error {
	RenderHeader(c.out, c.now())
	if err := c.fetch(ctx); err != nil {
		return err
	}
	return c.RefreshTotals(ctx)
}

// Render writes the cached list through the active filter.
func (c *Controller) Render() error {
	return RenderList(c.out, c.Visible(), c.filter, c.currency)
}

// SetFilter changes the filter and re-fetches, like a manual filter change.
func (c *Controller) SetFilter(ctx context.Context, filter string) error {
	c.filter = normalizeFilter(filter)
	if err := c.fetch(ctx); err != nil {
		return err
	}
	return c.RefreshTotals(ctx)
}

// Submit validates locally and creates the expense. amountText must parse
// as a finite number; zero is accepted.
func (c *Controller) Submit(ctx context.Context, title, amountText, cat string) (*Expense, error) {
	title = strings.TrimSpace(title)
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
	if title == "" || err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		c.notify(NotificationError, MsgFillAllFields)
		return nil, ErrInvalidInput
	}

	c.begin()
	defer c.end()

	created, err := c.api.Create(ctx, NewExpense{Title: title, Amount: amount, Category: strings.TrimSpace(cat)})
	if err != nil {
		c.logger.Warn("create expense failed", "error", err)
		c.notify(NotificationError, MsgAddFailed)
		return nil, err
	}

	c.expenses = append(c.expenses, *created)
	if err := c.Render(); err != nil {
		return created, err
	}
	if err := c.RefreshTotals(ctx); err != nil {
		c.logger.Warn("refresh totals failed", "error", err)
	}
	c.notify(NotificationSuccess, MsgAdded)
	return created, nil
}

// Delete removes the expense and re-reads the full list. Nothing is removed
// locally before the server confirms.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.begin()
	defer c.end()

	if err := c.api.Delete(ctx, strings.TrimSpace(id)); err != nil {
		c.logger.Warn("delete expense failed", "expense_id", id, "error", err)
		c.notify(NotificationError, MsgDeleteFailed)
		return err
	}

	if err := c.fetch(ctx); err != nil {
		return err
	}
	if err := c.RefreshTotals(ctx); err != nil {
		c.logger.Warn("refresh totals failed", "error", err)
	}
	c.notify(NotificationSuccess, MsgDeleted)
	return nil
}

// RefreshTotals fetches the unfiltered collection on its own so the totals
// never depend on the active filter. On failure the previous totals stay.
func (c *Controller) RefreshTotals(ctx context.Context) error {
	expenses, err := c.api.List(ctx)
	if err != nil {
		c.logger.Warn("fetch totals failed", "error", err)
		return err
	}
	c.totals = ComputeTotals(expenses)
	return RenderTotals(c.out, c.totals, c.currency)
}

func (c *Controller) fetch(ctx context.Context) error {
	expenses, err := c.api.List(ctx)
	if err != nil {
		c.logger.Warn("fetch expenses failed", "error", err)
		c.notify(NotificationError, MsgLoadFailed)
		return err
	}
	c.expenses = expenses
	return c.Render()
}

func (c *Controller) Filter() string { return c.filter }

func (c *Controller) Totals() Totals { return c.totals }

// Visible returns the cached records that pass the active filter.
func (c *Controller) Visible() []Expense {
	return FilterExpenses(c.expenses, c.filter)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Notification returns the current notification, if it has not been
// dismissed yet.
func (c *Controller) Notification() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notification == nil {
		return Notification{}, false
	}
	return *c.notification, true
}

// Close stops the pending dismiss timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dismiss != nil {
		c.dismiss.Stop()
		c.dismiss = nil
	}
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.state = StateInProgress
	c.mu.Unlock()
}

func (c *Controller) end() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

// notify replaces the current notification and restarts the dismiss timer.
func (c *Controller) notify(kind NotificationKind, message string) {
	n := &Notification{Kind: kind, Message: message}

	c.mu.Lock()
	if c.dismiss != nil {
		c.dismiss.Stop()
	}
	c.notification = n
	c.dismiss = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.notification == n {
			c.notification = nil
		}
	})
	c.mu.Unlock()

	fmt.Fprintf(c.out, "[%s] %s\n", kind, message)
}

func normalizeFilter(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, category.All) {
		return category.All
	}
	return category.Normalize(filter)
}
