package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const expensesPath = "/api/expenses"

// Expense is the wire form of a record as returned by the service.
type Expense struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// NewExpense is the create payload.
type NewExpense struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.StatusCode, e.Message)
}

// ExpenseAPI is what the controller needs from the service.
type ExpenseAPI interface {
	List(ctx context.Context) ([]Expense, error)
	Create(ctx context.Context, in NewExpense) (*Expense, error)
	Delete(ctx context.Context, id string) error
}

// APIClient talks to the expense service over HTTP.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying client, e.g. for an httptest server.
func (c *APIClient) WithHTTPClient(hc *http.Client) *APIClient {
	c.httpClient = hc
	return c
}

func (c *APIClient) List(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	if err := c.do(ctx, http.MethodGet, expensesPath, nil, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []Expense{}
	}
	return expenses, nil
}

func (c *APIClient) Create(ctx context.Context, in NewExpense) (*Expense, error) {
	var created Expense
	if err := c.do(ctx, http.MethodPost, expensesPath, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *APIClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, expensesPath+"/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage accepts both {"error":{"message":...}} and {"message":...}.
func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	if body.Error.Message != "" {
		return body.Error.Message
	}
	return body.Message
}
