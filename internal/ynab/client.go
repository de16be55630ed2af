// Package ynab implements the HTTP client for the YNAB v1 API: transaction
// listing, single-transaction category updates, the category registry, and
// month budget data.
package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jvaldes/hucha/internal/common"
	"github.com/jvaldes/hucha/internal/config"
	"github.com/jvaldes/hucha/internal/model"
)

const defaultBaseURL = "https://api.ynab.com/v1"

// Client talks to the YNAB API for a single budget. Categories are fetched
// once per client instance and cached for the lifetime of the process.
type Client struct {
	httpClient *http.Client
	categories []model.Category
	baseURL    string
	token      string
	budgetID   string
}

// NewClient creates a client from the application configuration.
func NewClient(cfg config.Config) *Client {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  baseURL,
		token:    cfg.Token,
		budgetID: cfg.BudgetID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Categories returns the budget's visible categories. Hidden categories are
// filtered out. The result is cached; only a process restart invalidates it.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	if c.categories != nil {
		return c.categories, nil
	}

	var resp categoriesResponse
	if err := c.get(ctx, fmt.Sprintf("/budgets/%s/categories", c.budgetID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	var categories []model.Category
	for _, group := range resp.Data.CategoryGroups {
		for _, cat := range group.Categories {
			if cat.Hidden {
				continue
			}
			categories = append(categories, model.Category{
				ID:   cat.ID,
				Name: cat.Name,
			})
		}
	}

	c.categories = categories
	return categories, nil
}

// Transactions returns all transactions dated on or after sinceDate
// (YYYY-MM-DD), including deleted and transfer entries; callers filter.
func (c *Client) Transactions(ctx context.Context, sinceDate string) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("since_date", sinceDate)

	var resp transactionsResponse
	if err := c.get(ctx, fmt.Sprintf("/budgets/%s/transactions", c.budgetID), query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(resp.Data.Transactions))
	for _, tx := range resp.Data.Transactions {
		transactions = append(transactions, model.Transaction{
			ID:                tx.ID,
			Date:              tx.Date,
			PayeeName:         deref(tx.PayeeName),
			Memo:              deref(tx.Memo),
			AccountName:       tx.AccountName,
			CategoryID:        deref(tx.CategoryID),
			TransferAccountID: deref(tx.TransferAccountID),
			Milliunits:        tx.Amount,
			Deleted:           tx.Deleted,
		})
	}

	slog.Debug("fetched transactions", "since_date", sinceDate, "count", len(transactions))
	return transactions, nil
}

// Uncategorized returns the transactions since sinceDate that still need a
// category: no category id, not deleted, not an internal transfer. Source
// order is preserved; the session relies on it.
func (c *Client) Uncategorized(ctx context.Context, sinceDate string) ([]model.Transaction, error) {
	transactions, err := c.Transactions(ctx, sinceDate)
	if err != nil {
		return nil, err
	}

	var uncategorized []model.Transaction
	for _, tx := range transactions {
		if tx.Uncategorized() {
			uncategorized = append(uncategorized, tx)
		}
	}
	return uncategorized, nil
}

// AssignCategory sets the category of a single transaction. A non-success
// response is returned as an error wrapping common.ErrUpdateRejected so the
// session can treat it as a local, non-fatal failure.
func (c *Client) AssignCategory(ctx context.Context, transactionID, categoryID string) error {
	var payload updateTransactionRequest
	payload.Transaction.CategoryID = categoryID

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/budgets/%s/transactions/%s", c.baseURL, c.budgetID, transactionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: transaction %s: %d - %s",
			common.ErrUpdateRejected, transactionID, resp.StatusCode, string(detail))
	}

	return nil
}

// MonthBudget returns the per-category budget lines for the given month
// (YYYY-MM-01), keyed by category name. Amounts are converted from milliunits.
func (c *Client) MonthBudget(ctx context.Context, month string) (map[string]model.BudgetLine, error) {
	var resp monthResponse
	if err := c.get(ctx, fmt.Sprintf("/budgets/%s/months/%s", c.budgetID, month), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch month budget: %w", err)
	}

	lines := make(map[string]model.BudgetLine, len(resp.Data.Month.Categories))
	for _, cat := range resp.Data.Month.Categories {
		lines[cat.Name] = model.BudgetLine{
			CategoryID: cat.ID,
			Budgeted:   float64(cat.Budgeted) / 1000,
			Activity:   float64(cat.Activity) / 1000,
			Available:  float64(cat.Balance) / 1000,
		}
	}
	return lines, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("YNAB API error: %d - %s", resp.StatusCode, string(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
