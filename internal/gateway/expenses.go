package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/form"
)

// ExpenseList is the response to an expense listing request
type ExpenseList struct {
	Expenses      []entity.Expense       `json:"expenses"`
	TotalExpenses int                    `json:"totalExpenses"`
	Pagination    *entity.PaginationMeta `json:"pagination"`
}

// ExpensePayload is the request body for creating or editing an expense
type ExpensePayload struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	ExpenseDate string  `json:"expenseDate,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// PayloadFromDraft converts a validated draft into the wire payload.
// Validate the draft first; a non-numeric amount here is a programming
// error surfaced as a plain error.
func PayloadFromDraft(d form.Draft) (ExpensePayload, error) {
	amount, err := strconv.ParseFloat(d.Amount, 64)
	if err != nil {
		return ExpensePayload{}, fmt.Errorf("draft amount %q is not a number: %w", d.Amount, err)
	}
	return ExpensePayload{
		Amount:      amount,
		Description: d.Description,
		Category:    d.Category,
		ExpenseDate: d.ExpenseDate,
		Notes:       d.Notes,
	}, nil
}

type expenseEnvelope struct {
	Expense entity.Expense `json:"expense"`
}

type deleteEnvelope struct {
	ExpenseID string `json:"expenseId"`
}

// ListExpenses fetches the calling employee's expenses filtered and
// paginated by the canonical query. An empty query lists the default first
// page.
func (c *Client) ListExpenses(ctx context.Context, query url.Values) (*ExpenseList, error) {
	var list ExpenseList
	if err := c.do(ctx, http.MethodGet, "/expenses", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListAllExpenses fetches every employee's expenses. Manager only.
func (c *Client) ListAllExpenses(ctx context.Context) (*ExpenseList, error) {
	var list ExpenseList
	if err := c.do(ctx, http.MethodGet, "/expenses/all", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateExpense submits a new expense
func (c *Client) CreateExpense(ctx context.Context, payload ExpensePayload) (*entity.Expense, error) {
	var env expenseEnvelope
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, payload, &env); err != nil {
		return nil, err
	}
	return &env.Expense, nil
}

// UpdateExpense edits an existing expense. The backend rejects edits on
// expenses that are no longer pending.
func (c *Client) UpdateExpense(ctx context.Context, id string, payload ExpensePayload) (*entity.Expense, error) {
	var env expenseEnvelope
	if err := c.do(ctx, http.MethodPut, "/expenses/"+id, nil, payload, &env); err != nil {
		return nil, err
	}
	return &env.Expense, nil
}

// DeleteExpense soft-deletes an expense and returns the deleted id
func (c *Client) DeleteExpense(ctx context.Context, id string) (string, error) {
	var env deleteEnvelope
	if err := c.do(ctx, http.MethodDelete, "/expenses/"+id, nil, nil, &env); err != nil {
		return "", err
	}
	return env.ExpenseID, nil
}
