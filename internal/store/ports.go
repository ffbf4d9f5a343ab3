package store

import (
	"context"
	"errors"
	"net/url"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/gateway"
)

// ErrSubmitInFlight is returned when a create or edit is dispatched while
// a previous submission from the same draft has not resolved yet.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ErrReasonRequired is returned when a reject decision is dispatched with
// a blank reason. The failure is local: no request is issued.
var ErrReasonRequired = errors.New("a reject reason is required")

// ExpenseGateway is the slice of the HTTP gateway the expense store uses
type ExpenseGateway interface {
	ListExpenses(ctx context.Context, query url.Values) (*gateway.ExpenseList, error)
	ListAllExpenses(ctx context.Context) (*gateway.ExpenseList, error)
	CreateExpense(ctx context.Context, payload gateway.ExpensePayload) (*entity.Expense, error)
	UpdateExpense(ctx context.Context, id string, payload gateway.ExpensePayload) (*entity.Expense, error)
	DeleteExpense(ctx context.Context, id string) (string, error)
}

// ApprovalGateway is the slice of the HTTP gateway the approval store uses
type ApprovalGateway interface {
	DecideApproval(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error)
	OwnApprovalHistory(ctx context.Context) (*gateway.ApprovalHistory, error)
	AllApprovalHistory(ctx context.Context) (*gateway.ApprovalHistory, error)
}
