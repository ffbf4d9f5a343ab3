package gateway

import (
	"context"
	"net/http"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// Decision is the request body for deciding a pending expense
type Decision struct {
	Status       entity.ExpenseStatus `json:"status"`
	RejectReason string               `json:"rejectReason,omitempty"`
}

// ApprovalHistory is the response to an approval history request.
// Employee is only present on the own-history endpoint.
type ApprovalHistory struct {
	Approvals  []entity.Approval `json:"approvals"`
	Statistics entity.Statistics `json:"statistics"`
	Employee   *entity.UserRef   `json:"employee,omitempty"`
}

// DecideApproval records a manager's decision on a pending expense and
// returns the resolved expense. Manager only.
func (c *Client) DecideApproval(ctx context.Context, expenseID string, decision Decision) (*entity.Expense, error) {
	var env expenseEnvelope
	if err := c.do(ctx, http.MethodPut, "/approvals/"+expenseID, nil, decision, &env); err != nil {
		return nil, err
	}
	return &env.Expense, nil
}

// OwnApprovalHistory fetches the decisions made on the calling employee's
// own expenses, with summary statistics.
func (c *Client) OwnApprovalHistory(ctx context.Context) (*ApprovalHistory, error) {
	var history ApprovalHistory
	if err := c.do(ctx, http.MethodGet, "/approvals/", nil, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// AllApprovalHistory fetches every resolved approval across all employees.
// Manager only.
func (c *Client) AllApprovalHistory(ctx context.Context) (*ApprovalHistory, error) {
	var history ApprovalHistory
	if err := c.do(ctx, http.MethodGet, "/approvals/all", nil, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
