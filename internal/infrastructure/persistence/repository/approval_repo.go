package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// ApprovalRepository implements port.ApprovalRepository
type ApprovalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db *sql.DB, logger *zap.Logger) port.ApprovalRepository {
	return &ApprovalRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a manager's decision
func (r *ApprovalRepository) Create(ctx context.Context, approval *entity.Approval) error {
	query := `
		INSERT INTO approvals (
			id, expense_id, manager_id, status, reject_reason, decided_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query,
		approval.ID,
		approval.ExpenseID,
		approval.ManagerID,
		approval.Status,
		approval.RejectReason,
		approval.DecidedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create approval", zap.String("expense_id", approval.ExpenseID), zap.Error(err))
		return fmt.Errorf("failed to create approval: %w", err)
	}

	return nil
}

// GetByExpenseID retrieves the decision made on one expense, if any
func (r *ApprovalRepository) GetByExpenseID(ctx context.Context, expenseID string) (*entity.Approval, error) {
	query := `
		SELECT id, expense_id, manager_id, status, reject_reason, decided_at
		FROM approvals
		WHERE expense_id = ?
	`

	var approval entity.Approval
	var rejectReason sql.NullString

	err := resolveExecutor(ctx, r.db).QueryRowContext(ctx, query, expenseID).Scan(
		&approval.ID,
		&approval.ExpenseID,
		&approval.ManagerID,
		&approval.Status,
		&rejectReason,
		&approval.DecidedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("approval for expense %s: %w", expenseID, sql.ErrNoRows)
	}
	if err != nil {
		r.logger.Error("Failed to get approval", zap.String("expense_id", expenseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}

	approval.RejectReason = rejectReason.String
	return &approval, nil
}

// ListBySubmitter returns the decisions on one employee's expenses,
// newest decision first, with the expense snapshot attached.
func (r *ApprovalRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]entity.Approval, error) {
	return r.list(ctx, "WHERE u.id = ?", submitterID)
}

// ListAll returns every decision, newest first
func (r *ApprovalRepository) ListAll(ctx context.Context) ([]entity.Approval, error) {
	return r.list(ctx, "")
}

func (r *ApprovalRepository) list(ctx context.Context, where string, args ...interface{}) ([]entity.Approval, error) {
	query := `
		SELECT
			a.id, a.expense_id, a.manager_id, a.status, a.reject_reason, a.decided_at,
			e.id, e.amount, e.description, e.category, e.expense_date, e.notes,
			e.status, e.deleted, e.created_at, e.updated_at,
			u.id, u.name, u.role
		FROM approvals a
		JOIN expenses e ON e.id = a.expense_id
		JOIN users u ON u.id = e.submitter_id
		` + where + `
		ORDER BY a.decided_at DESC, a.id
	`

	rows, err := resolveExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list approvals", zap.Error(err))
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	approvals := make([]entity.Approval, 0)
	for rows.Next() {
		var approval entity.Approval
		var expense entity.Expense
		var rejectReason, notes sql.NullString

		err := rows.Scan(
			&approval.ID,
			&approval.ExpenseID,
			&approval.ManagerID,
			&approval.Status,
			&rejectReason,
			&approval.DecidedAt,
			&expense.ID,
			&expense.Amount,
			&expense.Description,
			&expense.Category,
			&expense.ExpenseDate,
			&notes,
			&expense.Status,
			&expense.Deleted,
			&expense.CreatedAt,
			&expense.UpdatedAt,
			&expense.Submitter.ID,
			&expense.Submitter.Name,
			&expense.Submitter.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}

		approval.RejectReason = rejectReason.String
		expense.Notes = notes.String
		approval.Expense = &expense
		approvals = append(approvals, approval)
	}

	return approvals, rows.Err()
}

// Verify interface compliance
var _ port.ApprovalRepository = (*ApprovalRepository)(nil)
