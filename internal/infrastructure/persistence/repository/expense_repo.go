package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// ExpenseRepository implements port.ExpenseRepository
type ExpenseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB, logger *zap.Logger) port.ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

const expenseColumns = `
	e.id, e.amount, e.description, e.category, e.expense_date, e.notes,
	e.status, e.deleted, e.created_at, e.updated_at,
	u.id, u.name, u.role
`

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (
			id, amount, description, category, expense_date, notes,
			status, submitter_id, deleted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query,
		expense.ID,
		expense.Amount,
		expense.Description,
		expense.Category,
		expense.ExpenseDate,
		expense.Notes,
		expense.Status,
		expense.Submitter.ID,
		expense.Deleted,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create expense", zap.Error(err))
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by ID. Soft-deleted rows are not visible.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON u.id = e.submitter_id
		WHERE e.id = ? AND e.deleted = 0
	`

	expense, err := r.scanExpense(resolveExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		r.logger.Error("Failed to get expense by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// Update persists the mutable fields of an expense
func (r *ExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET amount = ?, description = ?, category = ?, expense_date = ?,
			notes = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted = 0
	`

	result, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query,
		expense.Amount,
		expense.Description,
		expense.Category,
		expense.ExpenseDate,
		expense.Notes,
		expense.Status,
		expense.UpdatedAt,
		expense.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update expense", zap.String("id", expense.ID), zap.Error(err))
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, sql.ErrNoRows)
	}

	return nil
}

// SoftDelete hides an expense from listings without removing the row
func (r *ExpenseRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE expenses SET deleted = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted = 0`

	result, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to soft delete expense", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, sql.ErrNoRows)
	}

	return nil
}

// List returns the matching page of expenses, newest first, plus the
// total match count across all pages.
func (r *ExpenseRepository) List(ctx context.Context, q port.ExpenseQuery) ([]entity.Expense, int, error) {
	where, args := buildExpenseWhere(q)

	var total int
	countQuery := `SELECT COUNT(*) FROM expenses e ` + where
	if err := resolveExecutor(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count expenses", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON u.id = e.submitter_id
		` + where + `
		ORDER BY e.created_at DESC, e.id
	`
	pageArgs := args
	if q.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		pageArgs = append(append([]interface{}{}, args...), q.Limit, q.Offset)
	}

	rows, err := resolveExecutor(ctx, r.db).QueryContext(ctx, query, pageArgs...)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]entity.Expense, 0)
	for rows.Next() {
		expense, err := r.scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}

	return expenses, total, rows.Err()
}

// buildExpenseWhere assembles the WHERE clause for an expense query.
// Zero-valued fields place no constraint.
func buildExpenseWhere(q port.ExpenseQuery) (string, []interface{}) {
	conditions := []string{"e.deleted = 0"}
	args := []interface{}{}

	if q.SubmitterID != "" {
		conditions = append(conditions, "e.submitter_id = ?")
		args = append(args, q.SubmitterID)
	}
	if q.Status != "" {
		conditions = append(conditions, "e.status = ?")
		args = append(args, q.Status)
	}
	if q.Category != "" {
		conditions = append(conditions, "e.category = ?")
		args = append(args, q.Category)
	}
	if q.StartDate != "" {
		conditions = append(conditions, "date(e.expense_date) >= date(?)")
		args = append(args, q.StartDate)
	}
	if q.EndDate != "" {
		conditions = append(conditions, "date(e.expense_date) <= date(?)")
		args = append(args, q.EndDate)
	}
	if q.Search != "" {
		conditions = append(conditions, "(e.description LIKE ? OR e.notes LIKE ?)")
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ExpenseRepository) scanExpense(row rowScanner) (*entity.Expense, error) {
	var expense entity.Expense
	var notes sql.NullString

	err := row.Scan(
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
		return nil, err
	}

	expense.Notes = notes.String
	return &expense, nil
}

// Verify interface compliance
var _ port.ExpenseRepository = (*ExpenseRepository)(nil)
