// Package port defines the persistence interfaces the application
// services depend on. Implementations live under
// internal/infrastructure/persistence.
package port

import (
	"context"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// ExpenseQuery narrows an expense listing. Zero values mean "any"; dates
// are inclusive calendar-date bounds in 2006-01-02 form.
type ExpenseQuery struct {
	SubmitterID string
	Status      string
	Category    string
	StartDate   string
	EndDate     string
	Search      string
	Limit       int
	Offset      int
}

// ExpenseRepository defines persistence operations for Expense
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	SoftDelete(ctx context.Context, id string) error
	// List returns the matching page plus the total match count across
	// all pages.
	List(ctx context.Context, q ExpenseQuery) ([]entity.Expense, int, error)
}

// ApprovalRepository defines persistence operations for Approval
type ApprovalRepository interface {
	Create(ctx context.Context, approval *entity.Approval) error
	GetByExpenseID(ctx context.Context, expenseID string) (*entity.Approval, error)
	// ListBySubmitter returns decisions on one employee's expenses, with
	// the expense snapshot attached, newest first.
	ListBySubmitter(ctx context.Context, submitterID string) ([]entity.Approval, error)
	// ListAll returns every decision with expense snapshots, newest first.
	ListAll(ctx context.Context) ([]entity.Approval, error)
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Activate(ctx context.Context, id string) error
}

// SessionRepository defines persistence operations for Session
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// TransactionManager runs a function inside a database transaction. The
// context passed to fn carries the transaction; repositories resolve it
// transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
