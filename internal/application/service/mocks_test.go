package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// notFound mirrors the repositories, which wrap sql.ErrNoRows on a miss
func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, sql.ErrNoRows)
}

// Mock repositories
type mockExpenseRepo struct {
	createFunc     func(ctx context.Context, expense *entity.Expense) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.Expense, error)
	updateFunc     func(ctx context.Context, expense *entity.Expense) error
	softDeleteFunc func(ctx context.Context, id string) error
	listFunc       func(ctx context.Context, q port.ExpenseQuery) ([]entity.Expense, int, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Expense{ID: id, Status: entity.StatusPending}, nil
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepo) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockExpenseRepo) List(ctx context.Context, q port.ExpenseQuery) ([]entity.Expense, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return []entity.Expense{}, 0, nil
}

type mockApprovalRepo struct {
	createFunc          func(ctx context.Context, approval *entity.Approval) error
	getByExpenseIDFunc  func(ctx context.Context, expenseID string) (*entity.Approval, error)
	listBySubmitterFunc func(ctx context.Context, submitterID string) ([]entity.Approval, error)
	listAllFunc         func(ctx context.Context) ([]entity.Approval, error)
}

func (m *mockApprovalRepo) Create(ctx context.Context, approval *entity.Approval) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, approval)
	}
	return nil
}

func (m *mockApprovalRepo) GetByExpenseID(ctx context.Context, expenseID string) (*entity.Approval, error) {
	if m.getByExpenseIDFunc != nil {
		return m.getByExpenseIDFunc(ctx, expenseID)
	}
	return nil, notFound("missing")
}

func (m *mockApprovalRepo) ListBySubmitter(ctx context.Context, submitterID string) ([]entity.Approval, error) {
	if m.listBySubmitterFunc != nil {
		return m.listBySubmitterFunc(ctx, submitterID)
	}
	return []entity.Approval{}, nil
}

func (m *mockApprovalRepo) ListAll(ctx context.Context) ([]entity.Approval, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []entity.Approval{}, nil
}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *entity.User) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	activateFunc   func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, notFound("missing")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, notFound("missing")
}

func (m *mockUserRepo) Activate(ctx context.Context, id string) error {
	if m.activateFunc != nil {
		return m.activateFunc(ctx, id)
	}
	return nil
}

type mockSessionRepo struct {
	createFunc        func(ctx context.Context, session *entity.Session) error
	getByTokenFunc    func(ctx context.Context, token string) (*entity.Session, error)
	deleteFunc        func(ctx context.Context, token string) error
	deleteExpiredFunc func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, notFound("missing")
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
