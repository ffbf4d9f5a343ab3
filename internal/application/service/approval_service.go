package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// ApprovalHistory is a set of resolved decisions with summary statistics
type ApprovalHistory struct {
	Approvals  []entity.Approval
	Statistics entity.Statistics
}

// ApprovalService records manager decisions and serves decision history
type ApprovalService interface {
	Decide(ctx context.Context, expenseID string, manager entity.UserRef, status entity.ExpenseStatus, rejectReason string) (*entity.Expense, error)
	HistoryBySubmitter(ctx context.Context, submitterID string) (*ApprovalHistory, error)
	HistoryAll(ctx context.Context) (*ApprovalHistory, error)
}

type approvalServiceImpl struct {
	expenseRepo  port.ExpenseRepository
	approvalRepo port.ApprovalRepository
	txManager    port.TransactionManager
	logger       Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	expenseRepo port.ExpenseRepository,
	approvalRepo port.ApprovalRepository,
	txManager port.TransactionManager,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Decide resolves a pending expense with the manager's decision. The
// status transition and the approval record are written in one
// transaction so exactly one approval ever exists per resolved expense.
func (s *approvalServiceImpl) Decide(ctx context.Context, expenseID string, manager entity.UserRef, status entity.ExpenseStatus, rejectReason string) (*entity.Expense, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, ValidationErrors{{Field: "status", Message: "Decision must be approved or rejected"}}
	}
	rejectReason = strings.TrimSpace(rejectReason)
	if status == entity.StatusRejected && rejectReason == "" {
		return nil, ValidationErrors{{Field: "rejectReason", Message: "Please provide a reason for rejection"}}
	}

	var decided *entity.Expense
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		expense, err := s.expenseRepo.GetByID(txCtx, expenseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get expense: %w", err)
		}

		switch _, err := s.approvalRepo.GetByExpenseID(txCtx, expenseID); {
		case err == nil:
			return ErrAlreadyDecided
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check prior decision: %w", err)
		}

		if status == entity.StatusApproved {
			err = expense.Approve()
		} else {
			err = expense.Reject(rejectReason)
		}
		if err != nil {
			return ErrNotPending
		}

		if err := s.expenseRepo.Update(txCtx, expense); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}

		approval := &entity.Approval{
			ID:           uuid.NewString(),
			ExpenseID:    expense.ID,
			ManagerID:    manager.ID,
			Status:       status,
			RejectReason: rejectReason,
			DecidedAt:    time.Now(),
		}
		if err := s.approvalRepo.Create(txCtx, approval); err != nil {
			return fmt.Errorf("create approval: %w", err)
		}

		decided = expense
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to decide expense", "error", err, "expense_id", expenseID, "manager_id", manager.ID)
		return nil, err
	}

	s.logger.Info("Expense decided", "expense_id", expenseID, "status", status, "manager_id", manager.ID)
	return decided, nil
}

// HistoryBySubmitter returns the decisions made on one employee's
// expenses with summary statistics.
func (s *approvalServiceImpl) HistoryBySubmitter(ctx context.Context, submitterID string) (*ApprovalHistory, error) {
	approvals, err := s.approvalRepo.ListBySubmitter(ctx, submitterID)
	if err != nil {
		s.logger.Error("Failed to list approvals", "error", err, "submitter_id", submitterID)
		return nil, err
	}
	return &ApprovalHistory{
		Approvals:  approvals,
		Statistics: entity.Summarize(approvals),
	}, nil
}

// HistoryAll returns every resolved decision with summary statistics
func (s *approvalServiceImpl) HistoryAll(ctx context.Context) (*ApprovalHistory, error) {
	approvals, err := s.approvalRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list all approvals", "error", err)
		return nil, err
	}
	return &ApprovalHistory{
		Approvals:  approvals,
		Statistics: entity.Summarize(approvals),
	}, nil
}
