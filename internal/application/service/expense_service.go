package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/query"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ExpenseInput carries the client-supplied fields of a create or edit
type ExpenseInput struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ExpenseDate string  `json:"expenseDate"`
	Notes       string  `json:"notes"`
}

// ExpenseList is a filtered page of expenses with its pagination metadata
type ExpenseList struct {
	Expenses      []entity.Expense
	TotalExpenses int
	Pagination    entity.PaginationMeta
}

// ExpenseService manages expense CRUD on behalf of authenticated users
type ExpenseService interface {
	List(ctx context.Context, submitterID string, filter query.Filter) (*ExpenseList, error)
	ListAll(ctx context.Context) (*ExpenseList, error)
	Create(ctx context.Context, submitter entity.UserRef, input ExpenseInput) (*entity.Expense, error)
	Update(ctx context.Context, id string, requesterID string, input ExpenseInput) (*entity.Expense, error)
	Delete(ctx context.Context, id string, requesterID string) error
}

type expenseServiceImpl struct {
	expenseRepo port.ExpenseRepository
	logger      Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo port.ExpenseRepository, logger Logger) ExpenseService {
	return &expenseServiceImpl{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// List retrieves one employee's expenses narrowed by the canonical filter
func (s *expenseServiceImpl) List(ctx context.Context, submitterID string, filter query.Filter) (*ExpenseList, error) {
	q := port.ExpenseQuery{
		SubmitterID: submitterID,
		Status:      filter.Status,
		Category:    filter.Category,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		Search:      filter.Search,
		Limit:       filter.Limit,
		Offset:      (filter.Page - 1) * filter.Limit,
	}

	expenses, total, err := s.expenseRepo.List(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list expenses", "error", err, "submitter_id", submitterID)
		return nil, err
	}

	return &ExpenseList{
		Expenses:      expenses,
		TotalExpenses: total,
		Pagination:    entity.NewPaginationMeta(total, filter.Page, filter.Limit),
	}, nil
}

// ListAll retrieves every employee's expenses for the manager view
func (s *expenseServiceImpl) ListAll(ctx context.Context) (*ExpenseList, error) {
	expenses, total, err := s.expenseRepo.List(ctx, port.ExpenseQuery{})
	if err != nil {
		s.logger.Error("Failed to list all expenses", "error", err)
		return nil, err
	}

	return &ExpenseList{
		Expenses:      expenses,
		TotalExpenses: total,
		Pagination:    entity.NewPaginationMeta(total, 1, maxInt(total, 1)),
	}, nil
}

// Create validates and persists a new pending expense
func (s *expenseServiceImpl) Create(ctx context.Context, submitter entity.UserRef, input ExpenseInput) (*entity.Expense, error) {
	expenseDate, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.NewString(),
		Amount:      input.Amount,
		Description: input.Description,
		Category:    normalizeCategory(input.Category),
		ExpenseDate: expenseDate,
		Notes:       input.Notes,
		Status:      entity.StatusPending,
		Submitter:   submitter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		s.logger.Error("Failed to create expense", "error", err, "submitter_id", submitter.ID)
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Info("Expense created", "id", expense.ID, "submitter_id", submitter.ID)
	return expense, nil
}

// Update edits an expense that is still pending and owned by the requester
func (s *expenseServiceImpl) Update(ctx context.Context, id string, requesterID string, input ExpenseInput) (*entity.Expense, error) {
	expenseDate, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load expense", "error", err, "id", id)
		return nil, fmt.Errorf("get expense: %w", err)
	}
	if expense.Submitter.ID != requesterID {
		return nil, ErrForbidden
	}
	if !expense.CanEdit() {
		return nil, ErrNotPending
	}

	expense.Amount = input.Amount
	expense.Description = input.Description
	expense.Category = normalizeCategory(input.Category)
	expense.ExpenseDate = expenseDate
	expense.Notes = input.Notes
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		s.logger.Error("Failed to update expense", "error", err, "id", id)
		return nil, fmt.Errorf("update expense: %w", err)
	}

	s.logger.Info("Expense updated", "id", id)
	return expense, nil
}

// Delete soft-deletes an expense owned by the requester. The row stays in
// the authoritative store; it only disappears from listings.
func (s *expenseServiceImpl) Delete(ctx context.Context, id string, requesterID string) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Error("Failed to load expense", "error", err, "id", id)
		return fmt.Errorf("get expense: %w", err)
	}
	if expense.Submitter.ID != requesterID {
		return ErrForbidden
	}

	if err := s.expenseRepo.SoftDelete(ctx, id); err != nil {
		s.logger.Error("Failed to delete expense", "error", err, "id", id)
		return fmt.Errorf("delete expense: %w", err)
	}

	s.logger.Info("Expense deleted", "id", id)
	return nil
}

// validateInput checks an expense input against the submission rules,
// aggregating every violated rule for the structured details response.
func validateInput(input ExpenseInput) (time.Time, error) {
	var verrs ValidationErrors

	if input.Amount <= 0 {
		verrs = append(verrs, FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	switch {
	case input.Description == "":
		verrs = append(verrs, FieldError{Field: "description", Message: "Description is required"})
	case len(input.Description) < 3:
		verrs = append(verrs, FieldError{Field: "description", Message: "Description must be at least 3 characters"})
	case len(input.Description) > 500:
		verrs = append(verrs, FieldError{Field: "description", Message: "Description must be less than 500 characters"})
	}
	if len(input.Notes) > 1000 {
		verrs = append(verrs, FieldError{Field: "notes", Message: "Notes must be less than 1000 characters"})
	}
	if input.Category != "" && !entity.Category(input.Category).IsValid() {
		verrs = append(verrs, FieldError{Field: "category", Message: "Unknown expense category"})
	}

	var expenseDate time.Time
	if input.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", input.ExpenseDate)
		if err != nil {
			verrs = append(verrs, FieldError{Field: "expenseDate", Message: "Expense date must be a valid date"})
		} else {
			expenseDate = parsed
		}
	}

	if len(verrs) > 0 {
		return time.Time{}, verrs
	}
	return expenseDate, nil
}

func normalizeCategory(c string) entity.Category {
	category := entity.Category(c)
	if !category.IsValid() {
		return entity.CategoryOther
	}
	return category
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
