package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/query"
)

func validInput() ExpenseInput {
	return ExpenseInput{
		Amount:      42.50,
		Description: "Team lunch after release",
		Category:    "meals",
		ExpenseDate: "2026-08-14",
	}
}

func TestExpenseService_Create_Success(t *testing.T) {
	var created *entity.Expense
	repo := &mockExpenseRepo{
		createFunc: func(ctx context.Context, expense *entity.Expense) error {
			created = expense
			return nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	submitter := entity.UserRef{ID: "user-1", Name: "Alice", Role: "employee"}
	expense, err := svc.Create(context.Background(), submitter, validInput())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, expense.ID, created.ID)
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, entity.StatusPending, expense.Status)
	assert.Equal(t, submitter, expense.Submitter)
	assert.Equal(t, 42.50, expense.Amount)
	assert.Equal(t, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), expense.ExpenseDate)
}

func TestExpenseService_Create_ValidationAggregatesErrors(t *testing.T) {
	repoCalled := false
	repo := &mockExpenseRepo{
		createFunc: func(ctx context.Context, expense *entity.Expense) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	input := ExpenseInput{Amount: 0, Description: "ab", ExpenseDate: "not-a-date"}
	_, err := svc.Create(context.Background(), entity.UserRef{ID: "user-1"}, input)

	require.Error(t, err)
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, verrs, 3)
	assert.False(t, repoCalled)

	fields := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.ElementsMatch(t, []string{"amount", "description", "expenseDate"}, fields)
}

func TestExpenseService_Create_UnknownCategoryRejected(t *testing.T) {
	svc := NewExpenseService(&mockExpenseRepo{}, &mockLogger{})

	input := validInput()
	input.Category = "yachts"
	_, err := svc.Create(context.Background(), entity.UserRef{ID: "user-1"}, input)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "category", verrs[0].Field)
}

func TestExpenseService_Create_EmptyCategoryDefaultsToOther(t *testing.T) {
	repo := &mockExpenseRepo{}
	svc := NewExpenseService(repo, &mockLogger{})

	input := validInput()
	input.Category = ""
	expense, err := svc.Create(context.Background(), entity.UserRef{ID: "user-1"}, input)

	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, expense.Category)
}

func TestExpenseService_Update_OwnershipAndStatus(t *testing.T) {
	tests := []struct {
		name        string
		stored      *entity.Expense
		getErr      error
		requesterID string
		wantErr     error
	}{
		{
			name:        "not found",
			getErr:      notFound("expense exp-1"),
			requesterID: "user-1",
			wantErr:     ErrNotFound,
		},
		{
			name:        "not the owner",
			stored:      &entity.Expense{ID: "exp-1", Status: entity.StatusPending, Submitter: entity.UserRef{ID: "user-2"}},
			requesterID: "user-1",
			wantErr:     ErrForbidden,
		},
		{
			name:        "already resolved",
			stored:      &entity.Expense{ID: "exp-1", Status: entity.StatusApproved, Submitter: entity.UserRef{ID: "user-1"}},
			requesterID: "user-1",
			wantErr:     ErrNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockExpenseRepo{
				getByIDFunc: func(ctx context.Context, id string) (*entity.Expense, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return tt.stored, nil
				},
			}
			svc := NewExpenseService(repo, &mockLogger{})

			_, err := svc.Update(context.Background(), "exp-1", tt.requesterID, validInput())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpenseService_Update_Success(t *testing.T) {
	stored := &entity.Expense{
		ID:          "exp-1",
		Amount:      10,
		Description: "old description",
		Status:      entity.StatusPending,
		Submitter:   entity.UserRef{ID: "user-1"},
	}
	var updated *entity.Expense
	repo := &mockExpenseRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Expense, error) {
			return stored, nil
		},
		updateFunc: func(ctx context.Context, expense *entity.Expense) error {
			updated = expense
			return nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	expense, err := svc.Update(context.Background(), "exp-1", "user-1", validInput())

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 42.50, expense.Amount)
	assert.Equal(t, "Team lunch after release", expense.Description)
	assert.Equal(t, entity.CategoryMeals, expense.Category)
}

func TestExpenseService_Delete(t *testing.T) {
	deletedID := ""
	repo := &mockExpenseRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Expense, error) {
			return &entity.Expense{ID: id, Status: entity.StatusPending, Submitter: entity.UserRef{ID: "user-1"}}, nil
		},
		softDeleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	err := svc.Delete(context.Background(), "exp-9", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "exp-9", deletedID)

	err = svc.Delete(context.Background(), "exp-9", "user-2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExpenseService_LookupFailureIsNotNotFound(t *testing.T) {
	deleted := false
	repo := &mockExpenseRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Expense, error) {
			return nil, errors.New("connection reset")
		},
		softDeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	_, err := svc.Update(context.Background(), "exp-1", "user-1", validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "a transient failure must not read as absence")
	assert.Contains(t, err.Error(), "connection reset")

	err = svc.Delete(context.Background(), "exp-1", "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.False(t, deleted)
}

func TestExpenseService_List_TranslatesFilter(t *testing.T) {
	var gotQuery port.ExpenseQuery
	repo := &mockExpenseRepo{
		listFunc: func(ctx context.Context, q port.ExpenseQuery) ([]entity.Expense, int, error) {
			gotQuery = q
			return []entity.Expense{{ID: "exp-1"}}, 23, nil
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	filter := query.New()
	filter.Status = "pending"
	filter.Search = "lunch"
	filter.Page = 3

	list, err := svc.List(context.Background(), "user-1", filter)

	require.NoError(t, err)
	assert.Equal(t, "user-1", gotQuery.SubmitterID)
	assert.Equal(t, "pending", gotQuery.Status)
	assert.Equal(t, "lunch", gotQuery.Search)
	assert.Equal(t, 10, gotQuery.Limit)
	assert.Equal(t, 20, gotQuery.Offset)
	assert.Equal(t, 23, list.TotalExpenses)
	assert.Equal(t, 3, list.Pagination.CurrentPage)
	assert.Equal(t, 3, list.Pagination.TotalPages)
	assert.False(t, list.Pagination.HasNextPage)
	assert.True(t, list.Pagination.HasPrevPage)
}

func TestExpenseService_List_RepositoryError(t *testing.T) {
	repo := &mockExpenseRepo{
		listFunc: func(ctx context.Context, q port.ExpenseQuery) ([]entity.Expense, int, error) {
			return nil, 0, errors.New("database locked")
		},
	}
	svc := NewExpenseService(repo, &mockLogger{})

	_, err := svc.List(context.Background(), "user-1", query.New())
	assert.Error(t, err)
}
