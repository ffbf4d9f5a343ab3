package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpense_Approve(t *testing.T) {
	e := &Expense{ID: "e1", Status: StatusPending}

	require.NoError(t, e.Approve())
	assert.Equal(t, StatusApproved, e.Status)

	// Resolved expenses never transition again, in either direction.
	assert.Error(t, e.Approve())
	assert.Error(t, e.Reject("late"))
}

func TestExpense_Reject(t *testing.T) {
	e := &Expense{ID: "e1", Status: StatusPending}

	assert.Error(t, e.Reject(""), "reject requires a reason")
	assert.Equal(t, StatusPending, e.Status)

	require.NoError(t, e.Reject("duplicate claim"))
	assert.Equal(t, StatusRejected, e.Status)
	assert.Error(t, e.Approve())
}

func TestExpense_CanEdit(t *testing.T) {
	assert.True(t, (&Expense{Status: StatusPending}).CanEdit())
	assert.False(t, (&Expense{Status: StatusApproved}).CanEdit())
	assert.False(t, (&Expense{Status: StatusRejected}).CanEdit())
}

func TestExpenseStatus(t *testing.T) {
	tests := []struct {
		status   ExpenseStatus
		valid    bool
		resolved bool
	}{
		{StatusPending, true, false},
		{StatusApproved, true, true},
		{StatusRejected, true, true},
		{ExpenseStatus("unknown"), false, false},
		{ExpenseStatus(""), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
			assert.Equal(t, tt.resolved, tt.status.IsResolved())
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Category("groceries").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]Approval{
		{Status: StatusApproved},
		{Status: StatusApproved},
		{Status: StatusRejected},
	})

	assert.Equal(t, Statistics{NumOfTreatedExpenses: 3, ApprovedCount: 2, RejectedCount: 1}, stats)
	assert.Equal(t, Statistics{}, Summarize(nil))
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		page       int
		limit      int
		expected   PaginationMeta
	}{
		{"first of two pages", 14, 1, 10, PaginationMeta{CurrentPage: 1, TotalPages: 2, TotalItems: 14, HasNextPage: true, HasPrevPage: false}},
		{"last page", 14, 2, 10, PaginationMeta{CurrentPage: 2, TotalPages: 2, TotalItems: 14, HasNextPage: false, HasPrevPage: true}},
		{"middle page", 50, 3, 10, PaginationMeta{CurrentPage: 3, TotalPages: 5, TotalItems: 50, HasNextPage: true, HasPrevPage: true}},
		{"exact multiple", 20, 1, 10, PaginationMeta{CurrentPage: 1, TotalPages: 2, TotalItems: 20, HasNextPage: true, HasPrevPage: false}},
		{"empty result still one page", 0, 1, 10, PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 0, HasNextPage: false, HasPrevPage: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.totalItems, tt.page, tt.limit)
			assert.Equal(t, tt.expected, meta)
			assert.Equal(t, meta.CurrentPage < meta.TotalPages, meta.HasNextPage)
			assert.Equal(t, meta.CurrentPage > 1, meta.HasPrevPage)
		})
	}
}
