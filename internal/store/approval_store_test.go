package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/gateway"
)

type mockApprovalGateway struct {
	decideFunc     func(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error)
	ownHistoryFunc func(ctx context.Context) (*gateway.ApprovalHistory, error)
	allHistoryFunc func(ctx context.Context) (*gateway.ApprovalHistory, error)
}

func (m *mockApprovalGateway) DecideApproval(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error) {
	if m.decideFunc != nil {
		return m.decideFunc(ctx, expenseID, decision)
	}
	return &entity.Expense{ID: expenseID, Status: decision.Status}, nil
}

func (m *mockApprovalGateway) OwnApprovalHistory(ctx context.Context) (*gateway.ApprovalHistory, error) {
	if m.ownHistoryFunc != nil {
		return m.ownHistoryFunc(ctx)
	}
	return &gateway.ApprovalHistory{}, nil
}

func (m *mockApprovalGateway) AllApprovalHistory(ctx context.Context) (*gateway.ApprovalHistory, error) {
	if m.allHistoryFunc != nil {
		return m.allHistoryFunc(ctx)
	}
	return &gateway.ApprovalHistory{}, nil
}

func TestApprovalStore_LoadPendingQueue(t *testing.T) {
	s := NewApprovalStore(&mockApprovalGateway{}, NopNotifier{}, zap.NewNop())

	s.LoadPendingQueue([]entity.Expense{
		{ID: "e1", Status: entity.StatusPending},
		{ID: "e2", Status: entity.StatusApproved},
		{ID: "e3", Status: entity.StatusPending},
		{ID: "e4", Status: entity.StatusRejected},
	})

	pending := s.PendingExpenses()
	require.Len(t, pending, 2)
	assert.Equal(t, "e1", pending[0].ID)
	assert.Equal(t, "e3", pending[1].ID)
}

func TestApprovalStore_ApproveRemovesFromPending(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewApprovalStore(&mockApprovalGateway{}, notifier, zap.NewNop())
	s.LoadPendingQueue([]entity.Expense{
		{ID: "1", Status: entity.StatusPending},
		{ID: "2", Status: entity.StatusPending},
	})

	require.NoError(t, s.Approve(context.Background(), "1"))

	pending := s.PendingExpenses()
	require.Len(t, pending, 1)
	assert.Equal(t, "2", pending[0].ID)
	assert.Equal(t, []string{"Expense approved successfully"}, notifier.successes)
}

func TestApprovalStore_ApproveFailureLeavesPending(t *testing.T) {
	gw := &mockApprovalGateway{
		decideFunc: func(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error) {
			return nil, &gateway.APIError{Status: 409, Message: "expense already resolved"}
		},
	}
	notifier := &recordingNotifier{}
	s := NewApprovalStore(gw, notifier, zap.NewNop())
	s.LoadPendingQueue([]entity.Expense{
		{ID: "1", Status: entity.StatusPending},
		{ID: "2", Status: entity.StatusPending},
	})

	require.Error(t, s.Approve(context.Background(), "1"))

	assert.Len(t, s.PendingExpenses(), 2, "queue unchanged on failure")
	assert.Equal(t, []string{"expense already resolved"}, notifier.errors)
	assert.Equal(t, "expense already resolved", s.Err())
}

func TestApprovalStore_RejectRequiresReason(t *testing.T) {
	tests := []struct {
		name   string
		reason string
	}{
		{"empty reason", ""},
		{"whitespace-only reason", "   \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			gw := &mockApprovalGateway{
				decideFunc: func(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error) {
					called = true
					return &entity.Expense{ID: expenseID}, nil
				},
			}
			notifier := &recordingNotifier{}
			s := NewApprovalStore(gw, notifier, zap.NewNop())
			s.LoadPendingQueue([]entity.Expense{{ID: "1", Status: entity.StatusPending}})

			err := s.Reject(context.Background(), "1", tt.reason)

			require.ErrorIs(t, err, ErrReasonRequired)
			assert.False(t, called, "blank reason must never issue a network call")
			assert.Len(t, s.PendingExpenses(), 1, "pending queue unchanged")
			assert.Equal(t, []string{"Please provide a reason for rejection"}, notifier.errors)
		})
	}
}

func TestApprovalStore_RejectTrimsReasonAndClearsFlow(t *testing.T) {
	var sent gateway.Decision
	gw := &mockApprovalGateway{
		decideFunc: func(ctx context.Context, expenseID string, decision gateway.Decision) (*entity.Expense, error) {
			sent = decision
			return &entity.Expense{ID: expenseID, Status: entity.StatusRejected}, nil
		},
	}
	s := NewApprovalStore(gw, &recordingNotifier{}, zap.NewNop())
	target := entity.Expense{ID: "1", Status: entity.StatusPending}
	s.LoadPendingQueue([]entity.Expense{target})
	s.OpenRejectFlow(&target)
	s.SetRejectReason("  missing receipt  ")

	require.NoError(t, s.Reject(context.Background(), "1", s.RejectFlow().RejectReason))

	assert.Equal(t, entity.StatusRejected, sent.Status)
	assert.Equal(t, "missing receipt", sent.RejectReason, "reason sent trimmed")
	assert.Empty(t, s.PendingExpenses())

	flow := s.RejectFlow()
	assert.Nil(t, flow.SelectedExpense)
	assert.Empty(t, flow.RejectReason)
	assert.False(t, flow.IsModalOpen)
}

func TestApprovalStore_RejectFlowLifecycle(t *testing.T) {
	s := NewApprovalStore(&mockApprovalGateway{}, NopNotifier{}, zap.NewNop())
	expense := entity.Expense{ID: "e5", Status: entity.StatusPending}

	s.SetRejectReason("leftover text")
	s.OpenRejectFlow(&expense)

	flow := s.RejectFlow()
	require.NotNil(t, flow.SelectedExpense)
	assert.Equal(t, "e5", flow.SelectedExpense.ID)
	assert.True(t, flow.IsModalOpen)
	assert.Empty(t, flow.RejectReason, "reason cleared on open")

	s.SetRejectReason("wrong category")
	assert.Equal(t, "wrong category", s.RejectFlow().RejectReason)

	s.CloseRejectFlow()
	assert.Equal(t, RejectFlow{}, s.RejectFlow())
}

func TestApprovalStore_FetchOwnHistory(t *testing.T) {
	gw := &mockApprovalGateway{
		ownHistoryFunc: func(ctx context.Context) (*gateway.ApprovalHistory, error) {
			return &gateway.ApprovalHistory{
				Approvals: []entity.Approval{
					{ID: "a1", Status: entity.StatusApproved},
					{ID: "a2", Status: entity.StatusRejected, RejectReason: "no receipt"},
				},
				Statistics: entity.Statistics{NumOfTreatedExpenses: 2, ApprovedCount: 1, RejectedCount: 1},
				Employee:   &entity.UserRef{ID: "u1", Name: "Dana"},
			}, nil
		},
	}
	s := NewApprovalStore(gw, NopNotifier{}, zap.NewNop())

	require.NoError(t, s.FetchOwnHistory(context.Background()))

	history := s.OwnHistory()
	require.NotNil(t, history)
	assert.Len(t, history.Approvals, 2)
	assert.Equal(t, 2, history.Statistics.NumOfTreatedExpenses)
	require.NotNil(t, history.Employee)
	assert.Equal(t, "Dana", history.Employee.Name)
}

func TestApprovalStore_FetchAllHistoryFailureKeepsPrior(t *testing.T) {
	calls := 0
	gw := &mockApprovalGateway{
		allHistoryFunc: func(ctx context.Context) (*gateway.ApprovalHistory, error) {
			calls++
			if calls == 1 {
				return &gateway.ApprovalHistory{
					Statistics: entity.Statistics{NumOfTreatedExpenses: 7},
				}, nil
			}
			return nil, &gateway.APIError{Status: 500, Message: "database unavailable"}
		},
	}
	notifier := &recordingNotifier{}
	s := NewApprovalStore(gw, notifier, zap.NewNop())

	require.NoError(t, s.FetchAllHistory(context.Background()))
	require.Error(t, s.FetchAllHistory(context.Background()))

	history := s.AllHistory()
	require.NotNil(t, history, "previously loaded history stays on failure")
	assert.Equal(t, 7, history.Statistics.NumOfTreatedExpenses)
	assert.Equal(t, "database unavailable", s.Err())
}
