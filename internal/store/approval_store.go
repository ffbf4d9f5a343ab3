package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/form"
	"github.com/avenzari/expenseflow/internal/gateway"
)

// RejectFlow is the transient state of the reject dialog
type RejectFlow struct {
	SelectedExpense *entity.Expense
	RejectReason    string
	IsModalOpen     bool
}

// ApprovalStore owns the manager-side pending queue, the resolved-history
// views and the reject-flow transient state. It is the only component
// that calls the approval-decision endpoints.
type ApprovalStore struct {
	mu       sync.Mutex
	gw       ApprovalGateway
	notifier Notifier
	logger   *zap.Logger

	pendingExpenses []entity.Expense
	ownHistory      *gateway.ApprovalHistory
	allHistory      *gateway.ApprovalHistory
	rejectFlow      RejectFlow
	lastError       string

	ownToken uint64
	allToken uint64
}

// NewApprovalStore creates an approval store backed by the given gateway
func NewApprovalStore(gw ApprovalGateway, notifier Notifier, logger *zap.Logger) *ApprovalStore {
	return &ApprovalStore{gw: gw, notifier: notifier, logger: logger}
}

// LoadPendingQueue derives the pending queue from a freshly fetched
// collection of all employee expenses. Pure local derivation, no network
// call: the caller fetches the collection through the expense store first.
func (s *ApprovalStore) LoadPendingQueue(allExpenses []entity.Expense) {
	pending := make([]entity.Expense, 0, len(allExpenses))
	for _, e := range allExpenses {
		if e.Status == entity.StatusPending {
			pending = append(pending, e)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingExpenses = pending
}

// Approve records an approval decision on a pending expense. On success
// the expense is removed from the pending queue: a resolved expense can
// never re-enter it, so the optimistic removal matches the server's state
// transition. On failure the queue is left unchanged.
func (s *ApprovalStore) Approve(ctx context.Context, expenseID string) error {
	return s.decide(ctx, expenseID, gateway.Decision{Status: entity.StatusApproved},
		"Expense approved successfully")
}

// Reject records a reject decision with the given reason. A reason that is
// empty or whitespace-only fails fast locally without issuing a request
// and leaves the pending queue unchanged. On success the reject flow's
// transient state is cleared.
func (s *ApprovalStore) Reject(ctx context.Context, expenseID, reason string) error {
	trimmed, ok := form.TrimmedReason(reason)
	if !ok {
		s.notifier.Error("Please provide a reason for rejection")
		return fmt.Errorf("reject expense %s: %w", expenseID, ErrReasonRequired)
	}

	err := s.decide(ctx, expenseID, gateway.Decision{Status: entity.StatusRejected, RejectReason: trimmed},
		"Expense rejected successfully")
	if err != nil {
		return err
	}

	s.CloseRejectFlow()
	return nil
}

func (s *ApprovalStore) decide(ctx context.Context, expenseID string, decision gateway.Decision, successMsg string) error {
	expense, err := s.gw.DecideApproval(ctx, expenseID, decision)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = gateway.Notices(err, "Approval failed")[0]
		for _, notice := range gateway.Notices(err, "Approval failed") {
			s.notifier.Error(notice)
		}
		return err
	}

	kept := s.pendingExpenses[:0:0]
	for _, pending := range s.pendingExpenses {
		if pending.ID != expense.ID {
			kept = append(kept, pending)
		}
	}
	s.pendingExpenses = kept
	s.lastError = ""
	s.notifier.Success(successMsg)
	return nil
}

// OpenRejectFlow selects an expense for rejection and opens the dialog
// with an empty reason.
func (s *ApprovalStore) OpenRejectFlow(expense *entity.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectFlow = RejectFlow{SelectedExpense: expense, IsModalOpen: true}
}

// CloseRejectFlow resets all reject-flow fields to their initial values,
// regardless of whether it was a cancel, a success or an explicit close.
func (s *ApprovalStore) CloseRejectFlow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectFlow = RejectFlow{}
}

// SetRejectReason updates the in-progress reject reason text
func (s *ApprovalStore) SetRejectReason(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectFlow.RejectReason = reason
}

// RejectFlow returns the current reject dialog state
func (s *ApprovalStore) RejectFlow() RejectFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectFlow
}

// FetchOwnHistory replaces the calling employee's resolved approvals and
// summary statistics wholesale. On failure previously loaded history stays
// and the error becomes inline state plus a notice.
func (s *ApprovalStore) FetchOwnHistory(ctx context.Context) error {
	s.mu.Lock()
	s.ownToken++
	token := s.ownToken
	s.mu.Unlock()

	history, err := s.gw.OwnApprovalHistory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.ownToken {
		s.logger.Debug("Discarding stale own-history response",
			zap.Uint64("token", token), zap.Uint64("latest", s.ownToken))
		return nil
	}
	if err != nil {
		s.failFetch(err)
		return err
	}
	s.ownHistory = history
	s.lastError = ""
	return nil
}

// FetchAllHistory replaces the manager-side view of every resolved
// approval wholesale. Same failure and staleness rules as FetchOwnHistory.
func (s *ApprovalStore) FetchAllHistory(ctx context.Context) error {
	s.mu.Lock()
	s.allToken++
	token := s.allToken
	s.mu.Unlock()

	history, err := s.gw.AllApprovalHistory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.allToken {
		s.logger.Debug("Discarding stale all-history response",
			zap.Uint64("token", token), zap.Uint64("latest", s.allToken))
		return nil
	}
	if err != nil {
		s.failFetch(err)
		return err
	}
	s.allHistory = history
	s.lastError = ""
	return nil
}

// PendingExpenses returns the current pending queue
func (s *ApprovalStore) PendingExpenses() []entity.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Expense(nil), s.pendingExpenses...)
}

// OwnHistory returns the employee's resolved approvals, or nil before the
// first successful fetch.
func (s *ApprovalStore) OwnHistory() *gateway.ApprovalHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownHistory
}

// AllHistory returns the manager-side resolved approvals, or nil before
// the first successful fetch.
func (s *ApprovalStore) AllHistory() *gateway.ApprovalHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allHistory
}

// Err returns the inline error from the last failed operation, or ""
func (s *ApprovalStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// failFetch records a history fetch failure. Caller holds the lock.
func (s *ApprovalStore) failFetch(err error) {
	notices := gateway.Notices(err, "Retrieving approvals failed")
	s.lastError = notices[0]
	for _, notice := range notices {
		s.notifier.Error(notice)
	}
}
