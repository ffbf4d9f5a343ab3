package store

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/form"
	"github.com/avenzari/expenseflow/internal/gateway"
)

// ExpenseSnapshot is an atomic read of the fetched expense page. The three
// fields always come from the same list response; no reader ever observes
// a replaced collection alongside stale pagination.
type ExpenseSnapshot struct {
	Expenses      []entity.Expense
	TotalExpenses int
	Pagination    *entity.PaginationMeta
}

// ExpenseStore owns the fetched page of expenses, the running total, the
// pagination metadata and the create/edit form draft. It is the only
// component that calls the gateway's expense CRUD endpoints.
type ExpenseStore struct {
	mu       sync.Mutex
	gw       ExpenseGateway
	notifier Notifier
	logger   *zap.Logger

	expenses            []entity.Expense
	allEmployeeExpenses []entity.Expense
	totalExpenses       int
	pagination          *entity.PaginationMeta
	draft               form.Draft
	submitting          bool
	lastError           string

	// Monotonic request tokens, one per fetch slice. A response is applied
	// only when its token is still the latest issued for that slice, so a
	// slow response never overwrites newer state with stale data.
	listToken uint64
	allToken  uint64
}

// NewExpenseStore creates an expense store backed by the given gateway
func NewExpenseStore(gw ExpenseGateway, notifier Notifier, logger *zap.Logger) *ExpenseStore {
	return &ExpenseStore{gw: gw, notifier: notifier, logger: logger}
}

// FetchList replaces the expense page with the result of listing the given
// canonical query (nil or empty means the default first page). On failure
// the previously loaded data is left untouched, the error is surfaced as a
// notice and stored for inline display, and pagination does not change.
// A response that resolves after a newer FetchList was issued is discarded.
func (s *ExpenseStore) FetchList(ctx context.Context, query url.Values) error {
	s.mu.Lock()
	s.listToken++
	token := s.listToken
	s.mu.Unlock()

	list, err := s.gw.ListExpenses(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.listToken {
		s.logger.Debug("Discarding stale expense list response",
			zap.Uint64("token", token), zap.Uint64("latest", s.listToken))
		return nil
	}
	if err != nil {
		s.failFetch(err, "Retrieving expenses failed")
		return err
	}

	s.expenses = list.Expenses
	s.totalExpenses = list.TotalExpenses
	s.pagination = list.Pagination
	s.lastError = ""
	return nil
}

// FetchAllEmployee replaces the manager-side collection of every
// employee's expenses. Same failure and staleness rules as FetchList.
func (s *ExpenseStore) FetchAllEmployee(ctx context.Context) error {
	s.mu.Lock()
	s.allToken++
	token := s.allToken
	s.mu.Unlock()

	list, err := s.gw.ListAllExpenses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.allToken {
		s.logger.Debug("Discarding stale all-employee list response",
			zap.Uint64("token", token), zap.Uint64("latest", s.allToken))
		return nil
	}
	if err != nil {
		s.failFetch(err, "Retrieving expenses failed")
		return err
	}

	s.allEmployeeExpenses = list.Expenses
	s.pagination = list.Pagination
	s.lastError = ""
	return nil
}

// Create submits the current draft as a new expense. The draft is
// validated first and an invalid draft fails locally, before any request.
// On success the draft is cleared; the list is not refreshed here, the
// caller decides when to re-fetch. On failure the draft is preserved so
// the user can retry.
func (s *ExpenseStore) Create(ctx context.Context) error {
	payload, err := s.beginSubmit()
	if err != nil {
		return err
	}

	_, err = s.gw.CreateExpense(ctx, payload)
	return s.endSubmit(err, "Expense created successfully", "Expense creation failed")
}

// Edit submits the current draft as an update to an existing expense. The
// backend enforces that the expense is still pending; a concurrent
// resolution surfaces here as a request failure with the draft preserved.
func (s *ExpenseStore) Edit(ctx context.Context, id string) error {
	payload, err := s.beginSubmit()
	if err != nil {
		return err
	}

	_, err = s.gw.UpdateExpense(ctx, id, payload)
	return s.endSubmit(err, "Expense edited successfully", "Expense edit failed")
}

// beginSubmit validates the draft and marks a submission in flight. A
// second submission while one is pending fails fast with
// ErrSubmitInFlight; the store does not queue.
func (s *ExpenseStore) beginSubmit() (gateway.ExpensePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return gateway.ExpensePayload{}, ErrSubmitInFlight
	}
	if err := form.Validate(s.draft); err != nil {
		s.notifier.Error(err.Error())
		return gateway.ExpensePayload{}, err
	}
	payload, err := gateway.PayloadFromDraft(s.draft)
	if err != nil {
		return gateway.ExpensePayload{}, err
	}
	s.submitting = true
	return payload, nil
}

func (s *ExpenseStore) endSubmit(err error, successMsg, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.lastError = gateway.Notices(err, fallback)[0]
		s.notifyError(err, fallback)
		return err
	}
	s.draft = form.Draft{}
	s.lastError = ""
	s.notifier.Success(successMsg)
	return nil
}

// DeleteOne soft-deletes an expense. On success the matching entry is
// removed from the in-memory collection and the running total is set to
// the new collection length immediately, before any re-fetch resolves.
// The count is an optimistic client-side reconciliation, not a
// server-confirmed total; the returned refetch re-runs the default
// first-page query to resynchronize with the backend. The caller invokes
// it, so the reconciliation and the refetch stay independent effects.
func (s *ExpenseStore) DeleteOne(ctx context.Context, id string) (func(context.Context) error, error) {
	deletedID, err := s.gw.DeleteExpense(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.notifyError(err, "Expense deletion failed")
		s.lastError = gateway.Notices(err, "Expense deletion failed")[0]
		return nil, err
	}

	kept := s.expenses[:0:0]
	for _, e := range s.expenses {
		if e.ID != deletedID {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	s.totalExpenses = len(kept)
	s.lastError = ""
	s.notifier.Success("Expense deleted successfully")

	refetch := func(ctx context.Context) error {
		return s.FetchList(ctx, nil)
	}
	return refetch, nil
}

// LoadDraftFromExisting copies an expense's editable fields into the
// draft to populate an edit form. The source expense is not mutated.
func (s *ExpenseStore) LoadDraftFromExisting(e *entity.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = form.FromExpense(e)
}

// SetDraftField assigns one draft field by name
func (s *ExpenseStore) SetDraftField(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Set(name, value)
}

// ClearDraft resets the draft to empty defaults
func (s *ExpenseStore) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = form.Draft{}
}

// Draft returns the current form draft
func (s *ExpenseStore) Draft() form.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Snapshot returns an atomic read of the fetched page
func (s *ExpenseStore) Snapshot() ExpenseSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExpenseSnapshot{
		Expenses:      append([]entity.Expense(nil), s.expenses...),
		TotalExpenses: s.totalExpenses,
		Pagination:    s.pagination,
	}
}

// AllEmployeeExpenses returns the manager-side collection
func (s *ExpenseStore) AllEmployeeExpenses() []entity.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Expense(nil), s.allEmployeeExpenses...)
}

// Err returns the inline error from the last failed operation, or ""
func (s *ExpenseStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Submitting reports whether a create or edit is in flight
func (s *ExpenseStore) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// failFetch records a fetch failure: prior data stays, the error becomes
// inline state and a notice. Caller holds the lock.
func (s *ExpenseStore) failFetch(err error, fallback string) {
	s.lastError = gateway.Notices(err, fallback)[0]
	s.notifyError(err, fallback)
}

func (s *ExpenseStore) notifyError(err error, fallback string) {
	for _, notice := range gateway.Notices(err, fallback) {
		s.notifier.Error(notice)
	}
}
