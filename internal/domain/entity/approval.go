package entity

import "time"

// Approval records a manager's decision on one expense.
// Exactly one approval exists per resolved expense, and it is immutable
// once created.
type Approval struct {
	ID           string        `json:"id"`
	ExpenseID    string        `json:"expenseId"`
	ManagerID    string        `json:"managerId"`
	Status       ExpenseStatus `json:"status"`
	RejectReason string        `json:"rejectReason,omitempty"`
	DecidedAt    time.Time     `json:"decidedAt"`

	// Expense is the decided expense snapshot, populated on history reads.
	Expense *Expense `json:"expense,omitempty"`
}

// Statistics summarizes a set of resolved approvals
type Statistics struct {
	NumOfTreatedExpenses int `json:"numOfTreatedExpenses"`
	ApprovedCount        int `json:"approvedCount"`
	RejectedCount        int `json:"rejectedCount"`
}

// Summarize computes decision statistics over a set of approvals
func Summarize(approvals []Approval) Statistics {
	stats := Statistics{NumOfTreatedExpenses: len(approvals)}
	for _, a := range approvals {
		switch a.Status {
		case StatusApproved:
			stats.ApprovedCount++
		case StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats
}
