package entity

import (
	"fmt"
	"time"
)

// ExpenseStatus represents the lifecycle state of an expense
type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
)

var validStatuses = map[ExpenseStatus]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// IsValid returns true if the status is a known expense status
func (s ExpenseStatus) IsValid() bool {
	return validStatuses[s]
}

// IsResolved returns true if the status is terminal (approved or rejected)
func (s ExpenseStatus) IsResolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// String returns the string representation of the status
func (s ExpenseStatus) String() string {
	return string(s)
}

// Category represents an expense category
type Category string

const (
	CategoryTravel         Category = "travel"
	CategoryMeals          Category = "meals"
	CategoryOfficeSupplies Category = "office_supplies"
	CategoryEquipment      Category = "equipment"
	CategoryTraining       Category = "training"
	CategoryOther          Category = "other"
)

var validCategories = map[Category]bool{
	CategoryTravel:         true,
	CategoryMeals:          true,
	CategoryOfficeSupplies: true,
	CategoryEquipment:      true,
	CategoryTraining:       true,
	CategoryOther:          true,
}

// IsValid returns true if the category is a known expense category
func (c Category) IsValid() bool {
	return validCategories[c]
}

// Categories returns all valid expense categories in display order
func Categories() []Category {
	return []Category{
		CategoryTravel,
		CategoryMeals,
		CategoryOfficeSupplies,
		CategoryEquipment,
		CategoryTraining,
		CategoryOther,
	}
}

// UserRef is a lightweight reference to the user who submitted an expense
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Expense represents a single reimbursement request
type Expense struct {
	ID          string        `json:"id"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	ExpenseDate time.Time     `json:"expenseDate"`
	Notes       string        `json:"notes,omitempty"`
	Status      ExpenseStatus `json:"status"`
	Submitter   UserRef       `json:"submitter"`
	Deleted     bool          `json:"-"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsPending returns true if the expense is still awaiting a decision
func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

// CanEdit returns true while the expense may still be modified by its submitter
func (e *Expense) CanEdit() bool {
	return e.Status == StatusPending
}

// Approve transitions a pending expense to approved.
// The transition is one-way: resolved expenses can never re-enter pending.
func (e *Expense) Approve() error {
	if e.Status != StatusPending {
		return fmt.Errorf("expense %s is %s, only pending expenses can be approved", e.ID, e.Status)
	}
	e.Status = StatusApproved
	e.UpdatedAt = time.Now()
	return nil
}

// Reject transitions a pending expense to rejected. A non-empty reason is required.
func (e *Expense) Reject(reason string) error {
	if e.Status != StatusPending {
		return fmt.Errorf("expense %s is %s, only pending expenses can be rejected", e.ID, e.Status)
	}
	if reason == "" {
		return fmt.Errorf("a reject reason is required")
	}
	e.Status = StatusRejected
	e.UpdatedAt = time.Now()
	return nil
}
