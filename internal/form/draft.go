// Package form holds the transient create/edit draft for one expense and
// its submission validation.
package form

import (
	"strconv"
	"time"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// DateLayout is the calendar-date format used by expense date fields
const DateLayout = "2006-01-02"

// Draft is the in-progress form state for creating or editing one expense.
// All fields are kept as entered text; parsing happens at validation and
// submission time.
type Draft struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ExpenseDate string `json:"expenseDate"`
	Notes       string `json:"notes"`
}

// IsEmpty returns true when no field carries a value
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Set assigns one draft field by name. Unknown names are ignored.
func (d *Draft) Set(name, value string) {
	switch name {
	case "amount":
		d.Amount = value
	case "description":
		d.Description = value
	case "category":
		d.Category = value
	case "expenseDate":
		d.ExpenseDate = value
	case "notes":
		d.Notes = value
	}
}

// FromExpense copies an existing expense's editable fields into a draft,
// used to populate an edit form. The source expense is not mutated.
func FromExpense(e *entity.Expense) Draft {
	return Draft{
		Amount:      formatAmount(e.Amount),
		Description: e.Description,
		Category:    string(e.Category),
		ExpenseDate: e.ExpenseDate.Format(DateLayout),
		Notes:       e.Notes,
	}
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// ParseDate parses the draft's expense date, or returns the zero time when
// the field is blank.
func (d Draft) ParseDate() (time.Time, error) {
	if d.ExpenseDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, d.ExpenseDate)
}
