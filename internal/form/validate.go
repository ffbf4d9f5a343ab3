package form

import (
	"strconv"
	"strings"
)

const (
	minDescriptionLen = 3
	maxDescriptionLen = 500
	maxNotesLen       = 1000
)

// ValidationError is a local form validation failure. It is reported to
// the user directly and never treated as a system fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a draft against the submission rules and returns the
// first violated rule's error, or nil. Validation short-circuits: it does
// not aggregate all violations in one pass. Category and expense date are
// structurally optional here; marking them required is left to the field
// UI.
func Validate(d Draft) error {
	if d.Amount == "" {
		return &ValidationError{Field: "amount", Message: "Amount is required"}
	}
	amount, err := strconv.ParseFloat(d.Amount, 64)
	if err != nil || amount <= 0 {
		return &ValidationError{Field: "amount", Message: "Amount must be a positive number"}
	}

	if d.Description == "" {
		return &ValidationError{Field: "description", Message: "Description is required"}
	}
	if len(d.Description) < minDescriptionLen {
		return &ValidationError{Field: "description", Message: "Description must be at least 3 characters"}
	}
	if len(d.Description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Message: "Description must be less than 500 characters"}
	}

	if len(d.Notes) > maxNotesLen {
		return &ValidationError{Field: "notes", Message: "Notes must be less than 1000 characters"}
	}

	if d.ExpenseDate != "" {
		if _, err := d.ParseDate(); err != nil {
			return &ValidationError{Field: "expenseDate", Message: "Expense date must be a valid date"}
		}
	}

	return nil
}

// TrimmedReason normalizes a reject reason, returning the trimmed text and
// whether anything remains. A blank reason must fail fast locally, before
// any decision request is issued.
func TrimmedReason(reason string) (string, bool) {
	trimmed := strings.TrimSpace(reason)
	return trimmed, trimmed != ""
}
