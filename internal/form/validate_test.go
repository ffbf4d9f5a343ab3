package form

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

func validDraft() Draft {
	return Draft{
		Amount:      "42.50",
		Description: "Team lunch with client",
		Category:    "meals",
		ExpenseDate: "2024-03-15",
		Notes:       "",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr string
	}{
		{"valid draft", func(d *Draft) {}, ""},
		{"missing amount", func(d *Draft) { d.Amount = "" }, "Amount is required"},
		{"zero amount", func(d *Draft) { d.Amount = "0" }, "Amount must be a positive number"},
		{"negative amount", func(d *Draft) { d.Amount = "-5" }, "Amount must be a positive number"},
		{"non-numeric amount", func(d *Draft) { d.Amount = "abc" }, "Amount must be a positive number"},
		{"minimal positive amount", func(d *Draft) { d.Amount = "0.01" }, ""},
		{"missing description", func(d *Draft) { d.Description = "" }, "Description is required"},
		{"two char description", func(d *Draft) { d.Description = "ab" }, "Description must be at least 3 characters"},
		{"three char description", func(d *Draft) { d.Description = "abc" }, ""},
		{"oversize description", func(d *Draft) { d.Description = strings.Repeat("x", 501) }, "Description must be less than 500 characters"},
		{"max description", func(d *Draft) { d.Description = strings.Repeat("x", 500) }, ""},
		{"oversize notes", func(d *Draft) { d.Notes = strings.Repeat("n", 1001) }, "Notes must be less than 1000 characters"},
		{"max notes", func(d *Draft) { d.Notes = strings.Repeat("n", 1000) }, ""},
		{"category optional", func(d *Draft) { d.Category = "" }, ""},
		{"date optional", func(d *Draft) { d.ExpenseDate = "" }, ""},
		{"malformed date", func(d *Draft) { d.ExpenseDate = "15/03/2024" }, "Expense date must be a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := Validate(d)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidate_ShortCircuits(t *testing.T) {
	// Several rules are violated at once; only the first is reported.
	d := Draft{Amount: "", Description: "x"}
	err := Validate(d)
	require.Error(t, err)
	assert.Equal(t, "Amount is required", err.Error())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestTrimmedReason(t *testing.T) {
	reason, ok := TrimmedReason("  too expensive  ")
	assert.True(t, ok)
	assert.Equal(t, "too expensive", reason)

	_, ok = TrimmedReason("   ")
	assert.False(t, ok)

	_, ok = TrimmedReason("")
	assert.False(t, ok)
}

func TestFromExpense(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	e := &entity.Expense{
		ID:          "exp-1",
		Amount:      19.99,
		Description: "Monitor cable",
		Category:    entity.CategoryEquipment,
		ExpenseDate: date,
		Notes:       "usb-c",
		Status:      entity.StatusPending,
	}

	d := FromExpense(e)

	assert.Equal(t, "19.99", d.Amount)
	assert.Equal(t, "Monitor cable", d.Description)
	assert.Equal(t, "equipment", d.Category)
	assert.Equal(t, "2024-03-15", d.ExpenseDate)
	assert.Equal(t, "usb-c", d.Notes)
	assert.Equal(t, entity.StatusPending, e.Status, "source expense is untouched")
}

func TestDraft_Set(t *testing.T) {
	var d Draft
	d.Set("amount", "12")
	d.Set("description", "Pens")
	d.Set("nonsense", "ignored")

	assert.Equal(t, "12", d.Amount)
	assert.Equal(t, "Pens", d.Description)
	assert.False(t, d.IsEmpty())

	assert.True(t, Draft{}.IsEmpty())
}
