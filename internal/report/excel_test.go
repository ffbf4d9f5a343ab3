package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

func TestExcelReporter_Write(t *testing.T) {
	expenses := []entity.Expense{
		{
			Amount:      120.50,
			Description: "Flight to Berlin",
			Category:    entity.CategoryTravel,
			ExpenseDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Status:      entity.StatusApproved,
			Submitter:   entity.UserRef{Name: "Alice"},
		},
		{
			Amount:      30,
			Description: "Team lunch",
			Category:    entity.CategoryMeals,
			Status:      entity.StatusPending,
			Submitter:   entity.UserRef{Name: "Bob"},
			Notes:       "four attendees",
		},
	}

	var buf bytes.Buffer
	reporter := NewExcelReporter(zap.NewNop())
	require.NoError(t, reporter.Write(&buf, expenses))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Expenses"}, f.GetSheetList())

	desc, err := f.GetCellValue("Expenses", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Flight to Berlin", desc)

	date, err := f.GetCellValue("Expenses", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", date)

	// totals row sits below the last expense
	label, err := f.GetCellValue("Expenses", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	total, err := f.GetCellValue("Expenses", "D4")
	require.NoError(t, err)
	assert.Equal(t, "150.5", total)
}

func TestExcelReporter_Write_Empty(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewExcelReporter(zap.NewNop())
	require.NoError(t, reporter.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Expenses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}
