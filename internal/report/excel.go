// Package report renders expense listings as Excel workbooks for
// download and archiving.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

const sheetName = "Expenses"

var headers = []string{"Date", "Description", "Category", "Amount", "Status", "Submitted By", "Notes"}

// ExcelReporter builds expense report workbooks
type ExcelReporter struct {
	logger *zap.Logger
}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter(logger *zap.Logger) *ExcelReporter {
	return &ExcelReporter{logger: logger}
}

// Write renders the expenses as a single-sheet workbook and streams it
// to w. Rows keep the order they were passed in; a totals row closes
// the sheet.
func (r *ExcelReporter) Write(w io.Writer, expenses []entity.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	var total float64
	for i, expense := range expenses {
		row := i + 2
		values := []interface{}{
			formatDate(expense.ExpenseDate),
			expense.Description,
			string(expense.Category),
			expense.Amount,
			string(expense.Status),
			expense.Submitter.Name,
			expense.Notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
		total += expense.Amount
	}

	totalRow := len(expenses) + 2
	totalLabelCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	totalValueCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	if err := f.SetCellValue(sheetName, totalLabelCell, "Total"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalValueCell, total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	r.logger.Info("Expense report generated", zap.Int("rows", len(expenses)))
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
