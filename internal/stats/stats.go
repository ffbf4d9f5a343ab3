// Package stats derives dashboard summaries from an expense collection.
// All derivations are pure; they never touch the network or mutate their
// input.
package stats

import (
	"sort"
	"time"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// Summary is the headline dashboard card data
type Summary struct {
	TotalAmount float64
	Pending     int
	Approved    int
	Rejected    int
}

// Summarize computes totals and per-status counts over a collection
func Summarize(expenses []entity.Expense) Summary {
	var s Summary
	for _, e := range expenses {
		s.TotalAmount += e.Amount
		switch e.Status {
		case entity.StatusPending:
			s.Pending++
		case entity.StatusApproved:
			s.Approved++
		case entity.StatusRejected:
			s.Rejected++
		}
	}
	return s
}

// ByCategory totals expense amounts per category. Expenses with an
// unknown category are bucketed under "other".
func ByCategory(expenses []entity.Expense) map[entity.Category]float64 {
	totals := make(map[entity.Category]float64)
	for _, e := range expenses {
		category := e.Category
		if !category.IsValid() {
			category = entity.CategoryOther
		}
		totals[category] += e.Amount
	}
	return totals
}

// MonthlyPoint is one month's per-status amount totals
type MonthlyPoint struct {
	Month    string
	Pending  float64
	Approved float64
	Rejected float64
}

// monthLabel formats a month the way the dashboard displays it
func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// MonthlyTrend aggregates amounts per expense month and status, returning
// at most the most recent six months in chronological order.
func MonthlyTrend(expenses []entity.Expense) []MonthlyPoint {
	byMonth := make(map[time.Time]*MonthlyPoint)
	for _, e := range expenses {
		month := time.Date(e.ExpenseDate.Year(), e.ExpenseDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		point, ok := byMonth[month]
		if !ok {
			point = &MonthlyPoint{Month: monthLabel(month)}
			byMonth[month] = point
		}
		switch e.Status {
		case entity.StatusPending:
			point.Pending += e.Amount
		case entity.StatusApproved:
			point.Approved += e.Amount
		case entity.StatusRejected:
			point.Rejected += e.Amount
		}
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if len(months) > 6 {
		months = months[len(months)-6:]
	}

	trend := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		trend = append(trend, *byMonth[m])
	}
	return trend
}
