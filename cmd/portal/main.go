// Command portal is a headless client for the expense portal API. It
// drives the same stores the browser frontend uses: log in, list and
// page through expenses, inspect approval history and print summary
// statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/gateway"
	"github.com/avenzari/expenseflow/internal/paginate"
	"github.com/avenzari/expenseflow/internal/query"
	"github.com/avenzari/expenseflow/internal/session"
	"github.com/avenzari/expenseflow/internal/stats"
	"github.com/avenzari/expenseflow/internal/store"
	"github.com/avenzari/expenseflow/pkg/utils"
)

func main() {
	var (
		apiURL   = flag.String("api", gateway.DefaultConfig().BaseURL, "portal API base URL")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		action   = flag.String("action", "expenses", "expenses | delete | history | pending | stats")
		id       = flag.String("id", "", "expense id (delete)")
		status   = flag.String("status", "", "filter by status")
		category = flag.String("category", "", "filter by category")
		search   = flag.String("search", "", "filter by description search")
		page     = flag.Int("page", 1, "page number")
		limit    = flag.Int("limit", 10, "page size")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{Level: "warn", OutputPath: "stderr", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client, err := gateway.NewClient(gateway.Config{BaseURL: *apiURL, Timeout: 15 * time.Second}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	user, err := client.Login(ctx, gateway.Credentials{Email: *email, Password: *password})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}
	sess := &session.Session{User: *user}
	fmt.Printf("Logged in as %s (%s)\n\n", user.Name, user.Role)

	notifier := store.LogNotifier{Logger: logger}
	expenses := store.NewExpenseStore(client, notifier, logger)
	approvals := store.NewApprovalStore(client, notifier, logger)

	switch *action {
	case "expenses":
		filter := query.New()
		filter.Status = *status
		filter.Category = *category
		filter.Search = *search
		filter.Set("limit", strconv.Itoa(*limit))
		filter.Set("page", strconv.Itoa(*page))
		err = showExpenses(ctx, expenses, filter)
	case "delete":
		err = deleteExpense(ctx, expenses, *id)
	case "history":
		err = showHistory(ctx, approvals)
	case "pending":
		err = showPending(ctx, expenses, approvals, sess)
	case "stats":
		err = showStats(ctx, expenses, filterFromFlags(*status, *category, *search))
	default:
		err = fmt.Errorf("unknown action %q", *action)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func filterFromFlags(status, category, search string) query.Filter {
	filter := query.New()
	filter.Status = status
	filter.Category = category
	filter.Search = search
	return filter
}

func showExpenses(ctx context.Context, expenses *store.ExpenseStore, filter query.Filter) error {
	if err := expenses.FetchList(ctx, filter.Values()); err != nil {
		return err
	}

	snap := expenses.Snapshot()
	fmt.Printf("%d expense(s)\n", snap.TotalExpenses)
	printExpenses(snap.Expenses)

	if snap.Pagination != nil {
		fmt.Printf("\n%s\n", renderPager(snap.Pagination.CurrentPage, snap.Pagination.TotalPages))
	}
	return nil
}

func deleteExpense(ctx context.Context, expenses *store.ExpenseStore, id string) error {
	if id == "" {
		return fmt.Errorf("-id is required for delete")
	}

	refetch, err := expenses.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	// resynchronize the page with the backend before printing
	if err := refetch(ctx); err != nil {
		return err
	}

	snap := expenses.Snapshot()
	fmt.Printf("Deleted %s. %d expense(s) remaining\n", id, snap.TotalExpenses)
	printExpenses(snap.Expenses)
	return nil
}

func showHistory(ctx context.Context, approvals *store.ApprovalStore) error {
	if err := approvals.FetchOwnHistory(ctx); err != nil {
		return err
	}

	history := approvals.OwnHistory()
	fmt.Printf("Treated: %d   Approved: %d   Rejected: %d\n\n",
		history.Statistics.NumOfTreatedExpenses,
		history.Statistics.ApprovedCount,
		history.Statistics.RejectedCount)

	for _, approval := range history.Approvals {
		line := fmt.Sprintf("%-10s %s", approval.Status, approval.DecidedAt.Format("2006-01-02"))
		if approval.Expense != nil {
			line += "  " + approval.Expense.Description
		}
		if approval.RejectReason != "" {
			line += "  (" + approval.RejectReason + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func showPending(ctx context.Context, expenses *store.ExpenseStore, approvals *store.ApprovalStore, sess *session.Session) error {
	if !sess.IsManager() {
		return fmt.Errorf("the pending queue is available to managers only")
	}

	if err := expenses.FetchAllEmployee(ctx); err != nil {
		return err
	}
	approvals.LoadPendingQueue(expenses.AllEmployeeExpenses())

	pending := approvals.PendingExpenses()
	fmt.Printf("%d expense(s) awaiting a decision\n", len(pending))
	printExpenses(pending)
	return nil
}

func showStats(ctx context.Context, expenses *store.ExpenseStore, filter query.Filter) error {
	// statistics cover every matching expense, so page through them all
	filter.Set("limit", "50")
	var all []entity.Expense
	for {
		if err := expenses.FetchList(ctx, filter.Values()); err != nil {
			return err
		}
		snap := expenses.Snapshot()
		all = append(all, snap.Expenses...)
		if snap.Pagination == nil || !snap.Pagination.HasNextPage {
			break
		}
		filter.Set("page", strconv.Itoa(snap.Pagination.CurrentPage+1))
	}

	summary := stats.Summarize(all)
	fmt.Printf("Expenses: %d   Total: %.2f   Pending: %d   Approved: %d   Rejected: %d\n\n",
		len(all), summary.TotalAmount, summary.Pending, summary.Approved, summary.Rejected)

	fmt.Println("By category:")
	for category, amount := range stats.ByCategory(all) {
		fmt.Printf("  %-16s %10.2f\n", category, amount)
	}

	fmt.Println("\nLast six months:")
	for _, point := range stats.MonthlyTrend(all) {
		fmt.Printf("  %-10s  pending %.2f  approved %.2f  rejected %.2f\n",
			point.Month, point.Pending, point.Approved, point.Rejected)
	}
	return nil
}

func printExpenses(expenses []entity.Expense) {
	for _, e := range expenses {
		date := ""
		if !e.ExpenseDate.IsZero() {
			date = e.ExpenseDate.Format("2006-01-02")
		}
		fmt.Printf("%-10s %10.2f  %-12s %-10s %s\n",
			date, e.Amount, e.Category, e.Status, e.Description)
	}
}

// renderPager mirrors the portal's pagination strip, e.g.
// "1 ... 8 9 [10] 11 12 ... 20".
func renderPager(currentPage, totalPages int) string {
	window := paginate.Compute(currentPage, totalPages)

	var parts []string
	if window.ShowFirst() {
		parts = append(parts, "1")
	}
	if window.LeadingEllipsis {
		parts = append(parts, "...")
	}
	for _, p := range window.Pages {
		if p == currentPage {
			parts = append(parts, fmt.Sprintf("[%d]", p))
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if window.TrailingEllipsis {
		parts = append(parts, "...")
	}
	if window.ShowLast(totalPages) {
		parts = append(parts, strconv.Itoa(totalPages))
	}
	return strings.Join(parts, " ")
}
