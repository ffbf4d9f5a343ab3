package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avenzari/expenseflow/internal/application/service"
	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/query"
	"github.com/avenzari/expenseflow/internal/report"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	authService     service.AuthService
	expenseService  service.ExpenseService
	approvalService service.ApprovalService
	reporter        *report.ExcelReporter
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	authService service.AuthService,
	expenseService service.ExpenseService,
	approvalService service.ApprovalService,
	reporter *report.ExcelReporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		expenseService:  expenseService,
		approvalService: approvalService,
		reporter:        reporter,
		logger:          logger,
	}
}

// messageBody is the plain-message error and notice shape
type messageBody struct {
	Msg string `json:"msg"`
}

// detailsBody is the structured validation error shape
type detailsBody struct {
	Details []service.FieldError `json:"details"`
}

// expenseListResponse is the response to an expense listing request
type expenseListResponse struct {
	Expenses      []entity.Expense      `json:"expenses"`
	TotalExpenses int                   `json:"totalExpenses"`
	Pagination    entity.PaginationMeta `json:"pagination"`
}

// approvalHistoryResponse is the response to an approval history request
type approvalHistoryResponse struct {
	Approvals  []entity.Approval `json:"approvals"`
	Statistics entity.Statistics `json:"statistics"`
	Employee   *entity.UserRef   `json:"employee,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// respondError maps application errors onto the wire contract: input
// rule violations become the structured details array, everything else
// a plain msg body.
func (h *Handlers) respondError(c *gin.Context, err error) {
	if verrs, ok := service.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, detailsBody{Details: verrs})
		return
	}

	status := http.StatusInternalServerError
	switch err {
	case service.ErrNotFound:
		status = http.StatusNotFound
	case service.ErrForbidden, service.ErrAccountNotActive:
		status = http.StatusForbidden
	case service.ErrNotPending, service.ErrAlreadyDecided, service.ErrEmailTaken:
		status = http.StatusConflict
	case service.ErrInvalidCredentials:
		status = http.StatusUnauthorized
	case service.ErrInvalidActivation:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(status, messageBody{Msg: "Internal server error"})
		return
	}

	c.JSON(status, messageBody{Msg: err.Error()})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	h.register(c, entity.RoleEmployee)
}

// RegisterManager handles POST /api/v1/auth/register/manager
func (h *Handlers) RegisterManager(c *gin.Context) {
	h.register(c, entity.RoleManager)
}

func (h *Handlers) register(c *gin.Context, role entity.Role) {
	var reg service.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	registered, err := h.authService.Register(c.Request.Context(), reg, role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":            registered.User,
		"activationToken": registered.ActivationToken,
	})
}

// ActivateAccount handles POST /api/v1/auth/activate-account
func (h *Handlers) ActivateAccount(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	user, err := h.authService.Activate(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	user, sess, err := h.authService.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetCookie(SessionCookie, sess.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /api/v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, messageBody{Msg: "Logged out successfully"})
}

// CurrentUser handles GET /api/v1/auth/me
func (h *Handlers) CurrentUser(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}

// ListExpenses handles GET /api/v1/expenses
func (h *Handlers) ListExpenses(c *gin.Context) {
	sess := currentSession(c)
	filter := query.FromValues(c.Request.URL.Query())

	list, err := h.expenseService.List(c.Request.Context(), sess.User.ID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenseListResponse{
		Expenses:      list.Expenses,
		TotalExpenses: list.TotalExpenses,
		Pagination:    list.Pagination,
	})
}

// ListAllExpenses handles GET /api/v1/expenses/all
func (h *Handlers) ListAllExpenses(c *gin.Context) {
	list, err := h.expenseService.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenseListResponse{
		Expenses:      list.Expenses,
		TotalExpenses: list.TotalExpenses,
		Pagination:    list.Pagination,
	})
}

// CreateExpense handles POST /api/v1/expenses
func (h *Handlers) CreateExpense(c *gin.Context) {
	sess := currentSession(c)

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), sess.User.Ref(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *Handlers) UpdateExpense(c *gin.Context) {
	sess := currentSession(c)

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), c.Param("id"), sess.User.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *Handlers) DeleteExpense(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")

	if err := h.expenseService.Delete(c.Request.Context(), id, sess.User.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenseId": id})
}

// ExportExpenses handles GET /api/v1/expenses/export
func (h *Handlers) ExportExpenses(c *gin.Context) {
	sess := currentSession(c)
	filter := query.FromValues(c.Request.URL.Query())
	// export covers every matching row, not one page
	filter.Page = 1
	filter.Limit = 0

	list, err := h.expenseService.List(c.Request.Context(), sess.User.ID, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.writeReport(c, list.Expenses)
}

// ExportAllExpenses handles GET /api/v1/expenses/all/export
func (h *Handlers) ExportAllExpenses(c *gin.Context) {
	list, err := h.expenseService.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.writeReport(c, list.Expenses)
}

func (h *Handlers) writeReport(c *gin.Context, expenses []entity.Expense) {
	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.reporter.Write(c.Writer, expenses); err != nil {
		h.logger.Error("Failed to write expense report", "error", err)
		// headers are already out; nothing sensible to render
		c.Abort()
	}
}

// DecideApproval handles PUT /api/v1/approvals/:id
func (h *Handlers) DecideApproval(c *gin.Context) {
	sess := currentSession(c)

	var decision struct {
		Status       entity.ExpenseStatus `json:"status"`
		RejectReason string               `json:"rejectReason"`
	}
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, messageBody{Msg: "Invalid request body"})
		return
	}

	expense, err := h.approvalService.Decide(c.Request.Context(), c.Param("id"), sess.User.Ref(), decision.Status, decision.RejectReason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// OwnApprovalHistory handles GET /api/v1/approvals/
func (h *Handlers) OwnApprovalHistory(c *gin.Context) {
	sess := currentSession(c)

	history, err := h.approvalService.HistoryBySubmitter(c.Request.Context(), sess.User.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	employee := sess.User.Ref()
	c.JSON(http.StatusOK, approvalHistoryResponse{
		Approvals:  history.Approvals,
		Statistics: history.Statistics,
		Employee:   &employee,
	})
}

// AllApprovalHistory handles GET /api/v1/approvals/all
func (h *Handlers) AllApprovalHistory(c *gin.Context) {
	history, err := h.approvalService.HistoryAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, approvalHistoryResponse{
		Approvals:  history.Approvals,
		Statistics: history.Statistics,
	})
}
