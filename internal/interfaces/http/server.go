// Package http provides the HTTP adapter for the application layer.
// Handlers translate requests into application service calls and render
// the portal's wire contract.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avenzari/expenseflow/internal/application/service"
	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/report"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         5000,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config          ServerConfig
	httpServer      *http.Server
	router          *gin.Engine
	authService     service.AuthService
	expenseService  service.ExpenseService
	approvalService service.ApprovalService
	reporter        *report.ExcelReporter
	logger          Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	authService service.AuthService,
	expenseService service.ExpenseService,
	approvalService service.ApprovalService,
	reporter *report.ExcelReporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:          config,
		router:          router,
		authService:     authService,
		expenseService:  expenseService,
		approvalService: approvalService,
		reporter:        reporter,
		logger:          logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.authService, s.expenseService, s.approvalService, s.reporter, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/register/manager", handlers.RegisterManager)
		auth.POST("/activate-account", handlers.ActivateAccount)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/me", s.requireSession(), handlers.CurrentUser)
	}

	expenses := api.Group("/expenses", s.requireSession())
	{
		expenses.GET("", handlers.ListExpenses)
		expenses.POST("", handlers.CreateExpense)
		expenses.PUT("/:id", handlers.UpdateExpense)
		expenses.DELETE("/:id", handlers.DeleteExpense)
		expenses.GET("/export", handlers.ExportExpenses)
		expenses.GET("/all", s.requireRole(entity.RoleManager), handlers.ListAllExpenses)
		expenses.GET("/all/export", s.requireRole(entity.RoleManager), handlers.ExportAllExpenses)
	}

	approvals := api.Group("/approvals", s.requireSession())
	{
		approvals.GET("/", handlers.OwnApprovalHistory)
		approvals.GET("/all", s.requireRole(entity.RoleManager), handlers.AllApprovalHistory)
		approvals.PUT("/:id", s.requireRole(entity.RoleManager), handlers.DecideApproval)
	}
}

// Start starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
