package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/application/service"
	"github.com/avenzari/expenseflow/internal/config"
	"github.com/avenzari/expenseflow/internal/infrastructure/persistence/repository"
	"github.com/avenzari/expenseflow/internal/infrastructure/persistence/sqlite"
	httpadapter "github.com/avenzari/expenseflow/internal/interfaces/http"
	"github.com/avenzari/expenseflow/internal/report"
	"github.com/avenzari/expenseflow/pkg/database"
	"github.com/avenzari/expenseflow/pkg/utils"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting ExpenseFlow portal backend",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db, logger)

	// Repositories
	expenseRepo := repository.NewExpenseRepository(db, logger)
	approvalRepo := repository.NewApprovalRepository(db, logger)
	userRepo := repository.NewUserRepository(db, logger)
	sessionRepo := repository.NewSessionRepository(db, logger)

	// Services
	serviceLogger := &zapLoggerAdapter{logger: logger}
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.Auth.SessionTTL, serviceLogger)
	expenseService := service.NewExpenseService(expenseRepo, serviceLogger)
	approvalService := service.NewApprovalService(expenseRepo, approvalRepo, txManager, serviceLogger)

	reporter := report.NewExcelReporter(logger)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		authService,
		expenseService,
		approvalService,
		reporter,
		serviceLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Hourly sweep for sessions that expired without being presented again
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := authService.PurgeExpiredSessions(ctx); err != nil {
					logger.Warn("Expired session sweep failed", zap.Error(err))
				}
			}
		}
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// zapLoggerAdapter adapts zap.Logger to the Logger interfaces the
// service and http layers consume.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
