package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new account
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (
			id, name, email, role, is_active, password_hash, activation_token, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.IsActive,
		user.PasswordHash,
		user.ActivationToken,
		user.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}) (*entity.User, error) {
	query := `
		SELECT id, name, email, role, is_active, password_hash, activation_token, created_at
		FROM users
		WHERE ` + where

	var user entity.User
	var activationToken sql.NullString

	err := resolveExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.PasswordHash,
		&activationToken,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", sql.ErrNoRows)
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.ActivationToken = activationToken.String
	return &user, nil
}

// Activate marks an account active and burns its activation token
func (r *UserRepository) Activate(ctx context.Context, id string) error {
	query := `UPDATE users SET is_active = 1, activation_token = NULL WHERE id = ?`

	result, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to activate user", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to activate user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", id, sql.ErrNoRows)
	}

	return nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
