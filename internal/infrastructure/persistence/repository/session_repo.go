package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// SessionRepository implements port.SessionRepository
type SessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB, logger *zap.Logger) port.SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create session", zap.String("user_id", session.UserID), zap.Error(err))
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session by its token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = ?
	`

	var session entity.Session
	err := resolveExecutor(ctx, r.db).QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session: %w", sql.ErrNoRows)
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = ?`

	if _, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query, token); err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes every session past its expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP`

	result, err := resolveExecutor(ctx, r.db).ExecContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to delete expired sessions", zap.Error(err))
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		r.logger.Info("Expired sessions removed", zap.Int64("count", affected))
	}

	return nil
}

// Verify interface compliance
var _ port.SessionRepository = (*SessionRepository)(nil)
