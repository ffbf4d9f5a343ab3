package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avenzari/expenseflow/internal/application/port"
	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/pkg/utils"
)

const (
	minPasswordLen    = 8
	defaultSessionTTL = 24 * time.Hour
)

// Registration carries the fields of a new account request
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is a created account plus its one-time activation token.
// The token would normally travel by email; it is returned to the caller
// so the flow can complete without a mail sender.
type RegisteredUser struct {
	User            *entity.User
	ActivationToken string
}

// AuthService manages accounts and sessions
type AuthService interface {
	Register(ctx context.Context, reg Registration, role entity.Role) (*RegisteredUser, error)
	Activate(ctx context.Context, email, token string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, *entity.Session, error)
	Logout(ctx context.Context, token string) error
	UserFromSession(ctx context.Context, token string) (*entity.User, error)
	PurgeExpiredSessions(ctx context.Context) error
}

type authServiceImpl struct {
	userRepo    port.UserRepository
	sessionRepo port.SessionRepository
	sessionTTL  time.Duration
	logger      Logger
}

// NewAuthService creates a new AuthService. A non-positive sessionTTL
// falls back to the default of one day.
func NewAuthService(userRepo port.UserRepository, sessionRepo port.SessionRepository, sessionTTL time.Duration, logger Logger) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Register creates an inactive account awaiting activation
func (s *authServiceImpl) Register(ctx context.Context, reg Registration, role entity.Role) (*RegisteredUser, error) {
	var verrs ValidationErrors
	if reg.Name == "" {
		verrs = append(verrs, FieldError{Field: "name", Message: "Name is required"})
	}
	if err := utils.ValidateEmail(reg.Email); err != nil {
		verrs = append(verrs, FieldError{Field: "email", Message: "A valid email address is required"})
	}
	if len(reg.Password) < minPasswordLen {
		verrs = append(verrs, FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if existing, err := s.userRepo.GetByEmail(ctx, reg.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:              uuid.NewString(),
		Name:            reg.Name,
		Email:           reg.Email,
		Role:            role,
		IsActive:        false,
		PasswordHash:    string(hash),
		ActivationToken: uuid.NewString(),
		CreatedAt:       time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "error", err, "email", reg.Email)
		return nil, err
	}

	s.logger.Info("User registered", "id", user.ID, "role", role)
	return &RegisteredUser{User: user, ActivationToken: user.ActivationToken}, nil
}

// Activate marks an account active once its activation token is presented
func (s *authServiceImpl) Activate(ctx context.Context, email, token string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidActivation
	}
	if user.ActivationToken == "" || user.ActivationToken != token {
		return nil, ErrInvalidActivation
	}

	if err := s.userRepo.Activate(ctx, user.ID); err != nil {
		s.logger.Error("Failed to activate user", "error", err, "id", user.ID)
		return nil, err
	}

	user.IsActive = true
	s.logger.Info("User activated", "id", user.ID)
	return user, nil
}

// Login verifies credentials and opens a session
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*entity.User, *entity.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountNotActive
	}

	now := time.Now()
	sess := &entity.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		s.logger.Error("Failed to create session", "error", err, "user_id", user.ID)
		return nil, nil, err
	}

	s.logger.Info("User logged in", "id", user.ID)
	return user, sess, nil
}

// Logout deletes the session; a missing session is not an error
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// UserFromSession resolves a session token to its user
func (s *authServiceImpl) UserFromSession(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil || sess == nil {
		return nil, ErrInvalidCredentials
	}
	if sess.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// PurgeExpiredSessions removes every session past its expiry. Lookup
// already deletes expired sessions lazily; this sweep catches the ones
// never presented again.
func (s *authServiceImpl) PurgeExpiredSessions(ctx context.Context) error {
	if err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		s.logger.Error("Failed to purge expired sessions", "error", err)
		return err
	}
	return nil
}
