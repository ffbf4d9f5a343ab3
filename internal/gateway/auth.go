package gateway

import (
	"context"
	"net/http"

	"github.com/avenzari/expenseflow/internal/domain/entity"
)

// RegisterPayload is the request body for account registration
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the request body for login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivatePayload is the request body for account activation
type ActivatePayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegisterResult is the response to a registration request. The activation
// token is delivered out of band in a real deployment; the backend also
// returns it here so the activation step can be completed without email.
type RegisterResult struct {
	User            entity.User `json:"user"`
	ActivationToken string      `json:"activationToken"`
}

type userEnvelope struct {
	User entity.User `json:"user"`
}

// Register creates an employee account awaiting activation
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterManager creates a manager account awaiting activation
func (c *Client) RegisterManager(ctx context.Context, payload RegisterPayload) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.do(ctx, http.MethodPost, "/auth/register/manager", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ActivateAccount activates a registered account with its activation token
func (c *Client) ActivateAccount(ctx context.Context, payload ActivatePayload) (*entity.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/activate-account", nil, payload, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// Login authenticates and stores the session cookie for later requests
func (c *Client) Login(ctx context.Context, creds Credentials) (*entity.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// Logout ends the current session
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// CurrentUser fetches the authenticated user for the current session
func (c *Client) CurrentUser(ctx context.Context) (*entity.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}
