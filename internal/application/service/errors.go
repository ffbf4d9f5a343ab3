package service

import (
	"errors"
	"strings"
)

// Sentinel errors the HTTP adapter maps to status codes
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrNotPending         = errors.New("expense is no longer pending")
	ErrAlreadyDecided     = errors.New("expense already has a decision")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotActive   = errors.New("account is not activated")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidActivation  = errors.New("invalid activation token")
)

// FieldError is one violated input rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates the violated rules of one request. The HTTP
// adapter renders it as the structured details array.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if it is one
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
