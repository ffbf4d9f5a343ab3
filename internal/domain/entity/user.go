package entity

import "time"

// Role represents a user's capability level
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

// User represents a portal account
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	PasswordHash string `json:"-"`
	// ActivationToken is consumed once during account activation
	ActivationToken string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Ref returns the lightweight reference embedded in expenses
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Session represents an authenticated browser session
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired returns true if the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
