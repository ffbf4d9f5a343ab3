// Package session models the authenticated user handed in by the
// authentication boundary and the single capability check the routing
// layer performs. Role checks happen once at that boundary instead of
// being scattered per view.
package session

import "github.com/avenzari/expenseflow/internal/domain/entity"

// Session is the current user's authenticated context
type Session struct {
	User entity.User
}

// Allowed reports whether the session's role is one of the allowed roles.
// An empty allow list means any authenticated user.
func (s *Session) Allowed(roles ...entity.Role) bool {
	if s == nil || s.User.ID == "" {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if s.User.Role == role {
			return true
		}
	}
	return false
}

// IsManager reports whether the session belongs to a manager
func (s *Session) IsManager() bool {
	return s.Allowed(entity.RoleManager)
}
