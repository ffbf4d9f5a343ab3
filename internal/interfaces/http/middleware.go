package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avenzari/expenseflow/internal/domain/entity"
	"github.com/avenzari/expenseflow/internal/session"
)

// SessionCookie is the name of the browser session cookie
const SessionCookie = "expenseflow_session"

const sessionKey = "session"

// requireSession resolves the session cookie to an authenticated user
// and aborts with 401 when no valid session is presented.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, messageBody{Msg: "Authentication required"})
			return
		}

		user, err := s.authService.UserFromSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, messageBody{Msg: "Authentication required"})
			return
		}

		c.Set(sessionKey, &session.Session{User: *user})
		c.Next()
	}
}

// requireRole gates a route on the session's role. It runs after
// requireSession; the role check happens exactly here and nowhere in
// the handlers.
func (s *Server) requireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).Allowed(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, messageBody{Msg: "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// currentSession returns the session placed by requireSession. A nil
// session fails every Allowed check.
func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
