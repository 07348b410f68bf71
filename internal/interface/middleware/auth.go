package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
	"github.com/oksasatya/hocus-focus/pkg/response"
)

const CtxUserIDKey = "userID"

// SessionResolver maps a session token to the live server-side session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*repository.Session, error)
}

func resolve(c *gin.Context, sessions SessionResolver) (*repository.Session, error) {
	token, err := c.Cookie(helpers.SessionCookie)
	if err != nil || token == "" {
		return nil, nil
	}
	return sessions.ResolveSession(c.Request.Context(), token)
}

func setSession(c *gin.Context, s *repository.Session) {
	c.Set(CtxUserIDKey, s.UserID) // required by handlers
	c.Set("userName", s.Name)
	c.Set("userEmail", s.Email)
}

// Auth requires a valid token whose session still exists.
// It sets userID, userName, and userEmail in the Gin context on success.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := resolve(c, sessions)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, "session lookup failed", nil)
			return
		}
		if s == nil {
			response.Abort(c, http.StatusUnauthorized, "not logged in", nil)
			return
		}
		setSession(c, s)
		c.Next()
	}
}

// OptionalAuth sets the viewer when a live session is present and lets
// anonymous requests through.
func OptionalAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := resolve(c, sessions); err == nil && s != nil {
			setSession(c, s)
		}
		c.Next()
	}
}
