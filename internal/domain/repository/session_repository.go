package repository

import (
	"context"
	"time"
)

// Session is the server-side record of the logged-in user.
type Session struct {
	UserID    string
	SessionID string
	Email     string
	Name      string
	CreatedAt time.Time
}

// SessionRepository keeps one session per user id.
type SessionRepository interface {
	Create(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}
