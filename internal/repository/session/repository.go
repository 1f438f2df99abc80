package session

import (
	"context"
	"time"
)

// Session is an opaque login token bound to a user.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired reaps stale tokens; returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
