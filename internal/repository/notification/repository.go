package notification

import (
	"context"

	"domainhost/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n domain.Notification) (*domain.Notification, error)
	// Broadcast inserts one notification per registered user.
	Broadcast(ctx context.Context, title, message, link string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}
