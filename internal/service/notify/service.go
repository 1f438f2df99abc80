// Package notify delivers in-portal notifications: per-user messages and
// admin broadcasts.
package notify

import (
	"context"
	"errors"
	"strings"

	"domainhost/internal/domain"
	notifrepo "domainhost/internal/repository/notification"
)

type Service struct {
	repo notifrepo.Repository
}

func New(repo notifrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Notify sends one notification to one user.
func (s *Service) Notify(ctx context.Context, userID, title, message, link string) (*domain.Notification, error) {
	title = strings.TrimSpace(title)
	if userID == "" || title == "" {
		return nil, errors.New("user and title required")
	}
	return s.repo.Create(ctx, domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: strings.TrimSpace(message),
		Link:    strings.TrimSpace(link),
	})
}

// Broadcast sends a notification to every registered user and returns how
// many were created.
func (s *Service) Broadcast(ctx context.Context, title, message, link string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, errors.New("title required")
	}
	return s.repo.Broadcast(ctx, title, strings.TrimSpace(message), strings.TrimSpace(link))
}

// Inbox returns the user's notifications plus the unread count.
func (s *Service) Inbox(ctx context.Context, user *domain.User) ([]domain.Notification, int64, error) {
	if user == nil {
		return nil, 0, domain.ErrInvalidSession
	}
	items, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead marks one of the user's notifications as read. The repository
// scopes the update by user, so a foreign id is a not-found.
func (s *Service) MarkRead(ctx context.Context, user *domain.User, id string) error {
	if user == nil {
		return domain.ErrInvalidSession
	}
	return s.repo.MarkRead(ctx, user.ID, id)
}
