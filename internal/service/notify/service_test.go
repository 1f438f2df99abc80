package notify

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"domainhost/internal/domain"
)

type stubRepo struct {
	rows []domain.Notification
}

func (s *stubRepo) Create(_ context.Context, n domain.Notification) (*domain.Notification, error) {
	n.ID = "n" + strconv.Itoa(len(s.rows)+1)
	s.rows = append(s.rows, n)
	return &n, nil
}

func (s *stubRepo) Broadcast(_ context.Context, title, message, link string) (int64, error) {
	s.rows = append(s.rows,
		domain.Notification{UserID: "u1", Title: title, Message: message, Link: link},
		domain.Notification{UserID: "u2", Title: title, Message: message, Link: link},
	)
	return 2, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range s.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range s.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *stubRepo) MarkRead(_ context.Context, userID, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].UserID == userID {
			s.rows[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func TestNotifyValidation(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Notify(context.Background(), "", "Title", "", ""); err == nil {
		t.Fatalf("expected error for missing user")
	}
	if _, err := svc.Notify(context.Background(), "u1", "  ", "", ""); err == nil {
		t.Fatalf("expected error for blank title")
	}
}

func TestBroadcastReachesAllUsers(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	count, err := svc.Broadcast(context.Background(), "Promo Baru", "Diskon 10%", "/promo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 deliveries, got %d", count)
	}
}

func TestInboxScopedToUser(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	ctx := context.Background()
	if _, err := svc.Notify(ctx, "u1", "Halo", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Notify(ctx, "u2", "Other", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, unread, err := svc.Inbox(ctx, &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || unread != 1 {
		t.Fatalf("expected one unread item, got %d items / %d unread", len(items), unread)
	}

	if _, _, err := svc.Inbox(ctx, nil); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestMarkReadForeignID(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	ctx := context.Background()
	n, err := svc.Notify(ctx, "u1", "Halo", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.MarkRead(ctx, &domain.User{ID: "u2"}, n.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign user must get not found, got %v", err)
	}
	if err := svc.MarkRead(ctx, &domain.User{ID: "u1"}, n.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, unread, err := svc.Inbox(ctx, &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected zero unread after mark, got %d", unread)
	}
}
