package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

type mockNotificationRepo struct {
	items     []*entity.Notification
	createErr error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	n.ID = int64(len(m.items) + 1)
	m.items = append(m.items, n)
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range m.items {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, recipientID int64) error {
	for _, n := range m.items {
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, recipientID int64) error {
	for _, n := range m.items {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByRecipient(ctx context.Context, recipientID int64) error {
	var kept []*entity.Notification
	for _, n := range m.items {
		if n.RecipientID != recipientID {
			kept = append(kept, n)
		}
	}
	m.items = kept
	return nil
}

func TestRegisterNotification(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, noopLogger{})

	err := svc.Register(context.Background(), &entity.Notification{
		RecipientID: 7,
		Title:       "Team lunch",
		Type:        entity.NotiApprovalRequest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored notification, got %d", len(repo.items))
	}
}

func TestRegisterNotificationError(t *testing.T) {
	repo := &mockNotificationRepo{createErr: errors.New("disk full")}
	svc := NewNotificationService(repo, noopLogger{})

	err := svc.Register(context.Background(), &entity.Notification{RecipientID: 7})
	if err == nil {
		t.Errorf("expected error")
	}
}

func TestListForRecipientUnreadOnly(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, noopLogger{})

	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 7})
	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 7})
	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 8})

	_ = svc.MarkRead(context.Background(), 1, 7)

	unread, err := svc.ListForRecipient(context.Background(), 7, true, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 1 {
		t.Errorf("expected 1 unread, got %d", len(unread))
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, noopLogger{})

	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 7})

	// Another user cannot flip someone else's row
	_ = svc.MarkRead(context.Background(), 1, 8)
	if repo.items[0].Read {
		t.Errorf("expected notification to stay unread")
	}

	_ = svc.MarkRead(context.Background(), 1, 7)
	if !repo.items[0].Read {
		t.Errorf("expected notification to be read")
	}
}

func TestClearNotifications(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, noopLogger{})

	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 7})
	_ = svc.Register(context.Background(), &entity.Notification{RecipientID: 8})

	if err := svc.Clear(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 1 || repo.items[0].RecipientID != 8 {
		t.Errorf("expected only recipient 8 left, got %d items", len(repo.items))
	}
}
