package usecase

import (
	"context"
	"fmt"
	"time"

	"mindwell/model"
	"mindwell/utils"
)

type NotificationStore interface {
	InsertMany(ctx context.Context, notifications []model.Notification) error
	FindByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type NotificationService struct {
	Notifications NotificationStore
	Now           func() time.Time
}

func (s *NotificationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	out, err := s.Notifications.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return translate(s.Notifications.MarkRead(ctx, userID, id))
}

// MarkAllRead returns the collection after the update; its unread count is
// always zero.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) ([]model.Notification, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if _, err := s.Notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return translate(s.Notifications.Delete(ctx, userID, id))
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.Notifications.CountUnread(ctx, userID)
	return int(n), err
}

// Notify stores n, filling in id and timestamp when absent.
func (s *NotificationService) Notify(ctx context.Context, n model.Notification) (model.Notification, error) {
	if n.UserID == "" {
		return model.Notification{}, ErrMissingUser
	}
	if !n.Type.Valid() {
		return model.Notification{}, fmt.Errorf("invalid notification type %q", n.Type)
	}
	if n.ID == "" {
		n.ID = utils.NewID()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now().UTC()
	}
	if err := s.Notifications.InsertMany(ctx, []model.Notification{n}); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// SeedWelcome gives a new account its first notifications.
func (s *NotificationService) SeedWelcome(ctx context.Context, userID string) error {
	return s.Notifications.InsertMany(ctx, model.WelcomeNotifications(userID, s.now().UTC(), utils.NewID))
}
