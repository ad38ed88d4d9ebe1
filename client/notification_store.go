package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"mindwell/model"
)

const notificationsPath = "/api/notifications/"

type NotificationSource interface {
	Fetch(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

type HTTPNotificationSource struct {
	API *Client
}

func (h HTTPNotificationSource) Fetch(ctx context.Context, _ string) ([]model.Notification, error) {
	raw, err := h.API.getList(ctx, notificationsPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Notification](raw)
}

func (h HTTPNotificationSource) MarkRead(ctx context.Context, id string) error {
	return h.API.do(ctx, http.MethodPost, notificationsPath+id+"/read/", nil, nil, nil)
}

func (h HTTPNotificationSource) MarkAllRead(ctx context.Context, _ string) error {
	return h.API.do(ctx, http.MethodPost, notificationsPath+"read-all/", nil, nil, nil)
}

func (h HTTPNotificationSource) Delete(ctx context.Context, id string) error {
	return h.API.do(ctx, http.MethodDelete, notificationsPath+id+"/", nil, nil, nil)
}

// StubNotificationSource serves the welcome set for each user it sees and
// remembers changes made to it.
type StubNotificationSource struct {
	Now func() time.Time

	mu    sync.Mutex
	users map[string][]model.Notification
}

func NewStubNotificationSource() *StubNotificationSource {
	return &StubNotificationSource{users: make(map[string][]model.Notification)}
}

func (s *StubNotificationSource) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *StubNotificationSource) Fetch(ctx context.Context, userID string) ([]model.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = make(map[string][]model.Notification)
	}
	list, ok := s.users[userID]
	if !ok {
		list = model.WelcomeNotifications(userID, s.now(), uuid.NewString)
		s.users[userID] = list
	}
	return append([]model.Notification{}, list...), nil
}

func (s *StubNotificationSource) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, list := range s.users {
		for i := range list {
			if list[i].ID == id {
				s.users[userID][i].Read = true
				return nil
			}
		}
	}
	return &APIError{Status: http.StatusNotFound, Message: "Not found"}
}

func (s *StubNotificationSource) MarkAllRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users[userID] {
		s.users[userID][i].Read = true
	}
	return nil
}

func (s *StubNotificationSource) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, list := range s.users {
		if _, ok := lo.Find(list, func(n model.Notification) bool { return n.ID == id }); ok {
			s.users[userID] = lo.Reject(list, func(n model.Notification, _ int) bool { return n.ID == id })
			return nil
		}
	}
	return &APIError{Status: http.StatusNotFound, Message: "Not found"}
}

// NotificationStore holds the user's notifications. The unread count is
// always derived from the read flags.
type NotificationStore struct {
	state
	source        NotificationSource
	notifications []model.Notification
}

func NewNotificationStore(source NotificationSource, opts ...Option) *NotificationStore {
	o := buildOptions("notifications", opts)
	s := &NotificationStore{source: source, notifications: []model.Notification{}}
	s.init(o.log)
	return s
}

func (s *NotificationStore) Fetch(ctx context.Context, userID string) ([]model.Notification, error) {
	ticket := s.begin(true)

	list, err := s.source.Fetch(ctx, userID)
	if err != nil {
		err = fmt.Errorf("failed to fetch notifications: %w", err)
	}
	if list == nil {
		list = []model.Notification{}
	}

	if err := s.finishFetch(ticket, err, func() { s.notifications = list }); err != nil {
		return nil, err
	}
	return append([]model.Notification{}, list...), nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id string) error {
	s.begin(false)

	err := s.source.MarkRead(ctx, id)
	if err != nil {
		err = fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return s.finishMutation(err, func() {
		for i := range s.notifications {
			if s.notifications[i].ID == id {
				s.notifications[i].Read = true
			}
		}
	})
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	s.begin(false)

	err := s.source.MarkAllRead(ctx, userID)
	if err != nil {
		err = fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return s.finishMutation(err, func() {
		for i := range s.notifications {
			s.notifications[i].Read = true
		}
	})
}

func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	s.begin(false)

	err := s.source.Delete(ctx, id)
	if err != nil {
		err = fmt.Errorf("failed to delete notification: %w", err)
	}

	return s.finishMutation(err, func() {
		s.notifications = lo.Reject(s.notifications, func(n model.Notification, _ int) bool {
			return n.ID == id
		})
	})
}

func (s *NotificationStore) Notifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Notification{}, s.notifications...)
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CountUnread(s.notifications)
}

func (s *NotificationStore) Reset() {
	s.reset(func() { s.notifications = []model.Notification{} })
}
