package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/model"
)

func TestNotificationServiceLifecycle(t *testing.T) {
	store := &memNotifications{}
	svc := &NotificationService{Notifications: store, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	require.NoError(t, svc.SeedWelcome(ctx, "u1"))
	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 2, model.CountUnread(list))

	unread, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, svc.MarkRead(ctx, "u1", list[0].ID))
	unread, _ = svc.UnreadCount(ctx, "u1")
	assert.Equal(t, 1, unread)

	assert.ErrorIs(t, svc.MarkRead(ctx, "u2", list[1].ID), ErrNotFound)

	after, err := svc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, model.CountUnread(after))

	require.NoError(t, svc.Delete(ctx, "u1", list[3].ID))
	list, _ = svc.List(ctx, "u1")
	assert.Len(t, list, 3)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", "missing"), ErrNotFound)
}

func TestNotificationServiceNotify(t *testing.T) {
	store := &memNotifications{}
	svc := &NotificationService{Notifications: store, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	n, err := svc.Notify(ctx, model.Notification{UserID: "u1", Title: "Hi", Type: model.NotificationReminder})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, fixedNow, n.Timestamp)

	_, err = svc.Notify(ctx, model.Notification{UserID: "u1", Type: "spam"})
	assert.Error(t, err)
	_, err = svc.Notify(ctx, model.Notification{Type: model.NotificationSystem})
	assert.ErrorIs(t, err, ErrMissingUser)
}
