package dto

import "mindwell/model"

// NotificationsResponse pairs the collection with its derived unread count.
type NotificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

func NewNotificationsResponse(notifications []model.Notification) NotificationsResponse {
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return NotificationsResponse{
		Notifications: notifications,
		UnreadCount:   model.CountUnread(notifications),
	}
}
