package model

import "time"

type NotificationType string

const (
	NotificationReminder    NotificationType = "reminder"
	NotificationSuggestion  NotificationType = "suggestion"
	NotificationAppointment NotificationType = "appointment"
	NotificationSystem      NotificationType = "system"
)

// Valid reports whether t is one of the four notification categories.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationReminder, NotificationSuggestion, NotificationAppointment, NotificationSystem:
		return true
	}
	return false
}

type Notification struct {
	ID        string           `bson:"_id" json:"id"`
	UserID    string           `bson:"user_id" json:"userId"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	Read      bool             `bson:"read" json:"read"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
	ActionURL string           `bson:"action_url,omitempty" json:"actionUrl,omitempty"`
}

// CountUnread derives the unread count from the read flags. The count is never
// stored on its own.
func CountUnread(notifications []Notification) int {
	n := 0
	for _, notification := range notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}
