package model

import "time"

// MoodStats backs the dashboard and insights page widgets.
type MoodStats struct {
	Window           string          `json:"window"`
	TotalEntries     int             `json:"total_entries"`
	AutoDetected     int             `json:"auto_detected"`
	AverageIntensity float64         `json:"average_intensity"`
	MoodDistribution map[string]int  `json:"mood_distribution"`
	TopActivities    []ActivityCount `json:"top_activities"`
	LastEntryAt      *time.Time      `json:"last_entry_at,omitempty"`
	UnreadCount      int             `json:"unread_notifications"`
}
