package model

import "time"

// Placeholder content used by the stub insight generator and for seeding a
// new account. newID supplies document ids.

func WeeklyInsight(userID string, now time.Time, newID func() string) Insight {
	return Insight{
		ID:          newID(),
		UserID:      userID,
		Title:       "Weekly Mood Analysis",
		Description: "Based on your mood entries this week, we've noticed some patterns that might be helpful.",
		MoodCorrelations: map[string]float64{
			"exercise":   0.8,
			"meditation": 0.7,
			"work":       -0.3,
			"social":     0.6,
		},
		ActivityImpact: map[string]float64{
			"exercise":   0.75,
			"meditation": 0.65,
			"reading":    0.5,
			"tv":         -0.2,
		},
		Suggestions: []string{
			"Consider adding more exercise to your routine",
			"Meditation seems to improve your mood significantly",
			"Try to balance work with more social activities",
		},
		Timestamp:   now,
		PeriodStart: now.AddDate(0, 0, -7),
		PeriodEnd:   now,
		Generator:   "stub",
	}
}

func SampleInsights(userID string, now time.Time, newID func() string) []Insight {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	return []Insight{
		{
			ID:          newID(),
			UserID:      userID,
			Title:       "Monthly Mood Patterns",
			Description: "We've analyzed your mood entries for the past month and found some interesting patterns.",
			MoodCorrelations: map[string]float64{
				"exercise":   0.8,
				"meditation": 0.7,
				"work":       -0.3,
				"social":     0.6,
			},
			ActivityImpact: map[string]float64{
				"exercise":   0.75,
				"meditation": 0.65,
				"reading":    0.5,
				"tv":         -0.2,
			},
			Suggestions: []string{
				"Your mood is consistently better after exercise",
				"Consider scheduling regular meditation sessions",
				"Social activities appear to boost your mood significantly",
			},
			Timestamp:   weekAgo,
			PeriodStart: weekAgo.AddDate(0, -1, 0),
			PeriodEnd:   weekAgo,
			Generator:   "stub",
		},
		{
			ID:          newID(),
			UserID:      userID,
			Title:       "Activity Recommendations",
			Description: "Based on your recent mood entries, here are some activities that might help improve your wellbeing.",
			MoodCorrelations: map[string]float64{
				"nature":      0.85,
				"creative":    0.7,
				"screen time": -0.4,
			},
			ActivityImpact: map[string]float64{
				"walking":    0.8,
				"painting":   0.65,
				"journaling": 0.6,
			},
			Suggestions: []string{
				"Spending time in nature has a strong positive effect on your mood",
				"Creative activities like painting seem to help you feel better",
				"Consider reducing screen time in the evening",
			},
			Timestamp:   twoWeeksAgo,
			PeriodStart: twoWeeksAgo.AddDate(0, 0, -7),
			PeriodEnd:   twoWeeksAgo,
			Generator:   "stub",
		},
	}
}

// WelcomeNotifications returns two unread and two read notifications,
// newest first.
func WelcomeNotifications(userID string, now time.Time, newID func() string) []Notification {
	return []Notification{
		{
			ID:        newID(),
			UserID:    userID,
			Title:     "Time to log your mood",
			Message:   "You haven't logged your mood today. Take a moment to check in with yourself.",
			Type:      NotificationReminder,
			Timestamp: now.Add(-time.Hour),
		},
		{
			ID:        newID(),
			UserID:    userID,
			Title:     "New insight available",
			Message:   "We've generated new insights based on your recent mood entries.",
			Type:      NotificationSystem,
			Timestamp: now.Add(-24 * time.Hour),
			ActionURL: "/insights",
		},
		{
			ID:        newID(),
			UserID:    userID,
			Title:     "Activity suggestion",
			Message:   "Based on your mood patterns, a short walk might help you feel better today.",
			Type:      NotificationSuggestion,
			Read:      true,
			Timestamp: now.Add(-48 * time.Hour),
		},
		{
			ID:        newID(),
			UserID:    userID,
			Title:     "Upcoming appointment",
			Message:   "Reminder: You have a therapy session scheduled for tomorrow at 3:00 PM.",
			Type:      NotificationAppointment,
			Read:      true,
			Timestamp: now.Add(-72 * time.Hour),
			ActionURL: "/appointments",
		},
	}
}
