package model

import (
	"strings"
	"sync"
	"time"
)

const (
	MinIntensity = 1
	MaxIntensity = 5
)

// MoodEntry is a single logged emotional state. ID and Timestamp are assigned by
// the server on insert and never change afterwards.
type MoodEntry struct {
	ID             int64     `bson:"_id" json:"id"`
	UserID         string    `bson:"user_id" json:"user"`
	Mood           string    `bson:"mood" json:"mood"`
	Intensity      int       `bson:"intensity" json:"intensity"`
	Activities     []string  `bson:"activities" json:"activities"`
	Notes          string    `bson:"notes" json:"notes"`
	Tags           []string  `bson:"tags" json:"tags"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	IsAutoDetected bool      `bson:"is_auto_detected" json:"is_auto_detected"`
	InsightID      string    `bson:"insight_id,omitempty" json:"insight,omitempty"`
}

// ValidIntensity reports whether i is inside the 1-5 scale.
func ValidIntensity(i int) bool {
	return i >= MinIntensity && i <= MaxIntensity
}

var (
	moodsMu sync.RWMutex
	moods   = []string{
		"happy", "calm", "excited", "content", "neutral",
		"anxious", "stressed", "sad", "angry", "tired",
		// labels produced by the camera detector
		"surprised",
	}
)

// Moods returns the known mood vocabulary in display order.
func Moods() []string {
	moodsMu.RLock()
	defer moodsMu.RUnlock()
	out := make([]string, len(moods))
	copy(out, moods)
	return out
}

// IsKnownMood reports whether mood belongs to the vocabulary.
func IsKnownMood(mood string) bool {
	moodsMu.RLock()
	defer moodsMu.RUnlock()
	for _, m := range moods {
		if m == mood {
			return true
		}
	}
	return false
}

// RegisterMood extends the vocabulary. Names are stored lower-cased.
func RegisterMood(mood string) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" || IsKnownMood(mood) {
		return
	}
	moodsMu.Lock()
	moods = append(moods, mood)
	moodsMu.Unlock()
}
