package model

import "time"

// ActivityCount is one row of an activity frequency table.
type ActivityCount struct {
	Name  string `bson:"name" json:"name"`
	Count int    `bson:"count" json:"count"`
}

type IntensityStats struct {
	Average float64 `bson:"average" json:"average"`
	Max     int     `bson:"max" json:"max"`
	Min     int     `bson:"min" json:"min"`
}

// Insight is a generated summary of how activities relate to mood over a period.
// Insights are append-only: once stored they are never edited.
type Insight struct {
	ID               string             `bson:"_id" json:"id"`
	UserID           string             `bson:"user_id" json:"userId"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	MoodCorrelations map[string]float64 `bson:"mood_correlations" json:"moodCorrelations"`
	ActivityImpact   map[string]float64 `bson:"activity_impact" json:"activityImpact"`
	Suggestions      []string           `bson:"suggestions" json:"suggestions"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`

	PeriodStart      time.Time         `bson:"period_start,omitempty" json:"period_start,omitempty"`
	PeriodEnd        time.Time         `bson:"period_end,omitempty" json:"period_end,omitempty"`
	DominantMood     string            `bson:"dominant_mood,omitempty" json:"dominant_mood,omitempty"`
	MoodDistribution map[string]int    `bson:"mood_distribution,omitempty" json:"mood_distribution,omitempty"`
	MoodTimeseries   map[string]string `bson:"mood_timeseries,omitempty" json:"mood_timeseries,omitempty"`
	TopActivities    []ActivityCount   `bson:"top_activities,omitempty" json:"top_activities,omitempty"`
	IntensityStats   *IntensityStats   `bson:"intensity_stats,omitempty" json:"intensity_stats,omitempty"`
	Generator        string            `bson:"generator,omitempty" json:"generator,omitempty"`
}
