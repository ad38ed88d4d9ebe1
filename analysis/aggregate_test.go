package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mindwell/model"
)

func TestWeekScenario(t *testing.T) {
	entries := []model.MoodEntry{
		entry(1, "happy", 0),
		entry(2, "sad", 3*24*time.Hour),
		entry(3, "happy", 10*24*time.Hour),
	}

	week := Apply(entries, Filter{Window: WindowWeek}, now)
	assert.Equal(t, []int64{1, 2}, ids(week))
	assert.Equal(t, map[string]int{"happy": 1, "sad": 1}, MoodDistribution(week))
	assert.Equal(t, map[string]int{"happy": 2, "sad": 1}, MoodDistribution(entries))
}

func TestActivityFrequencyScenario(t *testing.T) {
	entries := []model.MoodEntry{
		entry(1, "happy", 0, "exercise", "reading"),
		entry(2, "calm", 0, "exercise"),
		entry(3, "tired", 0, "work"),
	}

	got := ActivityFrequency(entries)
	assert.Equal(t, []model.ActivityCount{
		{Name: "exercise", Count: 2},
		{Name: "reading", Count: 1},
		{Name: "work", Count: 1},
	}, got)
}

func TestTopActivities(t *testing.T) {
	var entries []model.MoodEntry
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, n := range names {
		for j := 0; j <= i; j++ {
			entries = append(entries, entry(int64(len(entries)+1), "calm", 0, n))
		}
	}

	top := TopActivities(entries, 0)
	assert.Len(t, top, DefaultTopActivities)
	assert.Equal(t, "g", top[0].Name)
	assert.Equal(t, 7, top[0].Count)
	assert.Equal(t, "c", top[4].Name)

	assert.Len(t, TopActivities(entries, 2), 2)
	assert.Len(t, TopActivities(entries[:1], 5), 1)
	assert.Empty(t, TopActivities(nil, 5))
}

func TestMoodBreakdown(t *testing.T) {
	entries := []model.MoodEntry{
		entry(1, "happy", 0),
		entry(2, "sad", 0),
		entry(3, "happy", 0),
	}
	assert.Equal(t, []MoodShare{
		{Mood: "happy", Count: 2, Percent: 67},
		{Mood: "sad", Count: 1, Percent: 33},
	}, MoodBreakdown(entries))
	assert.Empty(t, MoodBreakdown(nil))
}

func TestAverageIntensity(t *testing.T) {
	assert.Equal(t, 0.0, AverageIntensity(nil))

	a, b, c := entry(1, "happy", 0), entry(2, "sad", 0), entry(3, "calm", 0)
	a.Intensity, b.Intensity, c.Intensity = 5, 2, 2
	assert.Equal(t, 3.0, AverageIntensity([]model.MoodEntry{a, b, c}))

	c.Intensity = 3
	assert.Equal(t, 3.3, AverageIntensity([]model.MoodEntry{a, b, c}))
}

func TestRankImpact(t *testing.T) {
	got := RankImpact(map[string]float64{
		"walking": 0.3,
		"gaming":  -0.8,
		"reading": 0.5,
		"yoga":    -0.5,
	})
	assert.Equal(t, []Impact{
		{Activity: "gaming", Value: -0.8},
		{Activity: "reading", Value: 0.5},
		{Activity: "yoga", Value: -0.5},
		{Activity: "walking", Value: 0.3},
	}, got)
}
