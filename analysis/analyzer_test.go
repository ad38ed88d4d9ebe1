package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/model"
)

func scored(id int64, mood string, intensity int, ago time.Duration, activities ...string) model.MoodEntry {
	e := entry(id, mood, ago, activities...)
	e.Intensity = intensity
	return e
}

func newTestAnalyzer() *Analyzer {
	a := NewAnalyzer(0)
	a.Location = time.UTC
	return a
}

func TestAnalyzeNoData(t *testing.T) {
	a := newTestAnalyzer()

	_, err := a.Analyze(nil, now)
	assert.ErrorIs(t, err, ErrNotEnoughData)

	old := []model.MoodEntry{scored(1, "happy", 4, 31*24*time.Hour)}
	_, err = a.Analyze(old, now)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestAnalyzeCorrelations(t *testing.T) {
	day := 24 * time.Hour
	entries := []model.MoodEntry{
		scored(1, "happy", 5, 1*day, "yoga", "reading"),
		scored(2, "happy", 5, 2*day, "yoga"),
		scored(3, "calm", 4, 3*day, "yoga", "gaming"),
		scored(4, "sad", 1, 4*day, "gaming"),
		scored(5, "anxious", 2, 5*day),
	}

	insight, err := newTestAnalyzer().Analyze(entries, now)
	require.NoError(t, err)

	require.Contains(t, insight.MoodCorrelations, "yoga")
	assert.InDelta(t, 0.95, insight.MoodCorrelations["yoga"], 1e-9)
	assert.NotContains(t, insight.MoodCorrelations, "gaming", "fewer than three occurrences")
	assert.NotContains(t, insight.MoodCorrelations, "reading")
	assert.InDelta(t, 0.95, insight.ActivityImpact["yoga"], 1e-9)

	assert.Equal(t, "happy", insight.DominantMood)
	assert.Equal(t, map[string]int{"happy": 2, "calm": 1, "sad": 1, "anxious": 1}, insight.MoodDistribution)
	assert.Equal(t, model.ActivityCount{Name: "yoga", Count: 3}, insight.TopActivities[0])
	require.NotNil(t, insight.IntensityStats)
	assert.Equal(t, model.IntensityStats{Average: 3.4, Max: 5, Min: 1}, *insight.IntensityStats)

	assert.Equal(t, []string{
		"Your most frequent mood was happy (2 times).",
		"Keep up with yoga, it's positively impacting your mood!",
	}, insight.Suggestions)
	assert.Equal(t, now, insight.PeriodEnd)
	assert.Equal(t, now.AddDate(0, 0, -30), insight.PeriodStart)
}

func TestAnalyzeNegativeAndLow(t *testing.T) {
	entries := []model.MoodEntry{
		scored(1, "sad", 1, time.Hour, "doomscrolling"),
		scored(2, "sad", 1, 2*time.Hour, "doomscrolling"),
		scored(3, "tired", 1, 3*time.Hour, "doomscrolling"),
		scored(4, "calm", 4, 4*time.Hour),
	}

	insight, err := newTestAnalyzer().Analyze(entries, now)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, insight.MoodCorrelations["doomscrolling"], 1e-9)
	assert.InDelta(t, 1.0, insight.ActivityImpact["doomscrolling"], 1e-9)
	assert.Equal(t, []string{
		"Your most frequent mood was sad (2 times).",
		"Consider reducing doomscrolling as it correlates with lower moods.",
		"Your average mood intensity is low. Consider engaging in uplifting activities.",
	}, insight.Suggestions)
}

func TestCorrelationsNeedEnoughEntries(t *testing.T) {
	entries := []model.MoodEntry{
		scored(1, "happy", 5, time.Hour, "run"),
		scored(2, "happy", 4, time.Hour, "run"),
		scored(3, "sad", 1, time.Hour, "run"),
	}
	assert.Empty(t, newTestAnalyzer().Correlations(entries))
}

func TestCorrelationsSkipConstantPresence(t *testing.T) {
	entries := []model.MoodEntry{
		scored(1, "happy", 5, time.Hour, "run"),
		scored(2, "happy", 4, time.Hour, "run"),
		scored(3, "sad", 1, time.Hour, "run"),
		scored(4, "sad", 2, time.Hour, "run"),
	}
	assert.Empty(t, newTestAnalyzer().Correlations(entries))
}

func TestTimeseriesForwardFill(t *testing.T) {
	d := func(day, hour int) time.Duration {
		return now.Sub(time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC))
	}
	entries := []model.MoodEntry{
		scored(1, "happy", 4, d(10, 8)),
		scored(2, "sad", 2, d(10, 12)),
		scored(3, "happy", 4, d(10, 18)),
		scored(4, "calm", 3, d(13, 9)),
		scored(5, "tired", 2, d(14, 9)),
		scored(6, "angry", 2, d(14, 10)),
	}

	got := newTestAnalyzer().Timeseries(entries)
	assert.Equal(t, map[string]string{
		"2024-03-10": "happy",
		"2024-03-11": "happy",
		"2024-03-12": "happy",
		"2024-03-13": "calm",
		"2024-03-14": "angry",
	}, got)
}
