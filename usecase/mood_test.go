package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/analysis"
	"mindwell/dto"
	"mindwell/model"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newMoodService(seed ...model.MoodEntry) (*MoodService, *memEntries) {
	store := newMemEntries(seed...)
	svc := NewMoodService(store)
	svc.Now = func() time.Time { return fixedNow }
	return svc, store
}

func TestMoodServiceCreate(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()

	entry, err := svc.Create(ctx, "u1", dto.MoodEntryDraft{
		Mood:       " Happy ",
		Intensity:  4,
		Activities: []string{"exercise", " ", "reading"},
		Notes:      "good day",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "happy", entry.Mood)
	assert.Equal(t, []string{"exercise", "reading"}, entry.Activities)
	assert.Equal(t, fixedNow, entry.Timestamp)
	assert.False(t, entry.IsAutoDetected)
}

func TestMoodServiceCreateValidation(t *testing.T) {
	svc, _ := newMoodService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", dto.MoodEntryDraft{Mood: "happy", Intensity: 6})
	assert.ErrorIs(t, err, ErrInvalidIntensity)
	assert.Equal(t, "Intensity must be between 1-5", err.Error())

	_, err = svc.Create(ctx, "u1", dto.MoodEntryDraft{Mood: "meh", Intensity: 3})
	assert.ErrorIs(t, err, ErrUnknownMood)

	_, err = svc.Create(ctx, "u1", dto.MoodEntryDraft{Mood: "calm", Intensity: 3, Activities: []string{"yoga", "yoga"}})
	assert.ErrorIs(t, err, ErrDuplicateActivity)

	_, err = svc.Create(ctx, "", dto.MoodEntryDraft{Mood: "calm", Intensity: 3})
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestMoodServiceListTranslatesFilter(t *testing.T) {
	svc, store := newMoodService(
		model.MoodEntry{ID: 1, UserID: "u1", Mood: "happy", Intensity: 4, Timestamp: fixedNow},
		model.MoodEntry{ID: 2, UserID: "u1", Mood: "sad", Intensity: 2, Timestamp: fixedNow.AddDate(0, 0, -3)},
		model.MoodEntry{ID: 3, UserID: "u1", Mood: "happy", Intensity: 5, Timestamp: fixedNow.AddDate(0, 0, -10)},
		model.MoodEntry{ID: 4, UserID: "u2", Mood: "happy", Intensity: 5, Timestamp: fixedNow},
	)
	ctx := context.Background()

	got, err := svc.List(ctx, "u1", ListOptions{Filter: analysis.Filter{Window: analysis.WindowWeek}})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), store.queries[0].Since)

	got, err = svc.List(ctx, "u1", ListOptions{Filter: analysis.Filter{Mood: analysis.AllMoods}})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Empty(t, store.queries[1].Mood)

	got, err = svc.List(ctx, "u1", ListOptions{Filter: analysis.Filter{Mood: "happy"}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(ctx, "u1", ListOptions{Filter: analysis.Filter{Mood: " Happy "}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "happy", store.queries[3].Mood)
	assert.Equal(t, int64(1), store.queries[3].Limit)
}

func TestMoodServiceUpdate(t *testing.T) {
	original := model.MoodEntry{ID: 1, UserID: "u1", Mood: "sad", Intensity: 2,
		Activities: []string{"work"}, Notes: "meh", Tags: []string{"office"}, Timestamp: fixedNow.Add(-time.Hour)}
	svc, _ := newMoodService(original)
	ctx := context.Background()

	intensity := 4
	updated, err := svc.Update(ctx, "u1", 1, dto.MoodEntryPatch{Intensity: &intensity})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Intensity)
	assert.Equal(t, original.Mood, updated.Mood)
	assert.Equal(t, original.Activities, updated.Activities)
	assert.Equal(t, original.Notes, updated.Notes)
	assert.Equal(t, original.Tags, updated.Tags)
	assert.Equal(t, original.Timestamp, updated.Timestamp)

	_, err = svc.Update(ctx, "u1", 1, dto.MoodEntryPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	bad := 0
	_, err = svc.Update(ctx, "u1", 1, dto.MoodEntryPatch{Intensity: &bad})
	assert.ErrorIs(t, err, ErrInvalidIntensity)

	_, err = svc.Update(ctx, "u2", 1, dto.MoodEntryPatch{Intensity: &intensity})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoodServiceDelete(t *testing.T) {
	svc, store := newMoodService(model.MoodEntry{ID: 1, UserID: "u1", Mood: "calm", Intensity: 3})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "u2", 1), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "u1", 1))
	assert.Empty(t, store.entries)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", 1), ErrNotFound)
}

func TestMoodServiceStats(t *testing.T) {
	svc, _ := newMoodService(
		model.MoodEntry{ID: 1, UserID: "u1", Mood: "happy", Intensity: 4, Activities: []string{"exercise", "reading"}, Timestamp: fixedNow},
		model.MoodEntry{ID: 2, UserID: "u1", Mood: "calm", Intensity: 3, Activities: []string{"exercise"}, Timestamp: fixedNow.Add(-time.Hour), IsAutoDetected: true},
		model.MoodEntry{ID: 3, UserID: "u1", Mood: "tired", Intensity: 2, Activities: []string{"work"}, Timestamp: fixedNow.Add(-2 * time.Hour)},
	)

	stats, err := svc.Stats(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "all", stats.Window)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 1, stats.AutoDetected)
	assert.Equal(t, 3.0, stats.AverageIntensity)
	assert.Equal(t, map[string]int{"happy": 1, "calm": 1, "tired": 1}, stats.MoodDistribution)
	assert.Equal(t, model.ActivityCount{Name: "exercise", Count: 2}, stats.TopActivities[0])
	require.NotNil(t, stats.LastEntryAt)
	assert.Equal(t, fixedNow, *stats.LastEntryAt)
}

func TestMoodServiceCalendar(t *testing.T) {
	svc, store := newMoodService(
		model.MoodEntry{ID: 1, UserID: "u1", Mood: "happy", Intensity: 4, Timestamp: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
		model.MoodEntry{ID: 2, UserID: "u1", Mood: "sad", Intensity: 2, Timestamp: time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)},
		model.MoodEntry{ID: 3, UserID: "u1", Mood: "calm", Intensity: 3, Timestamp: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		model.MoodEntry{ID: 4, UserID: "u1", Mood: "calm", Intensity: 3, Timestamp: time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)},
	)

	cal, err := svc.Calendar(context.Background(), "u1", 2024, time.March, time.UTC)
	require.NoError(t, err)
	assert.Len(t, cal.Days, 31)
	assert.Len(t, cal.Days[1].Entries, 1)

	require.Len(t, store.queries, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), store.queries[0].Since)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), store.queries[0].Until)

	_, err = svc.Calendar(context.Background(), "u1", 2024, 13, time.UTC)
	assert.Error(t, err)
}
