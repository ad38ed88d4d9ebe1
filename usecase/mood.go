package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"mindwell/analysis"
	"mindwell/dto"
	"mindwell/model"
	"mindwell/repository"
	"mindwell/utils"
)

type MoodEntryStore interface {
	Insert(ctx context.Context, entry *model.MoodEntry) error
	FindByID(ctx context.Context, userID string, id int64) (*model.MoodEntry, error)
	Find(ctx context.Context, q repository.EntryQuery) ([]model.MoodEntry, error)
	Replace(ctx context.Context, entry *model.MoodEntry) error
	Delete(ctx context.Context, userID string, id int64) error
}

type MoodService struct {
	Entries MoodEntryStore
	Now     func() time.Time
}

func NewMoodService(entries MoodEntryStore) *MoodService {
	return &MoodService{Entries: entries, Now: time.Now}
}

func (s *MoodService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

type ListOptions struct {
	Filter       analysis.Filter
	AutoDetected *bool
	// Limit caps the number of entries returned, newest first. Zero means no cap.
	Limit int64
}

// List returns the user's entries newest first, narrowed by the same
// predicates analysis.Apply uses.
func (s *MoodService) List(ctx context.Context, userID string, opts ListOptions) ([]model.MoodEntry, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	q := repository.EntryQuery{
		UserID:       userID,
		Search:       strings.TrimSpace(opts.Filter.Search),
		Mood:         opts.Filter.SelectedMood(),
		AutoDetected: opts.AutoDetected,
		Limit:        opts.Limit,
	}
	if cutoff, ok := analysis.Cutoff(opts.Filter.Window, s.now()); ok {
		q.Since = cutoff
	}

	entries, err := s.Entries.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}

func validateEntry(mood string, intensity int, activities []string) error {
	if !model.ValidIntensity(intensity) {
		return ErrInvalidIntensity
	}
	if !model.IsKnownMood(mood) {
		return fmt.Errorf("%w: %q", ErrUnknownMood, mood)
	}
	if len(lo.Uniq(activities)) != len(activities) {
		return ErrDuplicateActivity
	}
	return nil
}

func (s *MoodService) Create(ctx context.Context, userID string, draft dto.MoodEntryDraft) (model.MoodEntry, error) {
	if userID == "" {
		return model.MoodEntry{}, ErrMissingUser
	}
	draft.Normalize()
	if err := validateEntry(draft.Mood, draft.Intensity, draft.Activities); err != nil {
		return model.MoodEntry{}, err
	}

	entry := model.MoodEntry{
		UserID:         userID,
		Mood:           draft.Mood,
		Intensity:      draft.Intensity,
		Activities:     draft.Activities,
		Notes:          draft.Notes,
		Tags:           draft.Tags,
		Timestamp:      s.now().UTC().Truncate(time.Millisecond),
		IsAutoDetected: draft.IsAutoDetected,
	}
	if err := s.Entries.Insert(ctx, &entry); err != nil {
		return model.MoodEntry{}, fmt.Errorf("failed to create mood entry: %w", err)
	}

	utils.TrackMoodOperation("create")
	return entry, nil
}

func (s *MoodService) Get(ctx context.Context, userID string, id int64) (model.MoodEntry, error) {
	entry, err := s.Entries.FindByID(ctx, userID, id)
	if err != nil {
		return model.MoodEntry{}, translate(err)
	}
	return *entry, nil
}

// Update merges patch into the stored entry. Id, owner and timestamp never
// change.
func (s *MoodService) Update(ctx context.Context, userID string, id int64, patch dto.MoodEntryPatch) (model.MoodEntry, error) {
	if patch.Empty() {
		return model.MoodEntry{}, ErrEmptyPatch
	}
	patch.Normalize()

	entry, err := s.Entries.FindByID(ctx, userID, id)
	if err != nil {
		return model.MoodEntry{}, translate(err)
	}
	patch.ApplyTo(entry)
	if err := validateEntry(entry.Mood, entry.Intensity, entry.Activities); err != nil {
		return model.MoodEntry{}, err
	}

	if err := s.Entries.Replace(ctx, entry); err != nil {
		return model.MoodEntry{}, translate(err)
	}

	utils.TrackMoodOperation("update")
	return *entry, nil
}

func (s *MoodService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.Entries.Delete(ctx, userID, id); err != nil {
		return translate(err)
	}
	utils.TrackMoodOperation("delete")
	return nil
}

// Stats aggregates the entries inside window.
func (s *MoodService) Stats(ctx context.Context, userID string, window analysis.DateWindow) (model.MoodStats, error) {
	entries, err := s.List(ctx, userID, ListOptions{Filter: analysis.Filter{Window: window}})
	if err != nil {
		return model.MoodStats{}, err
	}

	if window == "" {
		window = analysis.WindowAll
	}
	stats := model.MoodStats{
		Window:           string(window),
		TotalEntries:     len(entries),
		AutoDetected:     lo.CountBy(entries, func(e model.MoodEntry) bool { return e.IsAutoDetected }),
		AverageIntensity: analysis.AverageIntensity(entries),
		MoodDistribution: analysis.MoodDistribution(entries),
		TopActivities:    analysis.TopActivities(entries, analysis.DefaultTopActivities),
	}
	if stats.TopActivities == nil {
		stats.TopActivities = []model.ActivityCount{}
	}
	if len(entries) > 0 {
		latest := entries[0].Timestamp
		stats.LastEntryAt = &latest
	}
	return stats, nil
}

func (s *MoodService) Calendar(ctx context.Context, userID string, year int, month time.Month, loc *time.Location) (analysis.CalendarMonth, error) {
	if month < time.January || month > time.December {
		return analysis.CalendarMonth{}, fmt.Errorf("invalid month %d", month)
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	entries, err := s.Entries.Find(ctx, repository.EntryQuery{
		UserID: userID,
		Since:  start,
		Until:  start.AddDate(0, 1, 0),
	})
	if err != nil {
		return analysis.CalendarMonth{}, fmt.Errorf("failed to load calendar entries: %w", err)
	}
	return analysis.BuildCalendar(entries, year, month, loc), nil
}
