package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"mindwell/analysis"
	"mindwell/dto"
	"mindwell/model"
)

const entriesPath = "/api/moods/entries/"

type options struct {
	log *logrus.Entry
	now func() time.Time
}

type Option func(*options)

// WithLogger sends store diagnostics to log at debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// WithClock overrides time.Now for client-side filtering.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(store string, opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log != nil {
		o.log = o.log.WithField("store", store)
	}
	return o
}

// RecordStore holds the current user's mood entries, newest first.
type RecordStore struct {
	state
	api     *Client
	now     func() time.Time
	entries []model.MoodEntry
}

func NewRecordStore(api *Client, opts ...Option) *RecordStore {
	o := buildOptions("records", opts)
	s := &RecordStore{api: api, now: o.now, entries: []model.MoodEntry{}}
	s.init(o.log)
	return s
}

func filterQuery(f *analysis.Filter) url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Window != "" && f.Window != analysis.WindowAll {
		q.Set("date_filter", string(f.Window))
	}
	if mood := f.SelectedMood(); mood != "" {
		q.Set("mood", mood)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q.Set("search", search)
	}
	return q
}

// List replaces the collection with the server's entries matching f. A nil
// filter fetches everything.
func (s *RecordStore) List(ctx context.Context, f *analysis.Filter) ([]model.MoodEntry, error) {
	ticket := s.begin(true)

	var entries []model.MoodEntry
	raw, err := s.api.getList(ctx, entriesPath, filterQuery(f))
	if err == nil {
		entries, err = decodeList[model.MoodEntry](raw)
	}
	if err != nil {
		err = fmt.Errorf("failed to fetch entries: %w", err)
	}

	if err := s.finishFetch(ticket, err, func() { s.entries = entries }); err != nil {
		return nil, err
	}
	return cloneEntries(entries), nil
}

// Create stores draft on the server and prepends the returned entry.
func (s *RecordStore) Create(ctx context.Context, draft dto.MoodEntryDraft) (model.MoodEntry, error) {
	s.begin(false)

	if draft.Activities == nil {
		draft.Activities = []string{}
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}

	var created model.MoodEntry
	err := s.api.do(ctx, http.MethodPost, entriesPath, nil, draft, &created)
	if err != nil {
		err = fmt.Errorf("failed to add entry: %w", err)
	}

	err = s.finishMutation(err, func() {
		s.entries = append([]model.MoodEntry{created}, s.entries...)
	})
	return created, err
}

// Update sends patch and merges the server's copy into the matching entry.
func (s *RecordStore) Update(ctx context.Context, id int64, patch dto.MoodEntryPatch) (model.MoodEntry, error) {
	s.begin(false)

	var updated model.MoodEntry
	err := s.api.do(ctx, http.MethodPatch, entryPath(id), nil, patch, &updated)
	if err != nil {
		err = fmt.Errorf("failed to update entry: %w", err)
	}

	err = s.finishMutation(err, func() {
		for i := range s.entries {
			if s.entries[i].ID == id {
				s.entries[i] = updated
			}
		}
	})
	return updated, err
}

// Delete removes the entry on the server, then locally.
func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	s.begin(false)

	err := s.api.do(ctx, http.MethodDelete, entryPath(id), nil, nil, nil)
	if err != nil {
		err = fmt.Errorf("failed to delete entry: %w", err)
	}

	return s.finishMutation(err, func() {
		s.entries = lo.Reject(s.entries, func(e model.MoodEntry, _ int) bool {
			return e.ID == id
		})
	})
}

// LogDetected asks d for a reading and records it as an auto-detected entry.
func (s *RecordStore) LogDetected(ctx context.Context, d Detector) (model.MoodEntry, error) {
	reading, err := d.Detect(ctx)
	if err != nil {
		s.fail(fmt.Errorf("mood detection failed: %w", err))
		return model.MoodEntry{}, err
	}
	return s.Create(ctx, reading.Draft())
}

// Entries returns a snapshot of the collection.
func (s *RecordStore) Entries() []model.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// View applies f to the held collection without a network call.
func (s *RecordStore) View(f analysis.Filter) []model.MoodEntry {
	return analysis.Apply(s.Entries(), f, s.now())
}

// Summary aggregates the entries visible under f.
type Summary struct {
	MoodDistribution map[string]int
	Breakdown        []analysis.MoodShare
	TopActivities    []model.ActivityCount
	AverageIntensity float64
}

func (s *RecordStore) Summarize(f analysis.Filter) Summary {
	view := s.View(f)
	return Summary{
		MoodDistribution: analysis.MoodDistribution(view),
		Breakdown:        analysis.MoodBreakdown(view),
		TopActivities:    analysis.TopActivities(view, analysis.DefaultTopActivities),
		AverageIntensity: analysis.AverageIntensity(view),
	}
}

// Reset forgets every entry, e.g. after logout.
func (s *RecordStore) Reset() {
	s.reset(func() { s.entries = []model.MoodEntry{} })
}

func entryPath(id int64) string {
	return fmt.Sprintf("%s%d/", entriesPath, id)
}

func cloneEntries(in []model.MoodEntry) []model.MoodEntry {
	out := make([]model.MoodEntry, len(in))
	for i, e := range in {
		e.Activities = append([]string(nil), e.Activities...)
		e.Tags = append([]string(nil), e.Tags...)
		out[i] = e
	}
	return out
}
