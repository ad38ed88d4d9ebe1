// Package analysis holds the pure functions over mood entry collections: the
// history filter, frequency aggregates, calendar bucketing and the statistical
// insight analyzer. Nothing in here performs I/O.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"mindwell/model"
)

type DateWindow string

const (
	WindowAll   DateWindow = "all"
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

// AllMoods is the sentinel that disables the mood filter.
const AllMoods = "all"

// ParseDateWindow accepts the query string forms used by the API. An empty value
// means no date filter.
func ParseDateWindow(s string) (DateWindow, error) {
	switch w := DateWindow(strings.ToLower(strings.TrimSpace(s))); w {
	case "", WindowAll:
		return WindowAll, nil
	case WindowToday, WindowWeek, WindowMonth:
		return w, nil
	default:
		return "", fmt.Errorf("unknown date filter %q", s)
	}
}

// Cutoff returns the earliest timestamp admitted by window w. ok is false when
// the window does not restrict anything.
func Cutoff(w DateWindow, now time.Time) (cutoff time.Time, ok bool) {
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}

// Filter narrows a mood entry collection for display. The zero value matches
// everything.
type Filter struct {
	Mood   string     `json:"mood,omitempty" form:"mood"`
	Window DateWindow `json:"date_filter,omitempty" form:"date_filter"`
	Search string     `json:"search,omitempty" form:"search"`
}

// SelectedMood returns the mood the filter keeps, lower-cased and trimmed,
// or "" when the mood predicate is off.
func (f Filter) SelectedMood() string {
	m := strings.ToLower(strings.TrimSpace(f.Mood))
	if m == AllMoods {
		return ""
	}
	return m
}

func (f Filter) moodActive() bool { return f.SelectedMood() != "" }

// Active reports whether any of the three predicates is enabled.
func (f Filter) Active() bool {
	_, dated := Cutoff(f.Window, time.Now())
	return f.moodActive() || dated || strings.TrimSpace(f.Search) != ""
}

// Match applies all enabled predicates conjunctively.
func (f Filter) Match(e model.MoodEntry, now time.Time) bool {
	if f.moodActive() && strings.ToLower(e.Mood) != f.SelectedMood() {
		return false
	}
	if cutoff, ok := Cutoff(f.Window, now); ok && e.Timestamp.Before(cutoff) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return matchesTerm(e, term)
	}
	return true
}

func matchesTerm(e model.MoodEntry, term string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}
	return contains(e.Mood) ||
		contains(e.Notes) ||
		lo.SomeBy(e.Tags, contains) ||
		lo.SomeBy(e.Activities, contains)
}

// Apply returns the entries accepted by f, preserving their relative order.
func Apply(entries []model.MoodEntry, f Filter, now time.Time) []model.MoodEntry {
	return lo.Filter(entries, func(e model.MoodEntry, _ int) bool {
		return f.Match(e, now)
	})
}
