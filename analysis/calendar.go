package analysis

import (
	"time"

	"mindwell/model"
)

type CalendarDay struct {
	Date    time.Time         `json:"date"`
	Entries []model.MoodEntry `json:"entries"`
}

// CalendarMonth is a Sunday-first month grid. LeadingBlanks and TrailingBlanks
// pad the first and last week to seven cells.
type CalendarMonth struct {
	Year           int           `json:"year"`
	Month          time.Month    `json:"month"`
	LeadingBlanks  int           `json:"leading_blanks"`
	TrailingBlanks int           `json:"trailing_blanks"`
	Days           []CalendarDay `json:"days"`
}

// BuildCalendar buckets entries into the days of the given month, comparing
// calendar days in loc. Entries outside the month are ignored.
func BuildCalendar(entries []model.MoodEntry, year int, month time.Month, loc *time.Location) CalendarMonth {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	cal := CalendarMonth{
		Year:           year,
		Month:          month,
		LeadingBlanks:  int(first.Weekday()),
		TrailingBlanks: 6 - int(last.Weekday()),
		Days:           make([]CalendarDay, last.Day()),
	}
	for i := range cal.Days {
		cal.Days[i] = CalendarDay{Date: first.AddDate(0, 0, i), Entries: []model.MoodEntry{}}
	}

	for _, e := range entries {
		ts := e.Timestamp.In(loc)
		if ts.Year() != year || ts.Month() != month {
			continue
		}
		d := &cal.Days[ts.Day()-1]
		d.Entries = append(d.Entries, e)
	}
	return cal
}
