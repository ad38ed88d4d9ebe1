package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"mindwell/model"
)

var ErrNotEnoughData = errors.New("Not enough data to generate insights")

const (
	DefaultLookbackDays   = 30
	DefaultMinEntries     = 4
	DefaultMinOccurrences = 3

	positiveThreshold = 0.4
	negativeThreshold = -0.4
	lowIntensity      = 2.5
)

// DayLayout keys the mood timeseries.
const DayLayout = "2006-01-02"

// Analyzer derives an insight from a user's recent entries: distribution,
// daily timeline, activity counts, and the Pearson correlation between an
// activity being present and the entry intensity.
type Analyzer struct {
	LookbackDays   int
	MinEntries     int // entries required before correlations are computed
	MinOccurrences int // occurrences required per activity
	Location       *time.Location
}

func NewAnalyzer(lookbackDays int) *Analyzer {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Analyzer{
		LookbackDays:   lookbackDays,
		MinEntries:     DefaultMinEntries,
		MinOccurrences: DefaultMinOccurrences,
		Location:       time.Local,
	}
}

// PeriodStart is the earliest timestamp Analyze considers.
func (a *Analyzer) PeriodStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -a.LookbackDays)
}

// Analyze builds an unsaved insight. ID and UserID are left for the caller.
func (a *Analyzer) Analyze(entries []model.MoodEntry, now time.Time) (model.Insight, error) {
	start := a.PeriodStart(now)
	window := lo.Filter(entries, func(e model.MoodEntry, _ int) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(now)
	})
	if len(window) == 0 {
		return model.Insight{}, ErrNotEnoughData
	}

	dist := MoodDistribution(window)
	correlations := a.Correlations(window)
	impact := make(map[string]float64, len(correlations))
	for k, v := range correlations {
		impact[k] = math.Abs(v)
	}
	istats := intensityStats(window)
	dominant := dominantMood(dist)

	insight := model.Insight{
		Title:            "Mood Analysis",
		Description:      fmt.Sprintf("Based on %d entries from the last %d days.", len(window), a.LookbackDays),
		MoodCorrelations: correlations,
		ActivityImpact:   impact,
		Timestamp:        now,
		PeriodStart:      start,
		PeriodEnd:        now,
		DominantMood:     dominant,
		MoodDistribution: dist,
		MoodTimeseries:   a.Timeseries(window),
		TopActivities:    ActivityFrequency(window),
		IntensityStats:   &istats,
	}
	insight.Suggestions = suggestions(dist, dominant, correlations, istats)
	return insight, nil
}

// Correlations maps each sufficiently frequent activity to the rounded Pearson
// coefficient of its presence against intensity. Activities whose presence or
// whose intensities never vary are skipped.
func (a *Analyzer) Correlations(entries []model.MoodEntry) map[string]float64 {
	out := make(map[string]float64)
	if len(entries) < a.MinEntries {
		return out
	}
	levels := intensities(entries)
	for _, activity := range activityNames(entries) {
		presence := make(stats.Float64Data, len(entries))
		occurrences := 0
		for i, e := range entries {
			if lo.Contains(e.Activities, activity) {
				presence[i] = 1
				occurrences++
			}
		}
		if occurrences < a.MinOccurrences {
			continue
		}
		corr, err := pearson(presence, levels)
		if err != nil {
			continue
		}
		out[activity] = corr
	}
	return out
}

func pearson(x, y stats.Float64Data) (float64, error) {
	sx, err := stats.StandardDeviationPopulation(x)
	if err != nil {
		return 0, err
	}
	sy, err := stats.StandardDeviationPopulation(y)
	if err != nil {
		return 0, err
	}
	if sx == 0 || sy == 0 {
		return 0, errors.New("zero variance")
	}
	corr, err := stats.Pearson(x, y)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(corr) {
		return 0, errors.New("undefined correlation")
	}
	return stats.Round(corr, 2)
}

// Timeseries maps every day between the first and last entry to that day's
// most common mood. Days without entries carry the previous day's mood.
func (a *Analyzer) Timeseries(entries []model.MoodEntry) map[string]string {
	out := make(map[string]string)
	if len(entries) == 0 {
		return out
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}

	perDay := make(map[string]map[string]int)
	first, last := entries[0].Timestamp, entries[0].Timestamp
	for _, e := range entries {
		key := e.Timestamp.In(loc).Format(DayLayout)
		if perDay[key] == nil {
			perDay[key] = make(map[string]int)
		}
		perDay[key][e.Mood]++
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}

	y, m, d := first.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := last.In(loc).Format(DayLayout)
	prev := ""
	for {
		key := day.Format(DayLayout)
		if counts, ok := perDay[key]; ok {
			prev = dominantMood(counts)
		}
		out[key] = prev
		if key == end {
			break
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// dominantMood picks the highest count, breaking ties alphabetically.
func dominantMood(dist map[string]int) string {
	best, bestCount := "", 0
	for _, mood := range lo.Keys(dist) {
		c := dist[mood]
		if c > bestCount || (c == bestCount && mood < best) {
			best, bestCount = mood, c
		}
	}
	return best
}

func intensityStats(entries []model.MoodEntry) model.IntensityStats {
	levels := intensities(entries)
	lowest, _ := stats.Min(levels)
	highest, _ := stats.Max(levels)
	return model.IntensityStats{
		Average: AverageIntensity(entries),
		Max:     int(highest),
		Min:     int(lowest),
	}
}

func activityNames(entries []model.MoodEntry) []string {
	names := lo.Uniq(lo.FlatMap(entries, func(e model.MoodEntry, _ int) []string {
		return e.Activities
	}))
	sort.Strings(names)
	return names
}

func suggestions(dist map[string]int, dominant string, correlations map[string]float64, is model.IntensityStats) []string {
	out := []string{}
	if dominant != "" {
		out = append(out, fmt.Sprintf("Your most frequent mood was %s (%d times).", dominant, dist[dominant]))
	}
	names := lo.Keys(correlations)
	sort.Strings(names)
	for _, activity := range names {
		switch corr := correlations[activity]; {
		case corr > positiveThreshold:
			out = append(out, fmt.Sprintf("Keep up with %s, it's positively impacting your mood!", activity))
		case corr < negativeThreshold:
			out = append(out, fmt.Sprintf("Consider reducing %s as it correlates with lower moods.", activity))
		}
	}
	if is.Average < lowIntensity {
		out = append(out, "Your average mood intensity is low. Consider engaging in uplifting activities.")
	}
	return out
}
