package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"mindwell/model"
)

// DefaultTopActivities is how many activities the dashboards show.
const DefaultTopActivities = 5

// MoodDistribution counts entries per distinct mood.
func MoodDistribution(entries []model.MoodEntry) map[string]int {
	out := make(map[string]int)
	for _, e := range entries {
		out[e.Mood]++
	}
	return out
}

type MoodShare struct {
	Mood    string `json:"mood"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// MoodBreakdown is MoodDistribution in discovery order with rounded percentages.
func MoodBreakdown(entries []model.MoodEntry) []MoodShare {
	index := make(map[string]int)
	var out []MoodShare
	for _, e := range entries {
		i, ok := index[e.Mood]
		if !ok {
			i = len(out)
			index[e.Mood] = i
			out = append(out, MoodShare{Mood: e.Mood})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Percent = int(math.Round(float64(out[i].Count) / float64(len(entries)) * 100))
	}
	return out
}

// ActivityFrequency counts each activity across entries, most frequent first.
// Ties keep the order in which the activities were first seen.
func ActivityFrequency(entries []model.MoodEntry) []model.ActivityCount {
	index := make(map[string]int)
	var out []model.ActivityCount
	for _, e := range entries {
		for _, a := range e.Activities {
			i, ok := index[a]
			if !ok {
				i = len(out)
				index[a] = i
				out = append(out, model.ActivityCount{Name: a})
			}
			out[i].Count++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TopActivities truncates ActivityFrequency to n rows; n <= 0 uses the default.
func TopActivities(entries []model.MoodEntry, n int) []model.ActivityCount {
	if n <= 0 {
		n = DefaultTopActivities
	}
	all := ActivityFrequency(entries)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// AverageIntensity returns the mean intensity rounded to one decimal, or 0 for
// an empty collection.
func AverageIntensity(entries []model.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	mean, err := stats.Mean(intensities(entries))
	if err != nil {
		return 0
	}
	return math.Round(mean*10) / 10
}

func intensities(entries []model.MoodEntry) stats.Float64Data {
	out := make(stats.Float64Data, len(entries))
	for i, e := range entries {
		out[i] = float64(e.Intensity)
	}
	return out
}

type Impact struct {
	Activity string  `json:"activity"`
	Value    float64 `json:"value"`
}

// RankImpact orders an activity impact map by absolute strength, strongest
// first, then by name.
func RankImpact(impact map[string]float64) []Impact {
	out := make([]Impact, 0, len(impact))
	for a, v := range impact {
		out = append(out, Impact{Activity: a, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Value), math.Abs(out[j].Value)
		if ai != aj {
			return ai > aj
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}
