package client

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"mindwell/dto"
	"mindwell/model"
)

// Reading is one mood detection result.
type Reading struct {
	Emotion    string
	Confidence float64 // 0..1
}

// detectorMoods maps detector labels onto the mood vocabulary.
var detectorMoods = map[string]string{
	"angry":     "angry",
	"sad":       "sad",
	"neutral":   "neutral",
	"happy":     "happy",
	"surprised": "excited",
}

// Mood is the vocabulary mood for the detected emotion.
func (r Reading) Mood() string {
	if m, ok := detectorMoods[r.Emotion]; ok {
		return m
	}
	return r.Emotion
}

// Intensity scales confidence onto 1-5.
func (r Reading) Intensity() int {
	i := int(math.Round(r.Confidence * 5))
	return max(model.MinIntensity, min(model.MaxIntensity, i))
}

// Draft turns the reading into an auto-detected entry.
func (r Reading) Draft() dto.MoodEntryDraft {
	return dto.MoodEntryDraft{
		Mood:           r.Mood(),
		Intensity:      r.Intensity(),
		Activities:     []string{},
		Notes:          fmt.Sprintf("Auto-detected mood: %s (confidence: %d%%)", r.Emotion, int(math.Round(r.Confidence*100))),
		Tags:           []string{"auto-detected"},
		IsAutoDetected: true,
	}
}

// Detector reads the user's current mood, e.g. from a camera frame.
type Detector interface {
	Detect(ctx context.Context) (Reading, error)
}

// StubDetector stands in for a vision model: after Delay it reports a random
// emotion with confidence in [0.7, 1.0).
type StubDetector struct {
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

var stubEmotions = []string{"angry", "sad", "neutral", "happy", "surprised"}

func NewStubDetector(delay time.Duration, seed uint64) *StubDetector {
	return &StubDetector{
		Delay: delay,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (d *StubDetector) Detect(ctx context.Context) (Reading, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reading{}, ctx.Err()
		case <-timer.C:
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return Reading{
		Emotion:    stubEmotions[d.rng.IntN(len(stubEmotions))],
		Confidence: 0.7 + d.rng.Float64()*0.3,
	}, nil
}
