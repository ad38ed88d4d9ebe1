package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell/model"
)

func TestReadingDraft(t *testing.T) {
	tests := []struct {
		reading   Reading
		mood      string
		intensity int
	}{
		{Reading{Emotion: "surprised", Confidence: 0.92}, "excited", 5},
		{Reading{Emotion: "sad", Confidence: 0.72}, "sad", 4},
		{Reading{Emotion: "neutral", Confidence: 0.05}, "neutral", 1},
		{Reading{Emotion: "calm", Confidence: 0.5}, "calm", 3},
	}
	for _, tt := range tests {
		t.Run(tt.reading.Emotion, func(t *testing.T) {
			d := tt.reading.Draft()
			assert.Equal(t, tt.mood, d.Mood)
			assert.Equal(t, tt.intensity, d.Intensity)
			assert.True(t, d.IsAutoDetected)
			assert.Equal(t, []string{"auto-detected"}, d.Tags)
			assert.NotNil(t, d.Activities)
		})
	}

	d := Reading{Emotion: "happy", Confidence: 0.876}.Draft()
	assert.Equal(t, "Auto-detected mood: happy (confidence: 88%)", d.Notes)
}

func TestStubDetector(t *testing.T) {
	d := NewStubDetector(0, 7)
	for i := 0; i < 50; i++ {
		r, err := d.Detect(context.Background())
		require.NoError(t, err)
		assert.Contains(t, stubEmotions, r.Emotion)
		assert.GreaterOrEqual(t, r.Confidence, 0.7)
		assert.Less(t, r.Confidence, 1.0)
		assert.True(t, model.IsKnownMood(r.Mood()))
	}

	// same seed, same sequence
	a, _ := NewStubDetector(0, 3).Detect(context.Background())
	b, _ := NewStubDetector(0, 3).Detect(context.Background())
	assert.Equal(t, a, b)
}

func TestStubDetectorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStubDetector(time.Minute, 1).Detect(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	store := NewRecordStore(New("http://127.0.0.1:0", nil))
	_, err = store.LogDetected(ctx, NewStubDetector(time.Minute, 1))
	require.Error(t, err)
	assert.Contains(t, store.LastError(), "mood detection failed")
}
