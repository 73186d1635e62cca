package gaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/text"
)

func TestAggregatorWordsPerMinute(t *testing.T) {
	layout := text.NewLayout("The cat sat. The dog ran. The sun is up.")
	a := NewAggregator()
	a.Start(layout, 0)

	// Thirty seconds of samples ending past the final word.
	a.AddSample(sampleAt(0, 0.1))
	a.AddSample(sampleAt(30, 1.0))

	m := a.Compute()
	assert.Equal(t, layout.WordCount(), m.WordsCovered)
	assert.InDelta(t, 30.0, m.ElapsedSeconds, 1e-9)
	// Ten words in half a minute; this passage is easy so no complexity
	// adjustment applies.
	assert.InDelta(t, 20.0, m.WordsPerMinute, 1e-9)
	assert.True(t, a.Covered())
}

func TestAggregatorCountsBlinkEpisodesOnce(t *testing.T) {
	a := NewAggregator()
	a.Start(text.NewLayout("one two"), 0)

	a.AddSample(sampleAt(0, 0.2))
	// Three consecutive blink frames are one blink.
	a.AddSample(blinkAt(0.1))
	a.AddSample(blinkAt(0.2))
	a.AddSample(blinkAt(0.3))
	a.AddSample(sampleAt(0.4, 0.2))
	a.AddSample(blinkAt(0.5))
	a.AddSample(sampleAt(60, 0.2))

	m := a.Compute()
	// Two blink episodes over one minute.
	assert.InDelta(t, 2.0, m.BlinkRate, 1e-9)
	assert.Equal(t, 7, m.SampleCount)
}

func TestAggregatorRegressionMetrics(t *testing.T) {
	a := NewAggregator()
	a.Start(text.NewLayout("some words"), 0)

	a.AddSegments(
		[]models.Fixation{
			{StartTime: 0, EndTime: 0.3, Duration: 0.3, PositionVariance: 1e-5},
			{StartTime: 0.5, EndTime: 0.8, Duration: 0.3, PositionVariance: 3e-5},
		},
		[]models.Saccade{
			{Amplitude: 0.1, Direction: 0.1},
			{Amplitude: 0.2, Direction: -0.2, IsBackward: true},
			{Amplitude: 0.3, Direction: 0.3},
		},
	)
	a.AddSample(sampleAt(30, 0.5))

	m := a.Compute()
	require.Equal(t, 2, m.FixationCount)
	require.Equal(t, 3, m.SaccadeCount)
	assert.Equal(t, 1, m.RegressionCount)
	assert.InDelta(t, 2.0, m.RegressionRate, 1e-9) // one in half a minute
	assert.InDelta(t, 0.3, m.AvgFixationDur, 1e-9)
	assert.InDelta(t, 0.2, m.AvgSaccadeAmp, 1e-9)
	assert.InDelta(t, 2e-5, m.MeanFixVariance, 1e-12)
	assert.InDelta(t, 1/(1+2e-5), m.GazeStability, 1e-9)
}

func TestAggregatorInertUntilStarted(t *testing.T) {
	a := NewAggregator()
	a.AddSample(sampleAt(1, 0.5))

	m := a.Compute()
	assert.Equal(t, 0, m.SampleCount)
	assert.False(t, a.Covered())
}
